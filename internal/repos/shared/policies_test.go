package shared_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/repos/shared"
)

func TestParseRepositoryIdentifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    shared.RepositoryIdentifier
		expectError bool
	}{
		{name: "valid_identifier", input: "octocat/hello-world", expected: shared.RepositoryIdentifier{Owner: "octocat", Name: "hello-world"}},
		{name: "trims_whitespace", input: "  octocat/tool ", expected: shared.RepositoryIdentifier{Owner: "octocat", Name: "tool"}},
		{name: "rejects_missing_owner", input: "/tool", expectError: true},
		{name: "rejects_single_segment", input: "tool", expectError: true},
		{name: "rejects_nested_path", input: "a/b/c", expectError: true},
		{name: "rejects_inner_whitespace", input: "octo cat/tool", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := shared.ParseRepositoryIdentifier(testCase.input)
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expected, result)
			require.Equal(t, testCase.expected.Owner+"/"+testCase.expected.Name, result.String())
		})
	}
}

func TestParseRepositoryIdentifierOptional(t *testing.T) {
	t.Parallel()

	identifier, err := shared.ParseRepositoryIdentifierOptional("   ")
	require.NoError(t, err)
	require.Nil(t, identifier)

	identifier, err = shared.ParseRepositoryIdentifierOptional("octocat/tool")
	require.NoError(t, err)
	require.Equal(t, "octocat/tool", identifier.String())

	_, err = shared.ParseRepositoryIdentifierOptional("tool")
	require.ErrorIs(t, err, shared.ErrRepositoryIdentifierFormat)
}

func TestConfirmationPolicyFromBool(t *testing.T) {
	t.Parallel()

	require.True(t, shared.ConfirmationPolicyFromBool(false).ShouldPrompt())
	require.False(t, shared.ConfirmationPolicyFromBool(true).ShouldPrompt())
}
