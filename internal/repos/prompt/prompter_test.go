package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/repos/prompt"
)

func TestIOConfirmationPrompter(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "short_yes", input: "y\n", expected: true},
		{name: "long_yes_mixed_case", input: " YES \n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty_input_declines", input: "", expected: false},
		{name: "yes_without_newline", input: "yes", expected: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			output := &bytes.Buffer{}
			prompter := prompt.NewIOConfirmationPrompter(strings.NewReader(testCase.input), output)

			confirmed, confirmError := prompter.Confirm("Proceed? [y/N] ")
			require.NoError(testInstance, confirmError)
			require.Equal(testInstance, testCase.expected, confirmed)
			require.Equal(testInstance, "Proceed? [y/N] ", output.String())
		})
	}
}
