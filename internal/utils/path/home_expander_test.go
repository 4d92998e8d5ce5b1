package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "bare_tilde", candidate: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", candidate: "~/src/tools", expectedPath: filepath.Join(testHomeDirectoryConstant, "src", "tools")},
		{name: "other_user_untouched", candidate: "~octocat/src", expectedPath: "~octocat/src"},
		{name: "absolute_untouched", candidate: "/srv/tools", expectedPath: "/srv/tools"},
		{name: "relative_untouched", candidate: "tools", expectedPath: "tools"},
		{name: "empty_untouched", candidate: "", expectedPath: ""},
	}

	lookups := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookups++
		return testHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
	require.Equal(testInstance, 1, lookups)
}

func TestHomeExpanderKeepsPathWhenHomeUnknown(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/tools", expander.Expand("~/tools"))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/tools", nilExpander.Expand("~/tools"))
}
