package githubauth

import (
	"os"
	"strings"
)

// Environment variables gh reads credentials from, highest precedence first.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenVariables = [...]string{EnvGitHubCLIToken, EnvGitHubToken, EnvGitHubAPIToken}

// ResolveTokenVariable returns the first non-blank GitHub token and the variable that supplied it.
// Any token in the explicit environment map wins over every process variable.
func ResolveTokenVariable(environment map[string]string) (string, string, bool) {
	lookups := []func(string) (string, bool){
		func(variableName string) (string, bool) {
			value, exists := environment[variableName]
			return value, exists
		},
		os.LookupEnv,
	}

	for _, lookup := range lookups {
		for _, variableName := range tokenVariables {
			value, exists := lookup(variableName)
			if trimmedValue := strings.TrimSpace(value); exists && len(trimmedValue) > 0 {
				return variableName, trimmedValue, true
			}
		}
	}
	return "", "", false
}
