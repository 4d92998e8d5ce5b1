package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name           string
		remote         string
		expectedRemote gitrepo.RemoteURL
		expectError    bool
	}{
		{
			name:           "https_with_suffix",
			remote:         "https://github.com/octocat/proj.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "octocat", Repository: "proj"},
		},
		{
			name:           "scp_style_ssh",
			remote:         "git@github.com:octocat/proj.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "octocat", Repository: "proj"},
		},
		{
			name:           "ssh_scheme",
			remote:         "ssh://git@github.com/octocat/proj.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "octocat", Repository: "proj"},
		},
		{
			name:           "ssh_scheme_with_port",
			remote:         "ssh://git@ssh.github.com:443/octocat/proj.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "ssh.github.com", Owner: "octocat", Repository: "proj"},
		},
		{
			name:           "plain_http_trailing_slash",
			remote:         "http://github.example.com/octocat/proj/",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.example.com", Owner: "octocat", Repository: "proj"},
		},
		{
			name:           "scp_style_without_user",
			remote:         "github.com:octocat/proj",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "octocat", Repository: "proj"},
		},
		{name: "empty_remote", remote: "  ", expectError: true},
		{name: "local_path", remote: "/srv/git/proj.git", expectError: true},
		{name: "nested_path", remote: "https://gitlab.com/group/sub/proj.git", expectError: true},
		{name: "unsupported_scheme", remote: "ftp://github.com/octocat/proj", expectError: true},
		{name: "https_missing_repository", remote: "https://github.com/octocat", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				var remoteParseError gitrepo.RemoteURLParseError
				require.ErrorAs(testInstance, parseError, &remoteParseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRemote, parsedRemote)
			require.Equal(testInstance, "octocat/proj", parsedRemote.OwnerRepository())
		})
	}
}

func TestBuildHTTPSRemoteURL(testInstance *testing.T) {
	remoteURL, buildError := gitrepo.BuildHTTPSRemoteURL("github.com", "octocat", "proj")
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "https://github.com/octocat/proj.git", remoteURL)

	_, missingOwnerError := gitrepo.BuildHTTPSRemoteURL("github.com", " ", "proj")
	require.Error(testInstance, missingOwnerError)
}
