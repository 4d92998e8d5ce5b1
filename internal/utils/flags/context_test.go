package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindRepositoryFlagParsesValue(t *testing.T) {
	command := &cobra.Command{}

	values := BindRepositoryFlag(command, "")
	require.NotNil(t, values)
	require.Empty(t, values.Identifier)
	require.Equal(t, RepositoryFlagUsage, command.PersistentFlags().Lookup(RepositoryFlagName).Usage)

	parseError := command.ParseFlags([]string{"--repo", "octocat/hello-world"})
	require.NoError(t, parseError)
	require.Equal(t, "octocat/hello-world", values.Identifier)
}

func TestEnsureRemoteFlagIsIdempotent(t *testing.T) {
	command := &cobra.Command{}

	EnsureRemoteFlag(command, "origin", RemoteFlagUsage)
	EnsureRemoteFlag(command, "upstream", RemoteFlagUsage)

	remoteFlag := command.Flags().Lookup(RemoteFlagName)
	require.NotNil(t, remoteFlag)
	require.Equal(t, "origin", remoteFlag.DefValue)

	parseError := command.ParseFlags([]string{"--remote", "fork"})
	require.NoError(t, parseError)
	remoteValue, lookupError := command.Flags().GetString(RemoteFlagName)
	require.NoError(t, lookupError)
	require.Equal(t, "fork", remoteValue)
}
