package flags

import "github.com/spf13/cobra"

const (
	// RepositoryFlagName exposes the shared owner/name override flag name.
	RepositoryFlagName = "repo"
	// RepositoryFlagUsage describes the shared owner/name override flag purpose.
	RepositoryFlagUsage = "Target repository as OWNER/NAME (defaults to the origin remote of the working directory)"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
	// RemoteFlagName exposes the shared remote flag name.
	RemoteFlagName = "remote"
	// RemoteFlagUsage describes the shared remote flag purpose.
	RemoteFlagUsage = "Remote name to target"
)

// RepositoryFlagValues stores the repository override flag value.
type RepositoryFlagValues struct {
	Identifier string
}

// BindRepositoryFlag attaches the --repo flag to the command's persistent flags.
func BindRepositoryFlag(command *cobra.Command, usage string) *RepositoryFlagValues {
	values := &RepositoryFlagValues{}
	if command == nil {
		return values
	}
	if len(usage) == 0 {
		usage = RepositoryFlagUsage
	}
	persistentFlagSet := command.PersistentFlags()
	if persistentFlagSet.Lookup(RepositoryFlagName) == nil {
		persistentFlagSet.StringVar(&values.Identifier, RepositoryFlagName, "", usage)
	}
	return values
}

// EnsureRemoteFlag guarantees the shared remote flag is available on the command.
func EnsureRemoteFlag(command *cobra.Command, defaultValue string, usage string) {
	if command == nil {
		return
	}

	persistentSet := command.PersistentFlags()
	if persistentSet.Lookup(RemoteFlagName) == nil {
		persistentSet.String(RemoteFlagName, defaultValue, usage)
	}

	if command.Flags().Lookup(RemoteFlagName) == nil {
		if remoteFlag := persistentSet.Lookup(RemoteFlagName); remoteFlag != nil {
			command.Flags().AddFlag(remoteFlag)
		}
	}
}
