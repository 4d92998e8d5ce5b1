package release

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/shared"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ExecutorOptionsProvider yields the shell executor settings for the current invocation.
type ExecutorOptionsProvider func() dependencies.ExecutorOptions

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveExecutorOptions(provider ExecutorOptionsProvider) dependencies.ExecutorOptions {
	if provider == nil {
		return dependencies.ExecutorOptions{}
	}
	return provider()
}

func repositoryFlagValue(command *cobra.Command) string {
	flagValue, flagError := command.Flags().GetString(flagutils.RepositoryFlagName)
	if flagError != nil {
		return ""
	}
	return strings.TrimSpace(flagValue)
}

func resolveGitExecutor(builder *CommandBuilder) (shared.GitExecutor, error) {
	return dependencies.ResolveGitExecutor(builder.GitExecutor, resolveLogger(builder.LoggerProvider), resolveExecutorOptions(builder.ExecutorOptionsProvider))
}
