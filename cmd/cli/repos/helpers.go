package repos

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/prompt"
	"github.com/temirov/ghrepo/internal/repos/shared"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ExecutorOptionsProvider yields the shell executor settings for the current invocation.
type ExecutorOptionsProvider func() dependencies.ExecutorOptions

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

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

func resolvePrompter(factory PrompterFactory, command *cobra.Command) shared.ConfirmationPrompter {
	if factory != nil {
		prompter := factory(command)
		if prompter != nil {
			return prompter
		}
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}
