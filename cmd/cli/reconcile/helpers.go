package reconcile

import (
	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/repos/dependencies"
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
