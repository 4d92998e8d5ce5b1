package utils

import (
	"context"

	"github.com/temirov/ghrepo/internal/ui"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	outputFormatContextKeyConstant          = commandContextKey("outputFormat")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}

// WithOutputFormat attaches the selected result rendering to the provided context.
func (accessor CommandContextAccessor) WithOutputFormat(parentContext context.Context, outputFormat ui.OutputFormat) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, outputFormatContextKeyConstant, outputFormat)
}

// OutputFormat extracts the selected result rendering, defaulting to text.
func (accessor CommandContextAccessor) OutputFormat(executionContext context.Context) ui.OutputFormat {
	if executionContext == nil {
		return ui.OutputFormatText
	}
	outputFormat, outputFormatAvailable := executionContext.Value(outputFormatContextKeyConstant).(ui.OutputFormat)
	if !outputFormatAvailable || len(outputFormat) == 0 {
		return ui.OutputFormatText
	}
	return outputFormat
}
