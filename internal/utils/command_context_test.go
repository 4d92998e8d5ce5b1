package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/ui"
	"github.com/temirov/ghrepo/internal/utils"
)

func TestCommandContextAccessorRoundTrips(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, available)
	require.Equal(testInstance, ui.OutputFormatText, accessor.OutputFormat(context.Background()))

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/ghrepo/config.yaml")
	executionContext = accessor.WithOutputFormat(executionContext, ui.OutputFormatYAML)

	configurationFilePath, available := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, available)
	require.Equal(testInstance, "/etc/ghrepo/config.yaml", configurationFilePath)
	require.Equal(testInstance, ui.OutputFormatYAML, accessor.OutputFormat(executionContext))
}
