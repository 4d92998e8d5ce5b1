package ui_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/ui"
)

type testSummaryDocument struct {
	Name   string `json:"name" yaml:"name"`
	Pushed bool   `json:"pushed" yaml:"pushed"`
}

func TestParseOutputFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawFormat      string
		expectedFormat ui.OutputFormat
		expectError    bool
	}{
		{name: "empty_defaults_to_text", rawFormat: "", expectedFormat: ui.OutputFormatText},
		{name: "json_mixed_case", rawFormat: " JSON ", expectedFormat: ui.OutputFormatJSON},
		{name: "yml_alias", rawFormat: "yml", expectedFormat: ui.OutputFormatYAML},
		{name: "unknown_format", rawFormat: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			format, parseError := ui.ParseOutputFormat(testCase.rawFormat)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, format)
		})
	}
}

func TestWriteDocumentFormats(testInstance *testing.T) {
	document := testSummaryDocument{Name: "proj", Pushed: true}
	textRenderer := func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, "%s pushed=%t\n", document.Name, document.Pushed)
		return writeError
	}

	testCases := []struct {
		name           string
		format         ui.OutputFormat
		expectedOutput string
	}{
		{name: "text", format: ui.OutputFormatText, expectedOutput: "proj pushed=true\n"},
		{name: "json", format: ui.OutputFormatJSON, expectedOutput: "{\n  \"name\": \"proj\",\n  \"pushed\": true\n}\n"},
		{name: "yaml", format: ui.OutputFormatYAML, expectedOutput: "name: proj\npushed: true\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			require.NoError(testInstance, ui.WriteDocument(outputBuffer, testCase.format, document, textRenderer))
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestWriteDocumentRequiresTextRenderer(testInstance *testing.T) {
	require.Error(testInstance, ui.WriteDocument(&bytes.Buffer{}, ui.OutputFormatText, nil, nil))
}
