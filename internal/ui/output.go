package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	outputFormatTextStringConstant   = "text"
	outputFormatJSONStringConstant   = "json"
	outputFormatYAMLStringConstant   = "yaml"
	unsupportedOutputFormatTemplate  = "unsupported output format %q (expected text, json, or yaml)"
	documentEncodingErrorTemplate    = "unable to encode %s output: %w"
	jsonIndentationConstant          = "  "
	yamlIndentationConstant          = 2
	textRendererNotConfiguredMessage = "text output is not available for this command"
)

// OutputFormat selects how command results are written to standard output.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = OutputFormat(outputFormatTextStringConstant)
	OutputFormatJSON OutputFormat = OutputFormat(outputFormatJSONStringConstant)
	OutputFormatYAML OutputFormat = OutputFormat(outputFormatYAMLStringConstant)
)

// OutputFormatChoices lists the accepted output format values in display order.
func OutputFormatChoices() []string {
	return []string{outputFormatTextStringConstant, outputFormatJSONStringConstant, outputFormatYAMLStringConstant}
}

// ParseOutputFormat normalizes a user-supplied format name. An empty value selects text.
func ParseOutputFormat(rawFormat string) (OutputFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawFormat))
	switch normalized {
	case "", outputFormatTextStringConstant:
		return OutputFormatText, nil
	case outputFormatJSONStringConstant:
		return OutputFormatJSON, nil
	case outputFormatYAMLStringConstant, "yml":
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedOutputFormatTemplate, rawFormat)
	}
}

// WriteDocument renders document in the requested format. Text output is delegated to textRenderer.
func WriteDocument(writer io.Writer, format OutputFormat, document any, textRenderer func(io.Writer) error) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentationConstant)
		if encodingError := encoder.Encode(document); encodingError != nil {
			return fmt.Errorf(documentEncodingErrorTemplate, format, encodingError)
		}
		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentationConstant)
		if encodingError := encoder.Encode(document); encodingError != nil {
			return fmt.Errorf(documentEncodingErrorTemplate, format, encodingError)
		}
		return encoder.Close()
	default:
		if textRenderer == nil {
			return errors.New(textRendererNotConfiguredMessage)
		}
		return textRenderer(writer)
	}
}
