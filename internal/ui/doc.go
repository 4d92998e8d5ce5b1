// Package ui renders console output: human-readable command lifecycle lines
// and text, JSON, or YAML result documents.
package ui
