// Package prompt reads yes/no confirmations from an interactive terminal.
package prompt
