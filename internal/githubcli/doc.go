// Package githubcli wraps the GitHub CLI for ghrepo workflows.
//
// Each operation validates its inputs, builds the gh invocation, and decodes
// the JSON gh prints into typed values. Execution goes through execshell so
// tests can substitute a scripted executor for the real gh binary.
package githubcli
