// Package cli constructs the ghrepo command-line interface. It wires the Cobra
// command hierarchy to the Viper configuration loader, the zap logger and the
// GitHub CLI preflight, and exposes Run so the whole program can be executed
// against arbitrary streams.
package cli
