// Package utils exposes reusable helpers consumed by multiple commands.
//
// ConfigurationLoader layers the embedded defaults, an optional configuration
// file and GHREPO_* environment variables through Viper. LoggerFactory builds
// zap loggers that write to the writer the CLI was started with, and
// CommandContextAccessor carries per-invocation values through cobra contexts.
package utils
