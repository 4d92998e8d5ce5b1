// Package execshell runs git and gh as typed commands.
//
// Every invocation is a ShellCommand carrying its own working directory, so
// callers never change the process directory. ShellExecutor logs each command
// through zap, reports lifecycle events to an optional CommandEventObserver,
// and converts non-zero exits into CommandFailedError values. CommandRunner
// is the seam tests replace with a fake.
package execshell
