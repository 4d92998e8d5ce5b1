// Package gitrepo runs git operations against an explicit repository directory.
//
// RepositoryManager wraps the git subcommands the reconciler, rename, and
// release workflows depend on. Inspector answers whether a directory already
// holds a repository without shelling out, and the remote URL helpers build
// and parse the origin URLs those workflows link.
package gitrepo
