// Package githubauth checks that the GitHub CLI is installed and authenticated
// before ghrepo issues any command that talks to GitHub.
package githubauth
