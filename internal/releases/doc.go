// Package releases annotates tags in local repositories and publishes them to a remote.
package releases
