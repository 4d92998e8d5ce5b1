// Package reconcile brings a local directory and the same-named GitHub repository into agreement.
//
// A reconciliation initializes the local repository when needed, creates or links the remote,
// commits pending changes, and pushes the current branch with a single rebase-and-retry on rejection.
// Each mode (create, publish, update) restricts which of those steps may run.
package reconcile
