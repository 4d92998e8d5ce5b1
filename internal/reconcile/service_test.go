package reconcile_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/reconcile"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	reconcileTestProjectPathConstant               = "/work/project"
	reconcileTestProjectNameConstant               = "project"
	reconcileTestUsernameConstant                  = "octocat"
	reconcileTestLinkedURLConstant                 = "https://github.com/octocat/project.git"
	reconcileTestReconciliationIDConstant          = "reconciliation-1"
	reconcileTestFeatureBranchConstant             = "trunk"
	reconcileTestCustomMessageConstant             = "Ship it"
	reconcileTestInitOperationConstant             = "init"
	reconcileTestCommitOperationConstant           = "commit"
	reconcileTestPushOperationConstant             = "push"
	reconcileTestPullRebaseOperationConstant       = "pull-rebase"
	reconcileTestAddRemoteOperationConstant        = "remote-add"
	reconcileTestRemoveRemoteOperationConstant     = "remote-remove"
	reconcileTestCreateRepositoryOperationConstant = "gh-repo-create"
)

type stubFileInfo struct {
	directory bool
}

func (stubFileInfo) Name() string       { return reconcileTestProjectNameConstant }
func (stubFileInfo) Size() int64        { return 0 }
func (stubFileInfo) Mode() fs.FileMode  { return 0 }
func (stubFileInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (info stubFileInfo) IsDir() bool   { return info.directory }
func (stubFileInfo) Sys() any           { return nil }

type stubFileSystem struct {
	directories map[string]bool
	files       map[string]bool
}

func (fileSystem *stubFileSystem) Stat(path string) (fs.FileInfo, error) {
	if fileSystem.directories[path] {
		return stubFileInfo{directory: true}, nil
	}
	if fileSystem.files[path] {
		return stubFileInfo{}, nil
	}
	return nil, os.ErrNotExist
}

func (fileSystem *stubFileSystem) Rename(string, string) error {
	return nil
}

func (fileSystem *stubFileSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(reconcileTestProjectPathConstant, path), nil
}

func (fileSystem *stubFileSystem) MkdirAll(string, fs.FileMode) error {
	return nil
}

type stubInspector struct {
	repositories map[string]bool
	err          error
}

func (inspector *stubInspector) IsRepository(path string) (bool, error) {
	if inspector.err != nil {
		return false, inspector.err
	}
	return inspector.repositories[path], nil
}

type recordingGit struct {
	operations      []string
	initError       error
	stageError      error
	commitError     error
	addRemoteError  error
	rebaseError     error
	stagedChanges   bool
	unborn          bool
	historyError    error
	branch          string
	branchError     error
	remotes         []string
	originURL       string
	pushErrors      []error
	pushCount       int
	commitMessages  []string
	addedRemoteURLs []string
}

func (git *recordingGit) Initialize(context.Context, string) error {
	git.operations = append(git.operations, reconcileTestInitOperationConstant)
	return git.initError
}

func (git *recordingGit) StageAll(context.Context, string) error {
	git.operations = append(git.operations, "add")
	return git.stageError
}

func (git *recordingGit) HasStagedChanges(context.Context, string) (bool, error) {
	return git.stagedChanges, nil
}

func (git *recordingGit) Commit(_ context.Context, _ string, message string) error {
	git.operations = append(git.operations, reconcileTestCommitOperationConstant)
	git.commitMessages = append(git.commitMessages, message)
	return git.commitError
}

func (git *recordingGit) CurrentBranch(context.Context, string) (string, error) {
	return git.branch, git.branchError
}

func (git *recordingGit) HasCommits(context.Context, string) (bool, error) {
	if git.historyError != nil {
		return false, git.historyError
	}
	return !git.unborn, nil
}

func (git *recordingGit) ListRemotes(context.Context, string) ([]string, error) {
	return git.remotes, nil
}

func (git *recordingGit) GetRemoteURL(context.Context, string, string) (string, error) {
	return git.originURL, nil
}

func (git *recordingGit) RemoveRemote(context.Context, string, string) (bool, error) {
	git.operations = append(git.operations, reconcileTestRemoveRemoteOperationConstant)
	return true, nil
}

func (git *recordingGit) AddRemote(_ context.Context, _ string, _ string, remoteURL string) error {
	git.operations = append(git.operations, reconcileTestAddRemoteOperationConstant)
	git.addedRemoteURLs = append(git.addedRemoteURLs, remoteURL)
	return git.addRemoteError
}

func (git *recordingGit) Push(context.Context, string, string, string) error {
	git.operations = append(git.operations, reconcileTestPushOperationConstant)
	git.pushCount++
	if git.pushCount <= len(git.pushErrors) {
		return git.pushErrors[git.pushCount-1]
	}
	return nil
}

func (git *recordingGit) PullRebase(context.Context, string, string, string) error {
	git.operations = append(git.operations, reconcileTestPullRebaseOperationConstant)
	return git.rebaseError
}

type recordingGitHub struct {
	operations     []string
	repositories   []string
	listError      error
	createError    error
	username       string
	userError      error
	requestedLimit int
	createOptions  []githubcli.RepositoryCreateOptions
}

func (gitHub *recordingGitHub) ListRepositories(_ context.Context, options githubcli.RepositoryListOptions) ([]string, error) {
	gitHub.requestedLimit = options.ResultLimit
	return gitHub.repositories, gitHub.listError
}

func (gitHub *recordingGitHub) CreateRepository(_ context.Context, options githubcli.RepositoryCreateOptions) error {
	gitHub.operations = append(gitHub.operations, reconcileTestCreateRepositoryOperationConstant)
	gitHub.createOptions = append(gitHub.createOptions, options)
	return gitHub.createError
}

func (gitHub *recordingGitHub) ResolveAuthenticatedUser(context.Context) (string, error) {
	return gitHub.username, gitHub.userError
}

type serviceFixture struct {
	fileSystem *stubFileSystem
	inspector  *stubInspector
	git        *recordingGit
	gitHub     *recordingGitHub
	output     *bytes.Buffer
	logs       *observer.ObservedLogs
	service    *reconcile.Service
}

func newServiceFixture(testInstance *testing.T, configure func(*serviceFixture)) *serviceFixture {
	testInstance.Helper()
	fixture := &serviceFixture{
		fileSystem: &stubFileSystem{directories: map[string]bool{reconcileTestProjectPathConstant: true}},
		inspector:  &stubInspector{repositories: map[string]bool{}},
		git:        &recordingGit{stagedChanges: true, branch: "main"},
		gitHub:     &recordingGitHub{username: reconcileTestUsernameConstant},
		output:     &bytes.Buffer{},
	}
	if configure != nil {
		configure(fixture)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	fixture.logs = logs
	service, creationError := reconcile.NewService(reconcile.Dependencies{
		Logger:              zap.New(core),
		FileSystem:          fixture.fileSystem,
		Inspector:           fixture.inspector,
		Git:                 fixture.git,
		GitHub:              fixture.gitHub,
		HomeExpander:        pathutils.NewHomeExpanderWithProvider(func() (string, error) { return "/home/octocat", nil }),
		Output:              fixture.output,
		IdentifierGenerator: func() string { return reconcileTestReconciliationIDConstant },
	})
	require.NoError(testInstance, creationError)
	fixture.service = service
	return fixture
}

func TestReconcileScenarios(testInstance *testing.T) {
	testCases := []struct {
		name               string
		configure          func(*serviceFixture)
		mode               reconcile.Mode
		commitMessage      string
		expectedGit        []string
		expectedGitHub     []string
		expectedOutcome    reconcile.Outcome
		expectedCommitMsgs []string
		expectedOutput     []string
	}{
		{
			name:           "new_directory_is_initialized_created_committed_and_pushed",
			mode:           reconcile.ModeCreate,
			expectedGit:    []string{"init", "add", "commit", "push"},
			expectedGitHub: []string{reconcileTestCreateRepositoryOperationConstant},
			expectedOutcome: reconcile.Outcome{
				Initialized:     true,
				CreatedOnRemote: true,
				Committed:       true,
				PushAttempts:    1,
				Pushed:          true,
			},
			expectedCommitMsgs: []string{"Initial commit"},
			expectedOutput:     []string{"Initialized git repository", "Created GitHub repository project", "Pushed main to origin"},
		},
		{
			name: "linked_clean_repository_skips_init_create_and_commit",
			configure: func(fixture *serviceFixture) {
				fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
				fixture.gitHub.repositories = []string{"other", reconcileTestProjectNameConstant}
				fixture.git.stagedChanges = false
				fixture.git.remotes = []string{"origin"}
				fixture.git.originURL = reconcileTestLinkedURLConstant
			},
			mode:        reconcile.ModeUpdate,
			expectedGit: []string{"add", "push"},
			expectedOutcome: reconcile.Outcome{
				RemoteURL:    reconcileTestLinkedURLConstant,
				PushAttempts: 1,
				Pushed:       true,
			},
			expectedOutput: []string{"already exists in", "skipping relink", "No changes to commit"},
		},
		{
			name: "rejected_push_rebases_once_and_retries_once",
			configure: func(fixture *serviceFixture) {
				fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
				fixture.gitHub.repositories = []string{reconcileTestProjectNameConstant}
				fixture.git.pushErrors = []error{errors.New("rejected: fetch first")}
			},
			mode:          reconcile.ModeCreate,
			commitMessage: reconcileTestCustomMessageConstant,
			expectedGit:   []string{"remote-add", "add", "commit", "push", "pull-rebase", "push"},
			expectedOutcome: reconcile.Outcome{
				RemoteURL:    reconcileTestLinkedURLConstant,
				Linked:       true,
				Committed:    true,
				Rebased:      true,
				PushAttempts: 2,
				Pushed:       true,
			},
			expectedCommitMsgs: []string{reconcileTestCustomMessageConstant},
			expectedOutput:     []string{"Push rejected; rebasing onto origin/main"},
		},
		{
			name: "stale_origin_is_replaced",
			configure: func(fixture *serviceFixture) {
				fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
				fixture.gitHub.repositories = []string{"PROJECT"}
				fixture.git.remotes = []string{"origin"}
				fixture.git.originURL = "git@github.com:someone-else/project.git"
				fixture.git.branch = reconcileTestFeatureBranchConstant
			},
			mode:        reconcile.ModeUpdate,
			expectedGit: []string{"remote-remove", "remote-add", "add", "commit", "push"},
			expectedOutcome: reconcile.Outcome{
				RemoteURL:    reconcileTestLinkedURLConstant,
				Branch:       reconcileTestFeatureBranchConstant,
				Linked:       true,
				Committed:    true,
				PushAttempts: 1,
				Pushed:       true,
			},
			expectedCommitMsgs: []string{"Automatic commit: Updated files"},
		},
		{
			name: "publish_existing_repository_creates_remote",
			configure: func(fixture *serviceFixture) {
				fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
			},
			mode:           reconcile.ModePublish,
			expectedGit:    []string{"add", "commit", "push"},
			expectedGitHub: []string{reconcileTestCreateRepositoryOperationConstant},
			expectedOutcome: reconcile.Outcome{
				CreatedOnRemote: true,
				Committed:       true,
				PushAttempts:    1,
				Pushed:          true,
			},
			expectedCommitMsgs: []string{"Initial commit"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fixture := newServiceFixture(testInstance, testCase.configure)

			outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{
				RepositoryPath: reconcileTestProjectPathConstant,
				Mode:           testCase.mode,
				CommitMessage:  testCase.commitMessage,
			})
			require.NoError(testInstance, reconcileError)
			require.True(testInstance, outcome.Succeeded())

			require.Equal(testInstance, testCase.expectedGit, fixture.git.operations)
			require.Equal(testInstance, testCase.expectedGitHub, fixture.gitHub.operations)
			require.Equal(testInstance, testCase.expectedCommitMsgs, fixture.git.commitMessages)

			expectedOutcome := testCase.expectedOutcome
			expectedOutcome.ReconciliationID = reconcileTestReconciliationIDConstant
			expectedOutcome.Mode = testCase.mode
			expectedOutcome.Target = reconcile.RepoTarget{LocalPath: reconcileTestProjectPathConstant, Name: reconcileTestProjectNameConstant}
			if len(expectedOutcome.Branch) == 0 {
				expectedOutcome.Branch = "main"
			}
			outcome.Remote = reconcile.RemoteState{}
			require.Equal(testInstance, expectedOutcome, outcome)

			for _, fragment := range testCase.expectedOutput {
				require.Contains(testInstance, fixture.output.String(), fragment)
			}
		})
	}
}

func TestReconcileFailures(testInstance *testing.T) {
	rejection := errors.New("rejected")

	testCases := []struct {
		name          string
		configure     func(*serviceFixture)
		mode          reconcile.Mode
		path          string
		expectedKind  reconcile.ErrorKind
		expectedGit   []string
		expectedCause error
	}{
		{
			name:         "missing_directory",
			path:         "/work/missing",
			expectedKind: reconcile.ErrorKindPathNotFound,
			expectedGit:  nil,
		},
		{
			name: "path_is_a_file",
			configure: func(fixture *serviceFixture) {
				fixture.fileSystem.files = map[string]bool{"/work/notes.txt": true}
			},
			path:          "/work/notes.txt",
			expectedKind:  reconcile.ErrorKindPathNotFound,
			expectedCause: reconcile.ErrPathNotDirectory,
		},
		{
			name: "init_failure",
			configure: func(fixture *serviceFixture) {
				fixture.git.initError = rejection
			},
			expectedKind:  reconcile.ErrorKindRepositoryInitFailed,
			expectedGit:   []string{"init"},
			expectedCause: rejection,
		},
		{
			name: "inspection_failure",
			configure: func(fixture *serviceFixture) {
				fixture.inspector.err = rejection
			},
			expectedKind:  reconcile.ErrorKindRepositoryInitFailed,
			expectedCause: rejection,
		},
		{
			name: "repository_list_failure",
			configure: func(fixture *serviceFixture) {
				fixture.gitHub.listError = rejection
			},
			expectedKind:  reconcile.ErrorKindRemoteQueryFailed,
			expectedGit:   []string{"init"},
			expectedCause: rejection,
		},
		{
			name: "user_lookup_failure",
			configure: func(fixture *serviceFixture) {
				fixture.gitHub.repositories = []string{reconcileTestProjectNameConstant}
				fixture.gitHub.userError = rejection
			},
			expectedKind:  reconcile.ErrorKindRemoteQueryFailed,
			expectedGit:   []string{"init"},
			expectedCause: rejection,
		},
		{
			name: "remote_create_failure",
			configure: func(fixture *serviceFixture) {
				fixture.gitHub.createError = rejection
			},
			expectedKind:  reconcile.ErrorKindRemoteCreateFailed,
			expectedGit:   []string{"init"},
			expectedCause: rejection,
		},
		{
			name: "remote_link_failure",
			configure: func(fixture *serviceFixture) {
				fixture.gitHub.repositories = []string{reconcileTestProjectNameConstant}
				fixture.git.addRemoteError = rejection
			},
			expectedKind:  reconcile.ErrorKindRemoteLinkFailed,
			expectedGit:   []string{"init", "remote-add"},
			expectedCause: rejection,
		},
		{
			name: "stage_failure",
			configure: func(fixture *serviceFixture) {
				fixture.git.stageError = rejection
			},
			expectedKind:  reconcile.ErrorKindStageFailed,
			expectedGit:   []string{"init", "add"},
			expectedCause: rejection,
		},
		{
			name: "commit_failure",
			configure: func(fixture *serviceFixture) {
				fixture.git.commitError = rejection
			},
			expectedKind:  reconcile.ErrorKindCommitFailed,
			expectedGit:   []string{"init", "add", "commit"},
			expectedCause: rejection,
		},
		{
			name: "second_push_rejection_never_tries_a_third_time",
			configure: func(fixture *serviceFixture) {
				fixture.git.pushErrors = []error{rejection, rejection, rejection}
			},
			expectedKind:  reconcile.ErrorKindPushConflictUnresolved,
			expectedGit:   []string{"init", "add", "commit", "push", "pull-rebase", "push"},
			expectedCause: rejection,
		},
		{
			name: "failed_rebase_skips_retry",
			configure: func(fixture *serviceFixture) {
				fixture.git.pushErrors = []error{rejection}
				fixture.git.rebaseError = errors.New("conflict")
			},
			expectedKind:  reconcile.ErrorKindPushConflictUnresolved,
			expectedGit:   []string{"init", "add", "commit", "push", "pull-rebase"},
			expectedCause: rejection,
		},
		{
			name:          "publish_requires_local_repository",
			mode:          reconcile.ModePublish,
			expectedKind:  reconcile.ErrorKindLocalRepositoryMissing,
			expectedCause: reconcile.ErrLocalRepositoryMissing,
		},
		{
			name:          "update_never_creates_remote",
			mode:          reconcile.ModeUpdate,
			expectedKind:  reconcile.ErrorKindRemoteRepositoryMissing,
			expectedGit:   []string{"init"},
			expectedCause: reconcile.ErrRemoteRepositoryMissing,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fixture := newServiceFixture(testInstance, testCase.configure)
			repositoryPath := testCase.path
			if len(repositoryPath) == 0 {
				repositoryPath = reconcileTestProjectPathConstant
			}

			outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{
				RepositoryPath: repositoryPath,
				Mode:           testCase.mode,
			})
			require.Error(testInstance, reconcileError)

			var failure *reconcile.Failure
			require.ErrorAs(testInstance, reconcileError, &failure)
			require.Equal(testInstance, testCase.expectedKind, failure.Kind)
			require.Same(testInstance, failure, outcome.Error)
			require.False(testInstance, outcome.Succeeded())
			require.False(testInstance, outcome.Pushed)
			require.Equal(testInstance, testCase.expectedGit, fixture.git.operations)
			if testCase.expectedCause != nil {
				require.ErrorIs(testInstance, reconcileError, testCase.expectedCause)
			}

			kind, found := reconcile.KindOf(reconcileError)
			require.True(testInstance, found)
			require.Equal(testInstance, testCase.expectedKind, kind)

			failureEntries := fixture.logs.FilterMessage("reconciliation failed").All()
			require.Len(testInstance, failureEntries, 1)
			require.Equal(testInstance, string(testCase.expectedKind), failureEntries[0].ContextMap()["error_kind"])
		})
	}
}

func TestReconcileNeverReinitializesExistingRepository(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
		fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
	})

	for iteration := 0; iteration < 2; iteration++ {
		_, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
		require.NoError(testInstance, reconcileError)
	}
	require.NotContains(testInstance, fixture.git.operations, reconcileTestInitOperationConstant)
}

func TestReconcileMatchesRemoteNamesCaseInsensitively(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
		fixture.gitHub.repositories = []string{"Project"}
	})

	outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
	require.NoError(testInstance, reconcileError)
	require.Empty(testInstance, fixture.gitHub.operations)
	require.True(testInstance, outcome.Remote.Exists)
	require.True(testInstance, outcome.Linked)
	require.Equal(testInstance, reconcileTestUsernameConstant, outcome.Remote.Username)
	require.Equal(testInstance, []string{reconcileTestLinkedURLConstant}, fixture.git.addedRemoteURLs)
}

func TestReconcileMatchesOriginRemoteExactly(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
		fixture.inspector.repositories[reconcileTestProjectPathConstant] = true
		fixture.gitHub.repositories = []string{reconcileTestProjectNameConstant}
		fixture.git.remotes = []string{"Origin", "upstream"}
		fixture.git.originURL = reconcileTestLinkedURLConstant
	})

	outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
	require.NoError(testInstance, reconcileError)
	require.NotContains(testInstance, fixture.git.operations, reconcileTestRemoveRemoteOperationConstant)
	require.Equal(testInstance, []string{reconcileTestLinkedURLConstant}, fixture.git.addedRemoteURLs)
	require.True(testInstance, outcome.Linked)
	require.NotContains(testInstance, fixture.output.String(), "skipping relink")
}

func TestReconcileSkipsPushForUnbornBranch(testInstance *testing.T) {
	testCases := []struct {
		name          string
		historyError  error
		expectedGit   []string
		expectPushed  bool
		expectMessage bool
	}{
		{
			name:          "unborn_branch_is_not_pushed",
			expectedGit:   []string{"init", "add"},
			expectMessage: true,
		},
		{
			name:         "inconclusive_history_check_still_pushes",
			historyError: errors.New("fatal: bad object HEAD"),
			expectedGit:  []string{"init", "add", "push"},
			expectPushed: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
				fixture.git.stagedChanges = false
				fixture.git.unborn = true
				fixture.git.historyError = testCase.historyError
			})

			outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
			require.NoError(testInstance, reconcileError)
			require.True(testInstance, outcome.Succeeded())
			require.Equal(testInstance, testCase.expectedGit, fixture.git.operations)
			require.Equal(testInstance, testCase.expectPushed, outcome.Pushed)
			require.False(testInstance, outcome.Committed)
			require.False(testInstance, outcome.Rebased)
			require.Equal(testInstance, testCase.expectMessage, strings.Contains(fixture.output.String(), "Nothing to push: main has no commits"))
		})
	}
}

func TestReconcileWarnsWhenRepositoryListReachesLimit(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
		fixture.gitHub.repositories = []string{"alpha", "beta"}
	})

	_, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{
		RepositoryPath:      reconcileTestProjectPathConstant,
		RepositoryListLimit: 2,
	})
	require.NoError(testInstance, reconcileError)
	require.Equal(testInstance, 2, fixture.gitHub.requestedLimit)

	warnings := fixture.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(testInstance, warnings, 1)
	require.EqualValues(testInstance, 2, warnings[0].ContextMap()["limit"])
	require.Equal(testInstance, reconcileTestReconciliationIDConstant, warnings[0].ContextMap()["reconciliation_id"])
}

func TestReconcileUsesDefaultListLimit(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, nil)

	_, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
	require.NoError(testInstance, reconcileError)
	require.Equal(testInstance, githubcli.DefaultRepositoryListLimit(), fixture.gitHub.requestedLimit)
	require.Empty(testInstance, fixture.logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestReconcileFallsBackToMainBranch(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, func(fixture *serviceFixture) {
		fixture.git.branch = ""
		fixture.git.branchError = errors.New("ref HEAD is not a symbolic ref")
	})

	outcome, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{RepositoryPath: reconcileTestProjectPathConstant})
	require.NoError(testInstance, reconcileError)
	require.Equal(testInstance, "main", outcome.Branch)
	require.Contains(testInstance, fixture.output.String(), "Could not determine current branch; using main")
}

func TestReconcileCreatesRemoteFromRepositoryDirectory(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, nil)

	_, reconcileError := fixture.service.Reconcile(context.Background(), reconcile.Options{
		RepositoryPath: reconcileTestProjectPathConstant,
		Visibility:     githubcli.RepositoryVisibilityPrivate,
	})
	require.NoError(testInstance, reconcileError)
	require.Len(testInstance, fixture.gitHub.createOptions, 1)
	require.Equal(testInstance, githubcli.RepositoryCreateOptions{
		Name:           reconcileTestProjectNameConstant,
		RepositoryPath: reconcileTestProjectPathConstant,
		Visibility:     githubcli.RepositoryVisibilityPrivate,
		RemoteName:     "origin",
	}, fixture.gitHub.createOptions[0])
}

func TestResolveTarget(testInstance *testing.T) {
	fixture := newServiceFixture(testInstance, nil)

	testCases := []struct {
		name         string
		directory    string
		expectedPath string
		expectedName string
	}{
		{name: "absolute", directory: "/work/project/", expectedPath: "/work/project", expectedName: "project"},
		{name: "empty_means_current_directory", directory: "  ", expectedPath: "/work/project", expectedName: "project"},
		{name: "relative", directory: "nested", expectedPath: "/work/project/nested", expectedName: "nested"},
		{name: "home", directory: "~/code/tool", expectedPath: "/home/octocat/code/tool", expectedName: "tool"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			target, resolveError := fixture.service.ResolveTarget(testCase.directory)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, target.LocalPath)
			require.Equal(testInstance, testCase.expectedName, target.Name)
		})
	}
}

func TestParseMode(testInstance *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		expectedMode  reconcile.Mode
		expectedError bool
	}{
		{name: "empty_defaults_to_create", raw: "", expectedMode: reconcile.ModeCreate},
		{name: "publish", raw: " Publish ", expectedMode: reconcile.ModePublish},
		{name: "update", raw: "update", expectedMode: reconcile.ModeUpdate},
		{name: "unknown", raw: "destroy", expectedError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			mode, parseError := reconcile.ParseMode(testCase.raw)
			if testCase.expectedError {
				require.Error(testInstance, parseError)
				require.True(testInstance, strings.Contains(parseError.Error(), "destroy"))
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedMode, mode)
		})
	}
}

func TestPolicyForModeDefaults(testInstance *testing.T) {
	require.Equal(testInstance, "Initial commit", reconcile.PolicyForMode(reconcile.ModeCreate).DefaultCommitMessage)
	require.Equal(testInstance, "Initial commit", reconcile.PolicyForMode(reconcile.ModePublish).DefaultCommitMessage)
	require.Equal(testInstance, "Automatic commit: Updated files", reconcile.PolicyForMode(reconcile.ModeUpdate).DefaultCommitMessage)
	require.False(testInstance, reconcile.PolicyForMode(reconcile.ModePublish).MayInitializeLocal)
	require.False(testInstance, reconcile.PolicyForMode(reconcile.ModeUpdate).MayCreateRemote)
	require.Equal(testInstance, reconcile.ModeCreate, reconcile.PolicyForMode(reconcile.Mode("unknown")).Mode)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, creationError := reconcile.NewService(reconcile.Dependencies{})
	require.ErrorIs(testInstance, creationError, reconcile.ErrLoggerNotConfigured)

	_, creationError = reconcile.NewService(reconcile.Dependencies{Logger: zap.NewNop(), FileSystem: &stubFileSystem{}, Inspector: &stubInspector{}, Git: &recordingGit{}})
	require.ErrorIs(testInstance, creationError, reconcile.ErrGitHubOperationsNotConfigured)
}
