package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	githubcmd "github.com/temirov/ghrepo/cmd/cli/github"
	reconcilecmd "github.com/temirov/ghrepo/cmd/cli/reconcile"
	"github.com/temirov/ghrepo/cmd/cli/repos"
	"github.com/temirov/ghrepo/cmd/cli/repos/release"
	"github.com/temirov/ghrepo/internal/githubauth"
	"github.com/temirov/ghrepo/internal/reconcile"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/shared"
	"github.com/temirov/ghrepo/internal/ui"
	"github.com/temirov/ghrepo/internal/utils"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	applicationNameConstant                 = "ghrepo"
	applicationShortDescriptionConstant     = "Create, publish, update and manage GitHub repositories from local directories"
	applicationLongDescriptionConstant      = "ghrepo drives git and the GitHub CLI to keep a local directory and its same-named GitHub repository in sync, and wraps the everyday gh chores (gists, pull requests, issues, secrets, releases and collaborators)."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	outputFlagNameConstant                  = "output"
	outputFlagUsageConstant                 = "Render command results as text, json or yaml."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonCommandTimeoutConfigKeyConstant   = commonConfigurationKeyConstant + ".command_timeout"
	environmentPrefixConstant               = "GHREPO"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	outputFormatErrorTemplateConstant       = "unable to resolve output format: %w"
	preflightConstructionTemplateConstant   = "unable to construct GitHub preflight: %w"
	preflightPassedMessageConstant          = "GitHub CLI preflight passed"
	logFieldCommandNameConstant             = "command_name"
	errorOutputTemplateConstant             = "Error: %v\n"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	reconcileConfigurationKeyConstant       = toolsConfigurationKeyConstant + ".reconcile"
	renameConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".rename"
	releaseConfigurationKeyConstant         = toolsConfigurationKeyConstant + ".release"
	gistConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".gist"
	githubConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".github"
	environmentAssignmentSeparatorConstant  = "="
	exitCodeSuccessConstant                 = 0
	exitCodeFailureConstant                 = 1
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging and execution settings shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Reconcile reconcilecmd.CommandConfiguration `mapstructure:"reconcile"`
	Rename    repos.RenameConfiguration         `mapstructure:"rename"`
	Release   release.CommandConfiguration      `mapstructure:"release"`
	Gist      githubcmd.GistConfiguration       `mapstructure:"gist"`
	GitHub    githubcmd.CommandConfiguration    `mapstructure:"github"`
}

// ApplicationDependencies lets callers replace the process-facing collaborators. Zero values select the defaults.
type ApplicationDependencies struct {
	GitExecutor         shared.GitExecutor
	FileSystem          shared.FileSystem
	Inspector           reconcile.RepositoryInspector
	IdentifierGenerator reconcile.IdentifierGenerator
	Environment         map[string]string
	WorkingDirectory    func() (string, error)
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	outputFormatFlagValue  string
	commandContextAccessor utils.CommandContextAccessor
	toggleSet              *flagutils.ToggleSet
	dependencies           ApplicationDependencies
	diagnosticWriter       io.Writer
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication(applicationDependencies ApplicationDependencies) *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		toggleSet:              flagutils.NewToggleSet(),
		dependencies:           applicationDependencies,
		diagnosticWriter:       os.Stderr,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if configurationError := application.initializeConfiguration(command); configurationError != nil {
				return configurationError
			}
			return application.verifyGitHub(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	flagutils.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.logFormatFlagValue, logFormatFlagNameConstant, "", []string{
		string(utils.LogFormatConsole),
		string(utils.LogFormatStructured),
	}, logFormatFlagUsageConstant)
	flagutils.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.outputFormatFlagValue, outputFlagNameConstant, string(ui.OutputFormatText), ui.OutputFormatChoices(), outputFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	for _, mode := range []reconcile.Mode{reconcile.ModeCreate, reconcile.ModePublish, reconcile.ModeUpdate} {
		reconcileBuilder := reconcilecmd.CommandBuilder{
			Mode:                    mode,
			LoggerProvider:          loggerProvider,
			ExecutorOptionsProvider: application.executorOptions,
			ConfigurationProvider: func() reconcilecmd.CommandConfiguration {
				return application.configuration.Tools.Reconcile
			},
			GitExecutor:         applicationDependencies.GitExecutor,
			FileSystem:          applicationDependencies.FileSystem,
			Inspector:           applicationDependencies.Inspector,
			IdentifierGenerator: applicationDependencies.IdentifierGenerator,
			ToggleSet:           application.toggleSet,
		}
		reconcileCommand, reconcileBuildError := reconcileBuilder.Build()
		if reconcileBuildError == nil {
			cobraCommand.AddCommand(reconcileCommand)
		}
	}

	renameBuilder := repos.RenameCommandBuilder{
		LoggerProvider:          loggerProvider,
		ExecutorOptionsProvider: application.executorOptions,
		ConfigurationProvider: func() repos.RenameConfiguration {
			return application.configuration.Tools.Rename
		},
		GitExecutor: applicationDependencies.GitExecutor,
		FileSystem:  applicationDependencies.FileSystem,
		ToggleSet:   application.toggleSet,
	}
	renameCommand, renameBuildError := renameBuilder.Build()
	if renameBuildError == nil {
		cobraCommand.AddCommand(renameCommand)
	}

	releaseBuilder := release.CommandBuilder{
		LoggerProvider:          loggerProvider,
		ExecutorOptionsProvider: application.executorOptions,
		ConfigurationProvider: func() release.CommandConfiguration {
			return application.configuration.Tools.Release
		},
		GitExecutor:      applicationDependencies.GitExecutor,
		ToggleSet:        application.toggleSet,
		WorkingDirectory: applicationDependencies.WorkingDirectory,
	}
	releaseCommand, releaseBuildError := releaseBuilder.Build()
	if releaseBuildError == nil {
		cobraCommand.AddCommand(releaseCommand)
	}

	githubBuilder := githubcmd.CommandBuilder{
		LoggerProvider:          loggerProvider,
		ExecutorOptionsProvider: application.executorOptions,
		ConfigurationProvider: func() githubcmd.CommandConfiguration {
			return application.configuration.Tools.GitHub
		},
		GistConfigurationProvider: func() githubcmd.GistConfiguration {
			return application.configuration.Tools.Gist
		},
		GitExecutor:      applicationDependencies.GitExecutor,
		FileSystem:       applicationDependencies.FileSystem,
		ToggleSet:        application.toggleSet,
		WorkingDirectory: applicationDependencies.WorkingDirectory,
	}
	githubCommands, githubBuildError := githubBuilder.Build()
	if githubBuildError == nil {
		cobraCommand.AddCommand(githubCommands...)
	}

	application.rootCommand = cobraCommand

	return application
}

// Run executes the command hierarchy against the provided streams and returns the process exit code.
// arguments[0] is the program name.
func (application *Application) Run(arguments []string, standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) int {
	commandArguments := []string{}
	if len(arguments) > 1 {
		commandArguments = arguments[1:]
	}

	application.diagnosticWriter = standardError
	application.rootCommand.SetArgs(application.toggleSet.Normalize(commandArguments))
	application.rootCommand.SetIn(standardInput)
	application.rootCommand.SetOut(standardOutput)
	application.rootCommand.SetErr(standardError)

	executionError := application.rootCommand.ExecuteContext(context.Background())
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		executionError = fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	if executionError != nil {
		fmt.Fprintf(standardError, errorOutputTemplateConstant, executionError)
		return exitCodeFailureConstant
	}
	return exitCodeSuccessConstant
}

// Run builds an application with default dependencies and executes it.
func Run(arguments []string, standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) int {
	return NewApplication(ApplicationDependencies{}).Run(arguments, standardInput, standardOutput, standardError)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:       string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:      string(utils.LogFormatConsole),
		commonCommandTimeoutConfigKeyConstant: time.Duration(0),
	}
	defaultGroups := []map[string]any{
		reconcilecmd.DefaultConfigurationValues(reconcileConfigurationKeyConstant),
		repos.DefaultConfigurationValues(renameConfigurationKeyConstant),
		release.DefaultConfigurationValues(releaseConfigurationKeyConstant),
		githubcmd.DefaultGistConfigurationValues(gistConfigurationKeyConstant),
		githubcmd.DefaultConfigurationValues(githubConfigurationKeyConstant),
	}
	for _, defaultGroup := range defaultGroups {
		for configurationKey, configurationValue := range defaultGroup {
			defaultValues[configurationKey] = configurationValue
		}
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	outputFormat, outputFormatError := ui.ParseOutputFormat(application.outputFormatFlagValue)
	if outputFormatError != nil {
		return fmt.Errorf(outputFormatErrorTemplateConstant, outputFormatError)
	}

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logLevel, levelError := utils.ParseLogLevel(application.configuration.Common.LogLevel)
	if levelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, levelError)
	}
	logFormat, formatError := utils.ParseLogFormat(application.configuration.Common.LogFormat)
	if formatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, formatError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithWriter(logLevel, logFormat, application.diagnosticWriter)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, string(logLevel)),
		zap.String(configurationLogFormatFieldConstant, string(logFormat)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithOutputFormat(updatedContext, outputFormat)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// verifyGitHub runs the gh installation and authentication checks for commands that talk to GitHub.
func (application *Application) verifyGitHub(command *cobra.Command) error {
	if !githubauth.CommandRequiresGitHub(command) {
		return nil
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(application.dependencies.GitExecutor, application.logger, application.executorOptions())
	if executorError != nil {
		return executorError
	}
	githubClient, clientError := dependencies.ResolveGitHubClient(gitExecutor)
	if clientError != nil {
		return clientError
	}
	preflight, preflightError := githubauth.NewPreflight(githubClient, application.environment())
	if preflightError != nil {
		return fmt.Errorf(preflightConstructionTemplateConstant, preflightError)
	}
	if verificationError := preflight.Verify(command.Context()); verificationError != nil {
		return verificationError
	}

	application.logger.Debug(preflightPassedMessageConstant, zap.String(logFieldCommandNameConstant, command.CommandPath()))
	return nil
}

func (application *Application) executorOptions() dependencies.ExecutorOptions {
	return dependencies.ExecutorOptions{
		HumanReadable:  application.humanReadableLoggingEnabled(),
		CommandTimeout: application.configuration.Common.CommandTimeout,
	}
}

func (application *Application) environment() map[string]string {
	if application.dependencies.Environment != nil {
		return application.dependencies.Environment
	}
	environment := map[string]string{}
	for _, assignment := range os.Environ() {
		name, value, found := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if found {
			environment[name] = value
		}
	}
	return environment
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
