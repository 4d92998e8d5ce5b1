package githubcli

import (
	"context"
	"strconv"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	releaseSubcommandConstant          = "release"
	notesFlagConstant                  = "--notes"
	generateNotesFlagConstant          = "--generate-notes"
	prereleaseFlagConstant             = "--prerelease"
	tagNameFieldNameConstant           = "tag_name"
	releaseLimitDefaultValueConstant   = 30
	releaseJSONFieldsConstant          = "tagName,name,isDraft,isPrerelease,publishedAt"
	createReleaseOperationNameConstant = OperationName("CreateRelease")
	listReleasesOperationNameConstant  = OperationName("ListReleases")
)

// Release describes a GitHub release.
type Release struct {
	TagName      string `json:"tagName" yaml:"tag_name"`
	Name         string `json:"name" yaml:"name"`
	IsDraft      bool   `json:"isDraft" yaml:"draft"`
	IsPrerelease bool   `json:"isPrerelease" yaml:"prerelease"`
	PublishedAt  string `json:"publishedAt" yaml:"published_at"`
}

// ReleaseCreateOptions configures CreateRelease. Empty Notes asks GitHub to generate them.
type ReleaseCreateOptions struct {
	TagName    string
	Title      string
	Notes      string
	Draft      bool
	Prerelease bool
}

// CreateRelease publishes a release for TagName and returns its URL.
func (client *Client) CreateRelease(executionContext context.Context, repository string, options ReleaseCreateOptions) (string, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return "", validationError
	}
	tagName, tagError := requireValue(tagNameFieldNameConstant, options.TagName)
	if tagError != nil {
		return "", tagError
	}

	title := strings.TrimSpace(options.Title)
	if len(title) == 0 {
		title = tagName
	}

	arguments := []string{releaseSubcommandConstant, createSubcommandConstant, tagName, repoFlagConstant, repositoryIdentifier, titleFlagConstant, title}
	if len(strings.TrimSpace(options.Notes)) > 0 {
		arguments = append(arguments, notesFlagConstant, options.Notes)
	} else {
		arguments = append(arguments, generateNotesFlagConstant)
	}
	if options.Draft {
		arguments = append(arguments, draftFlagConstant)
	}
	if options.Prerelease {
		arguments = append(arguments, prereleaseFlagConstant)
	}

	executionResult, executionError := client.execute(executionContext, createReleaseOperationNameConstant, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return "", executionError
	}
	return lastOutputLine(executionResult.StandardOutput), nil
}

// ListReleases returns the most recent releases of the repository.
func (client *Client) ListReleases(executionContext context.Context, repository string, resultLimit int) ([]Release, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return nil, validationError
	}
	if resultLimit <= 0 {
		resultLimit = releaseLimitDefaultValueConstant
	}

	executionResult, executionError := client.execute(executionContext, listReleasesOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			releaseSubcommandConstant,
			listSubcommandConstant,
			repoFlagConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			releaseJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
	})
	if executionError != nil {
		return nil, executionError
	}

	releases := []Release{}
	if decodingError := decodeJSONResponse(listReleasesOperationNameConstant, executionResult.StandardOutput, &releases); decodingError != nil {
		return nil, decodingError
	}
	return releases, nil
}
