package gitrepo

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	schemeDelimiterConstant             = "://"
	scpHostDelimiterConstant            = ":"
	scpUserDelimiterConstant            = "@"
	remotePathSeparatorConstant         = "/"
	gitSuffixConstant                   = ".git"
	sshSchemeConstant                   = "ssh"
	httpsSchemeConstant                 = "https"
	httpSchemeConstant                  = "http"
	httpsRemoteTemplateConstant         = "https://%s/%s/%s.git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	unsupportedSchemeMessageConstant    = "unsupported remote scheme"
	missingRepositoryMessageConstant    = "remote must name exactly owner/repository"
)

// RemoteProtocol distinguishes SSH remotes from HTTPS remotes.
type RemoteProtocol string

// Recognized remote protocols. Plain http remotes are reported as HTTPS.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// RemoteURL is the owner/repository a git remote points at.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// OwnerRepository returns the owner/repository identifier accepted by gh --repo flags.
func (remote RemoteURL) OwnerRepository() string {
	return remote.Owner + remotePathSeparatorConstant + remote.Repository
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL understands scheme URLs (ssh, https, http) and scp-like "user@host:owner/repo" remotes.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}
	if !strings.Contains(trimmedRemote, schemeDelimiterConstant) {
		return parseSCPRemote(trimmedRemote)
	}

	parsedURL, urlError := url.Parse(trimmedRemote)
	if urlError != nil {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}

	var protocol RemoteProtocol
	switch strings.ToLower(parsedURL.Scheme) {
	case sshSchemeConstant:
		protocol = RemoteProtocolSSH
	case httpsSchemeConstant, httpSchemeConstant:
		protocol = RemoteProtocolHTTPS
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unsupportedSchemeMessageConstant}
	}
	return newRemoteURL(remote, protocol, parsedURL.Hostname(), parsedURL.Path)
}

func parseSCPRemote(remote string) (RemoteURL, error) {
	userAndHost, path, found := strings.Cut(remote, scpHostDelimiterConstant)
	if !found {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	host := userAndHost
	if userIndex := strings.LastIndex(userAndHost, scpUserDelimiterConstant); userIndex >= 0 {
		host = userAndHost[userIndex+1:]
	}
	return newRemoteURL(remote, RemoteProtocolSSH, host, path)
}

func newRemoteURL(input string, protocol RemoteProtocol, host string, path string) (RemoteURL, error) {
	segments := strings.Split(strings.Trim(path, remotePathSeparatorConstant), remotePathSeparatorConstant)
	if len(host) == 0 || len(segments) != 2 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: missingRepositoryMessageConstant}
	}
	owner := segments[0]
	repository := strings.TrimSuffix(segments[1], gitSuffixConstant)
	if len(owner) == 0 || len(repository) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: missingRepositoryMessageConstant}
	}
	return RemoteURL{Protocol: protocol, Host: host, Owner: owner, Repository: repository}, nil
}

// BuildHTTPSRemoteURL formats the HTTPS clone URL for owner/repository on host.
func BuildHTTPSRemoteURL(host string, owner string, repository string) (string, error) {
	components := []string{strings.TrimSpace(host), strings.TrimSpace(owner), strings.TrimSpace(repository)}
	for _, component := range components {
		if len(component) == 0 {
			return "", RemoteURLParseError{Input: strings.Join(components, remotePathSeparatorConstant), Message: requiredValueMessageConstant}
		}
	}
	return fmt.Sprintf(httpsRemoteTemplateConstant, components[0], components[1], components[2]), nil
}
