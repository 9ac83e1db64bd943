/*
Package fastver provides a convenient api over the core version model: pin
sources that read version pin manifests from memory or git repositories, and
checkers that match a release feed against those pins.
*/
package fastver

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/fastver/fastver-core/providers/fetchers"
	"github.com/fastver/fastver-core/providers/parsers"
)

// Pin represents one named version pin: a component name and the raw
// requirement rule constraining its versions.
type Pin struct {
	Name string
	Rule string
}

// gitRepoRgx is used to parse repository info from a GIT-compatible address string.
//
// Examples matching the regexp:
//
//	'git@myhostname:vendor/reponame.git'
//	'https://myhostname/vendor/reponame.git' and so on...
//
// Groups:
//
//	1: protocol (e.g. 'https://' or 'git@')
//	6: hostname (e.g. 'github.com')
//	8: full repo name (e.g. 'vendor/reponame')
var gitRepoRgx string = `^(((git@)|(git:|ssh:|(http[s]?:\/\/))))([\w\.@\\-~]+)(:|\/)([\w\.@\:\/\-~]+)(\.git)(\/-)?`

// gitRepoRgxCompiled is compiled from gitRepoRgx.
var gitRepoRgxCompiled *regexp.Regexp

func init() {
	gitRepoRgxCompiled = regexp.MustCompile(gitRepoRgx)
}

// PinSource represents abstraction over version pin manifests and provides
// a convenient interface to fetch the pins they declare.
type PinSource interface {
	// Pins returns the named version pins declared by the source.
	Pins(ctx context.Context) ([]Pin, error)
}

// NewMemorySource constructs a PinSource over an in-memory file map. The
// manifest is expected under the 'versions.txt' key.
func NewMemorySource(files map[string][]byte) PinSource {
	return &MemoryPinSource{
		fetchers.ByteMapFetcher{Files: files},
	}
}

// MemoryPinSource reads pins from an in-memory file map.
type MemoryPinSource struct {
	fetcher fetchers.ByteMapFetcher
}

// Pins returns the named version pins declared by the source.
func (mps MemoryPinSource) Pins(ctx context.Context) ([]Pin, error) {
	return parsePins(ctx, mps.fetcher)
}

// gitRepo represents basic repository information.
type gitRepo struct {
	host, vendor, repo string
}

// supGitSrcs - supported git sources.
var supGitSrcs = []string{"github.com"}

// NewGitSource constructs a PinSource reading the 'versions.txt' manifest
// straight from a git repository.
//
// SHA can refer to a commit hash, branch or tag.
//
// You can pass a specifically signed httpClient with any information you want
// the requests to go with, for example OAuth2/BasicAuth information for the
// github API for increased rate limits and so on.
//
// repoAddr is your repository address (e.g. 'git@myhostname:vendor/reponame.git')
func NewGitSource(httpClient *http.Client, repoAddr, sha string) (PinSource, error) {
	repoData, err := parseGitAddr(repoAddr)
	if err != nil {
		return nil, err
	}
	fetcher := fetchers.NewGitHubFetcher(httpClient, repoData.vendor, repoData.repo, sha)
	return &GitPinSource{fetcher: fetcher}, nil
}

// GitPinSource reads pin manifests from git repositories.
type GitPinSource struct {
	fetcher fetchers.FileFetcher
}

// Pins returns the named version pins declared by the source.
func (gps GitPinSource) Pins(ctx context.Context) ([]Pin, error) {
	return parsePins(ctx, gps.fetcher)
}

func parsePins(ctx context.Context, fetcher fetchers.FileFetcher) ([]Pin, error) {
	pins, err := parsers.NewVersionsFileParser(fetcher, "").Pins(ctx)
	if err != nil {
		return nil, err
	}
	result := []Pin{}
	for _, pin := range pins {
		result = append(result, Pin(pin))
	}
	return result, nil
}

// parseGitAddr - helper to parse information from a git repository address string
func parseGitAddr(addr string) (*gitRepo, error) {
	matches := gitRepoRgxCompiled.FindStringSubmatch(addr)
	if matches == nil || matches[6] == "" || matches[8] == "" {
		return nil, fmt.Errorf("unsupported git repository format %q", addr)
	}
	hostName, repoName := matches[6], matches[8]

	if !gitHostSupported(hostName) {
		return nil, fmt.Errorf("git source %q is not supported", hostName)
	}

	if !strings.Contains(repoName, "/") {
		return nil, fmt.Errorf("unable to parse vendor from name %q", repoName)
	}
	repoNameParts := strings.Split(repoName, "/")

	return &gitRepo{host: hostName, vendor: repoNameParts[0], repo: repoNameParts[1]}, nil
}

// gitHostSupported - helper to check git source support status
func gitHostSupported(host string) bool {
	for _, v := range supGitSrcs {
		if v == host {
			return true
		}
	}
	return false
}
