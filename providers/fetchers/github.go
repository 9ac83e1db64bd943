package fetchers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v33/github"
)

// GitHubFetcher fetches manifest files from the specified repository.
// Owner and Repo represent '{owner}/{repo}' notation. SHA can refer to a
// commit hash, branch or tag.
type GitHubFetcher struct {
	Owner        string
	Repo         string
	SHA          string
	githubClient *github.Client
}

// NewGitHubFetcher constructs a GitHubFetcher for the given repository.
// httpClient can be used as an OAuth2 or BasicAuth http transport, e.g. to
// raise API rate limits; nil falls back to http.DefaultClient inside the
// GitHub client.
func NewGitHubFetcher(httpClient *http.Client, owner, repo, sha string) FileFetcher {
	return &GitHubFetcher{
		Owner:        owner,
		Repo:         repo,
		SHA:          sha,
		githubClient: github.NewClient(httpClient),
	}
}

// FileContent fetches the specified file content from the configured
// repository. Path argument is the root-related file path.
func (f GitHubFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	opts := github.RepositoryContentGetOptions{
		Ref: f.SHA,
	}

	rc, dc, resp, err := f.githubClient.Repositories.GetContents(ctx, f.Owner, f.Repo, path, &opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to load '%s' file from github: %w", path, err)
	}

	if len(dc) != 0 {
		return nil, fmt.Errorf("path '%s' is a directory, not a manifest file", path)
	}

	c, err := rc.GetContent()

	return []byte(c), err
}
