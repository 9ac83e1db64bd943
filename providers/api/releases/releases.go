/*
Package releases provides a client for JSON release-index services.

A release index exposes, per project, the ordered list of published releases
(newest last) together with basic metadata. The checker layer combines this
feed with version requirements to find compatible updates.
*/
package releases

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// defaultHostname - default release index hostname (used when no URL is
// provided to NewClient).
var defaultHostname string = "https://releases.fastver.dev"

// API describes the release index surface consumed by checkers. Client is
// the canonical implementation; tests substitute mocks.
type API interface {
	Releases(ctx context.Context, project string, opts *ListOptions) (*ProjectReleases, *http.Response, error)
	Latest(ctx context.Context, project string) (*Release, *http.Response, error)
}

// Client is used to communicate with a release index compatible API service.
type Client struct {
	baseURL    url.URL
	HTTPClient *http.Client
}

// NewClient creates and returns a new release index client.
//
// If httpClient or URL is nil - default values will be used.
// Pass URL only if you are sure the address serves a compatible API.
func NewClient(httpClient *http.Client, URL *url.URL) (*Client, error) {
	if URL == nil {
		var err error
		if URL, err = url.Parse(defaultHostname); err != nil {
			return nil, err
		}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: *URL, HTTPClient: httpClient}, nil
}

// Release represents one published release of a project.
type Release struct {
	Version     string    `json:"version"`
	URL         string    `json:"url"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	Yanked      bool      `json:"yanked"`
}

// ProjectReleases represents the release feed of one project, ordered oldest
// to newest.
type ProjectReleases struct {
	Name     string    `json:"name"`
	Releases []Release `json:"releases"`
}

// ListOptions specifies the optional parameters to the Releases() method.
type ListOptions struct {
	// PerPage is used to define the pagination step.
	PerPage int `url:"per_page,omitempty"`
	// Page is used to define page.
	Page int `url:"page,omitempty"`
	// Yanked includes withdrawn releases in the feed.
	Yanked bool `url:"yanked,omitempty"`
}

// Releases method lists the release feed for a project.
func (c Client) Releases(ctx context.Context, project string, opts *ListOptions) (*ProjectReleases, *http.Response, error) {
	if project == "" {
		return nil, nil, fmt.Errorf("'project' option is required and can't be empty")
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing the options: %w", err)
	}

	route := fmt.Sprintf("%s/projects/%s/releases?%s", &c.baseURL, url.PathEscape(project), v.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", route, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create a request: %w", err)
	}

	var pr ProjectReleases
	var r *http.Response
	if r, err = parseResponse(&c, req, &pr); err != nil {
		return nil, r, err
	}

	return &pr, r, nil
}

// Latest method returns the newest published release for a project.
func (c Client) Latest(ctx context.Context, project string) (*Release, *http.Response, error) {
	if project == "" {
		return nil, nil, fmt.Errorf("'project' option is required and can't be empty")
	}

	route := fmt.Sprintf("%s/projects/%s/releases/latest", &c.baseURL, url.PathEscape(project))
	req, err := http.NewRequestWithContext(ctx, "GET", route, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create a request: %w", err)
	}

	var rel Release
	var r *http.Response
	if r, err = parseResponse(&c, req, &rel); err != nil {
		return nil, r, err
	}

	return &rel, r, nil
}

// errorResponse represents an error payload from the release index api.
type errorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// parseResponse is used to execute the request and unmarshal the response to dt
func parseResponse(c *Client, req *http.Request, dt interface{}) (r *http.Response, err error) {
	if r, err = c.HTTPClient.Do(req); err != nil {
		return nil, fmt.Errorf("unable to send a request: %w", err)
	}
	defer r.Body.Close()

	if r.StatusCode >= 400 {
		return r, fmt.Errorf("release index responded with HTTP error '%d: %s'", r.StatusCode, http.StatusText(r.StatusCode))
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return r, fmt.Errorf("unable to read response body: %w", err)
	}

	// Handling in-band error payloads from the release index api
	var ersp errorResponse
	if perr := json.Unmarshal(body, &ersp); perr == nil && (ersp.Message != "" && ersp.Status != "") {
		return r, fmt.Errorf("release index api responded with error '%s'", ersp.Message)
	}

	if err = json.Unmarshal(body, &dt); err != nil {
		return r, fmt.Errorf("unable to parse response: %w", err)
	}

	return r, nil
}
