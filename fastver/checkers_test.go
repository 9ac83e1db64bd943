package fastver

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/fastver/fastver-core/providers/api/releases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ReleasesAPIMock mocks the release index client.
type ReleasesAPIMock struct {
	mock.Mock
}

// Mock Releases method.
func (m *ReleasesAPIMock) Releases(ctx context.Context, project string, opts *releases.ListOptions) (*releases.ProjectReleases, *http.Response, error) {
	args := m.Called(ctx, project, opts)
	var pr *releases.ProjectReleases
	var r *http.Response
	// To allow nil values
	if v, ok := args.Get(0).(*releases.ProjectReleases); ok {
		pr = v
	}
	if v, ok := args.Get(1).(*http.Response); ok {
		r = v
	}

	return pr, r, args.Error(2)
}

// Mock Latest method.
func (m *ReleasesAPIMock) Latest(ctx context.Context, project string) (*releases.Release, *http.Response, error) {
	args := m.Called(ctx, project)
	var rel *releases.Release
	var r *http.Response
	if v, ok := args.Get(0).(*releases.Release); ok {
		rel = v
	}
	if v, ok := args.Get(1).(*http.Response); ok {
		r = v
	}

	return rel, r, args.Error(2)
}

// Release feeds are ordered oldest to newest, as the index serves them.
var releaseFeeds = map[string]*releases.ProjectReleases{
	"redis": {
		Name: "redis",
		Releases: []releases.Release{
			{Version: "6.0.0", Author: "core", URL: "https://example.com/redis/6.0.0"},
			{Version: "6.2.0", Author: "core", URL: "https://example.com/redis/6.2.0"},
			{Version: "6.2.5", Author: "core", URL: "https://example.com/redis/6.2.5"},
			{Version: "7.0.0", Author: "core", URL: "https://example.com/redis/7.0.0"},
		},
	},
	"etcd": {
		Name: "etcd",
		Releases: []releases.Release{
			{Version: "3.5.8", Author: "etcd-io", URL: "https://example.com/etcd/3.5.8"},
			{Version: "3.5.9", Author: "etcd-io", URL: "https://example.com/etcd/3.5.9"},
		},
	},
	"nats": {
		Name: "nats",
		Releases: []releases.Release{
			{Version: "2.9.0", Author: "nats-io", URL: "https://example.com/nats/2.9.0"},
			{Version: "2.10.0-rc1", Author: "nats-io", URL: "https://example.com/nats/2.10.0-rc1"},
		},
	},
}

func newCheckerWithMock(t *testing.T) (*ReleaseUpdatesChecker, *ReleasesAPIMock) {
	t.Helper()
	apiMock := new(ReleasesAPIMock)
	for name, feed := range releaseFeeds {
		apiMock.On("Releases", mock.Anything, name, mock.Anything).Return(feed, nil, nil)
	}
	apiMock.On("Releases", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("project not indexed"))

	return &ReleaseUpdatesChecker{api: apiMock}, apiMock
}

func TestNewReleaseUpdatesChecker(t *testing.T) {
	cl, err := NewReleaseUpdatesChecker(nil)
	assert.NoError(t, err)
	assert.NotNil(t, cl.(*ReleaseUpdatesChecker).api)
}

func TestReleaseUpdatesChecker_CompatibleUpdates(t *testing.T) {
	uc, _ := newCheckerWithMock(t)

	pins := []Pin{
		{Name: "redis", Rule: ">=6.2,<7"},
		{Name: "etcd", Rule: "=3.5.9"},
		{Name: "nats", Rule: "*"},
		{Name: "missing", Rule: "*"},  // api error, skipped
		{Name: "redis", Rule: "~6.2"}, // unparsable rule, skipped
	}

	updates, err := uc.CompatibleUpdates(context.Background(), pins)
	assert.NoError(t, err)

	expected := []Update{
		// 7.0.0 is outside the box, 6.2.5 is the newest match.
		{Name: "redis", Version: "6.2.5", Author: "core", URL: "https://example.com/redis/6.2.5", CurrentRule: ">=6.2,<7"},
		{Name: "etcd", Version: "3.5.9", Author: "etcd-io", URL: "https://example.com/etcd/3.5.9", CurrentRule: "=3.5.9"},
		// 2.10.0-rc1 fails strict parsing and is skipped in favor of 2.9.0.
		{Name: "nats", Version: "2.9.0", Author: "nats-io", URL: "https://example.com/nats/2.9.0", CurrentRule: "*"},
	}
	assert.Equal(t, expected, updates)
}

func TestReleaseUpdatesChecker_CompatibleUpdates_NoPins(t *testing.T) {
	uc, _ := newCheckerWithMock(t)

	updates, err := uc.CompatibleUpdates(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, updates)
}

func TestReleaseUpdatesChecker_LastUpdates(t *testing.T) {
	uc, _ := newCheckerWithMock(t)

	pins := []Pin{
		{Name: "redis", Rule: "<7"},
		{Name: "etcd", Rule: ">=3.5"},
	}

	updates, err := uc.LastUpdates(context.Background(), pins, false)
	assert.NoError(t, err)

	expected := []Update{
		{Name: "redis", Version: "7.0.0", Author: "core", URL: "https://example.com/redis/7.0.0", CurrentRule: "<7"},
		{Name: "etcd", Version: "3.5.9", Author: "etcd-io", URL: "https://example.com/etcd/3.5.9", CurrentRule: ">=3.5"},
	}
	assert.Equal(t, expected, updates)
}

func TestReleaseUpdatesChecker_LastUpdates_IncompatibleOnly(t *testing.T) {
	uc, _ := newCheckerWithMock(t)

	pins := []Pin{
		{Name: "redis", Rule: "<7"},   // newest (7.0.0) is out of range -> reported
		{Name: "etcd", Rule: ">=3.5"}, // newest still matches -> up to date, dropped
	}

	updates, err := uc.LastUpdates(context.Background(), pins, true)
	assert.NoError(t, err)

	expected := []Update{
		{Name: "redis", Version: "7.0.0", Author: "core", URL: "https://example.com/redis/7.0.0", CurrentRule: "<7"},
	}
	assert.Equal(t, expected, updates)
}
