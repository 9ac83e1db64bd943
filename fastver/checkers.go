package fastver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fastver/fastver-core/providers/api/releases"
	"github.com/fastver/fastver-core/providers/parsers"
	"github.com/fastver/fastver-core/providers/version"
)

// UpdatesChecker represents checkers interface.
type UpdatesChecker interface {
	// CompatibleUpdates returns, per pin, the newest release satisfying the pin's rule.
	CompatibleUpdates(ctx context.Context, pins []Pin) ([]Update, error)
	// LastUpdates returns the newest release for each pin, regardless of its rule.
	LastUpdates(ctx context.Context, pins []Pin, incompatibleOnly bool) ([]Update, error)
}

// Update represents one available release for a pinned component.
type Update struct {
	Version     string `json:"version"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	CurrentRule string `json:"rule,omitempty"`
}

// NewReleaseUpdatesChecker constructs a checker over the default release
// index. A nil httpClient falls back to http.DefaultClient.
func NewReleaseUpdatesChecker(httpClient *http.Client) (UpdatesChecker, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	api, err := releases.NewClient(httpClient, nil)
	if err != nil {
		return nil, err
	}

	return &ReleaseUpdatesChecker{api: api}, nil
}

// ReleaseUpdatesChecker matches a release index feed against version pins.
type ReleaseUpdatesChecker struct {
	api releases.API
}

// CompatibleUpdates returns, per pin, the newest release whose version
// satisfies the pin's rule.
//
// Releases with versions that do not parse under the strict grammar are
// skipped, never fatal. Pins with unparsable rules are skipped as well.
func (uc ReleaseUpdatesChecker) CompatibleUpdates(ctx context.Context, pins []Pin) ([]Update, error) {
	if len(pins) == 0 {
		return nil, fmt.Errorf("no pins provided")
	}

	result := make([]Update, 0, len(pins))

	for _, pin := range pins {
		variant, err := parsers.ParseRule(pin.Rule)
		if err != nil {
			continue
		}
		req := version.NewReq(variant)

		feed, _, err := uc.api.Releases(ctx, pin.Name, nil)
		if err != nil {
			continue
		}

		// Feed is ordered oldest to newest; walk backwards for the newest match.
		for i := len(feed.Releases) - 1; i >= 0; i-- {
			rel := feed.Releases[i]
			vers, err := version.Parse(rel.Version)
			if err != nil {
				continue
			}
			if !req.Matches(vers) {
				continue
			}

			result = append(result, Update{
				Name:        pin.Name,
				Version:     rel.Version,
				Author:      rel.Author,
				URL:         rel.URL,
				CurrentRule: pin.Rule,
			})
			break
		}
	}

	return result, nil
}

// LastUpdates returns the newest release for each pin.
//
// With incompatibleOnly set, pins whose newest release already satisfies
// their rule are dropped from the result - those are up to date.
func (uc ReleaseUpdatesChecker) LastUpdates(ctx context.Context, pins []Pin, incompatibleOnly bool) ([]Update, error) {
	if len(pins) == 0 {
		return nil, fmt.Errorf("no pins provided")
	}

	result := make([]Update, 0, len(pins))

skipPin:
	for _, pin := range pins {
		feed, _, err := uc.api.Releases(ctx, pin.Name, nil)
		if err != nil {
			continue
		}

		for i := len(feed.Releases) - 1; i >= 0; i-- {
			rel := feed.Releases[i]
			vers, err := version.Parse(rel.Version)
			if err != nil {
				continue
			}

			if incompatibleOnly {
				variant, err := parsers.ParseRule(pin.Rule)
				// If the newest release still matches the rule the pin is
				// already up to date, skip it.
				if err == nil && version.NewReq(variant).Matches(vers) {
					continue skipPin
				}
			}

			result = append(result, Update{
				Name:        pin.Name,
				Version:     rel.Version,
				Author:      rel.Author,
				URL:         rel.URL,
				CurrentRule: pin.Rule,
			})
			break
		}
	}

	return result, nil
}
