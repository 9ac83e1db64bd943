/*
Package parsers converts textual version pins into the declarative
requirement variants understood by the version package.

Two layers live here:
  - ParseRule translates one requirement rule string (e.g. '>=1.2, <2') into
    a version.ReqVariant.
  - PinParser implementations read whole pin manifests (e.g. 'versions.txt')
    through a fetchers.FileFetcher and return named pins.
*/
package parsers

import (
	"context"
	"errors"
)

var (
	ErrFileNotFound = errors.New("pin manifest not found")
)

// PinParser represents basic interface for manifest parsers in this package.
type PinParser interface {
	// Pins returns the named version pins declared by the manifest.
	Pins(context.Context) ([]Pin, error)
}

// Pin represents one named version pin: a component name and the raw
// requirement rule constraining its versions.
type Pin struct {
	Name string
	Rule string
}
