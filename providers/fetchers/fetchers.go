/*
Package fetchers provides pin manifest retrieval from local and remote
repositories.

A FileFetcher only moves bytes; interpreting content is the parsers
package's job.
*/
package fetchers

import (
	"context"
	"errors"
)

var (
	ErrFileNotFound = errors.New("manifest file not found")
)

// FileFetcher interface defines fetchers methods.
type FileFetcher interface {
	FileContent(ctx context.Context, path string) ([]byte, error)
}

// ByteMapFetcher keeps file contents in memory (useful for tests or for
// building custom repository logic on top of this module).
type ByteMapFetcher struct {
	Files map[string][]byte
}

// FileContent retrieves (if found) []byte contents from the map using the
// path argument as a key.
func (bf ByteMapFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	v, ok := bf.Files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	return v, nil
}
