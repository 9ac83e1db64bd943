package parsers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/fastver/fastver-core/providers/fetchers"
)

// NewVersionsFileParser constructs a versions manifest parser.
// If 'filename' parameter is an empty string - 'versions.txt' will be used instead.
func NewVersionsFileParser(fetcher fetchers.FileFetcher, filename string) PinParser {
	if filename == "" {
		return &VersionsFileParser{fetcher: fetcher, SourceName: "versions.txt"}
	}
	return &VersionsFileParser{fetcher: fetcher, SourceName: filename}
}

// VersionsFileParser reads a plain text pin manifest: one pin per line in
// the form 'name<rule>' (e.g. 'redis>=6.2,<7' or 'etcd=3.5.9'). A bare name
// pins nothing and is recorded with the '*' rule. Lines starting with '#',
// empty lines and rules without a name are skipped; whitespace is
// insignificant.
type VersionsFileParser struct {
	fetcher fetchers.FileFetcher
	// SourceName is the manifest filename (e.g. 'versions.txt')
	SourceName string
}

// ruleDelimiters are the operator prefixes splitting a pin name from its
// rule. The split point is the leftmost occurrence of any of them; the rule
// keeps everything from that point on, so '>' and '>=' need no tie-break.
var ruleDelimiters = []string{">=", "<=", "==", "=", ">", "<"}

// Pins method returns the version pins declared by the manifest.
func (p VersionsFileParser) Pins(ctx context.Context) ([]Pin, error) {
	b, err := p.fetcher.FileContent(ctx, p.SourceName)
	if err != nil {
		if err == fetchers.ErrFileNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to fetch version pins from the source: %w", err)
	}

	return parseVersionsFile(b), nil
}

// parseVersionsFile contains the manifest line parsing logic.
func parseVersionsFile(fileContent []byte) []Pin {
	result := []Pin{}
	scanner := bufio.NewScanner(bytes.NewReader(fileContent))
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		line := stripSpaces(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.Split(line, "#")[0] // remove trailing comments
		if line == "" {
			continue
		}

		name := line
		rule := "*" // bare names stay unconstrained
		// Split on the EARLIEST delimiter occurrence, not the first table
		// entry found: a compound rule may mix operators (e.g. 'a>1,<=2')
		// and only the leftmost one separates the name from the rule.
		split := -1
		for _, delim := range ruleDelimiters {
			if idx := strings.Index(line, delim); idx >= 0 && (split == -1 || idx < split) {
				split = idx
			}
		}
		if split == 0 {
			continue // rule with no name, nothing to pin
		}
		if split > 0 {
			name = line[:split]
			rule = line[split:]
		}

		result = append(result, Pin{Name: name, Rule: rule})
	}

	return result
}

// Fast way to strip all whitespaces from a string
func stripSpaces(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for _, ch := range str {
		if !unicode.IsSpace(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
