/*
Package version implements a minimal SemVer-like version model: an ordered
(major, minor, patch) triple and a normalized version requirement with a
containment test.

Versions and requirements are small copyable value types. Every operation on
them is a pure function with no allocation on the numeric path, so package
level constants can be built at initialization time:

	var Minimum = version.MustParse("1.2.3")
	var Supported = version.NewReq(version.MajorLessEqual{Major: 2})

Parsing is strict by default: exactly three dot separated decimal fields and
nothing else. ParseLenient is an explicit opt-in for scanning version-looking
substrings out of looser input.
*/
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parsing errors. The NotFound family is reported only by the lenient
// strategy; the strict parser reports any shape problem as ErrFormatWrong.
var (
	ErrFormatWrong   = errors.New("version format is wrong, expected 'major.minor.patch'")
	ErrMajorParse    = errors.New("unable to parse major segment")
	ErrMajorNotFound = errors.New("major segment not found")
	ErrMinorParse    = errors.New("unable to parse minor segment")
	ErrMinorNotFound = errors.New("minor segment not found")
	ErrPatchParse    = errors.New("unable to parse patch segment")
	ErrPatchNotFound = errors.New("patch segment not found")
)

// Version represents a fixed version as an immutable (major, minor, patch)
// triple. The zero value is version 0.0.0.
type Version struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// New constructs a Version from its three segments.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse converts a version string into a Version using the strict grammar:
// exactly three dot separated non-negative decimal fields, no 'v' prefix, no
// signs, no surrounding whitespace. Leading zeros are permitted.
//
// Returned errors wrap one of the sentinel parsing errors above and can be
// classified with errors.Is.
func Parse(input string) (Version, error) {
	fields := strings.Split(input, ".")
	if len(fields) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrFormatWrong, input)
	}
	major, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMajorParse, fields[0])
	}
	minor, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMinorParse, fields[1])
	}
	patch, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrPatchParse, fields[2])
	}
	return New(major, minor, patch), nil
}

// MustParse is like Parse but panics on invalid input. Use it for package
// level version constants only.
func MustParse(input string) Version {
	v, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("version: MustParse(%q): %v", input, err))
	}
	return v
}

// lenientRgx matches the first version-looking substring, one segment group
// per version segment.
var lenientRgx = regexp.MustCompile(`v?([0-9]+)(\.([0-9]+))?(\.([0-9]+))?`)

// ParseLenient scans the input for the first version-looking substring,
// tolerating a 'v' prefix and surrounding garbage (e.g. a git tag or a
// release title). All three segments must still be present and valid;
// missing segments are reported with the NotFound error family.
//
// This is an explicit opt-in. Use Parse unless the input is known to be
// loosely formatted.
func ParseLenient(input string) (Version, error) {
	m := lenientRgx.FindStringSubmatch(input)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMajorNotFound, input)
	}
	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMajorParse, m[1])
	}
	if m[3] == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrMinorNotFound, input)
	}
	minor, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMinorParse, m[3])
	}
	if m[5] == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrPatchNotFound, input)
	}
	patch, err := strconv.ParseUint(m[5], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrPatchParse, m[5])
	}
	return New(major, minor, patch), nil
}

// String renders the version as 'major.minor.patch', the exact inverse of
// the strict Parse grammar.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two versions lexicographically by (major, minor, patch):
// the first unequal segment decides. It returns -1 when v is lower than o,
// 0 when equal and +1 when higher.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return compareSegment(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return compareSegment(v.Minor, o.Minor)
	}
	return compareSegment(v.Patch, o.Patch)
}

// Less reports whether v is strictly lower than o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether both versions have identical segments.
func (v Version) Equal(o Version) bool {
	return v == o
}

func compareSegment(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
