package version

import "math"

// ReqVariant describes how a requirement was expressed by the caller before
// normalization: an exact pin, a single bound at major/minor/patch
// granularity, or a compound of one lower and one upper bound.
//
// The union is sealed to this package; new variants may be added here in
// future releases without breaking existing matches, so callers should not
// assume the set below is final.
type ReqVariant interface {
	// bounds returns the normalized lower and upper corner of the box.
	bounds() (lower, upper segments)
}

// LowerBound is the subset of variants usable as the lower half of a
// Compound requirement (the Greater/GreaterEqual family).
type LowerBound interface {
	lowerBound() segments
}

// UpperBound is the subset of variants usable as the upper half of a
// Compound requirement (the Less/LessEqual family).
type UpperBound interface {
	upperBound() segments
}

// segments is one corner of a requirement box.
type segments struct {
	major, minor, patch uint64
}

var (
	minSegments = segments{0, 0, 0}
	maxSegments = segments{math.MaxUint64, math.MaxUint64, math.MaxUint64}
)

// satInc increments a segment, clamping at the uint64 maximum instead of
// wrapping.
func satInc(s uint64) uint64 {
	if s == math.MaxUint64 {
		return s
	}
	return s + 1
}

// satDec decrements a segment, clamping at zero instead of wrapping.
func satDec(s uint64) uint64 {
	if s == 0 {
		return s
	}
	return s - 1
}

// Strict requires exactly one version.
type Strict struct {
	Version Version `json:"version"`
}

func (s Strict) bounds() (segments, segments) {
	b := segments{s.Version.Major, s.Version.Minor, s.Version.Patch}
	return b, b
}

// Compound combines one lower and one upper bound into a single requirement.
type Compound struct {
	Lower LowerBound `json:"lower"`
	Upper UpperBound `json:"upper"`
}

func (c Compound) bounds() (segments, segments) {
	return c.Lower.lowerBound(), c.Upper.upperBound()
}

// MajorGreater requires versions with a major segment above the given one.
type MajorGreater struct {
	Major uint64 `json:"major"`
}

func (v MajorGreater) lowerBound() segments {
	return segments{satInc(v.Major), 0, 0}
}

func (v MajorGreater) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// MinorGreater requires versions with major and minor segments above the
// given ones. Both segments are incremented independently; this is a
// per-segment bound, not a 'next version after major.minor' rollover.
type MinorGreater struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
}

func (v MinorGreater) lowerBound() segments {
	return segments{satInc(v.Major), satInc(v.Minor), 0}
}

func (v MinorGreater) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// PatchGreater requires versions with all three segments above the given
// ones, each incremented independently.
type PatchGreater struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

func (v PatchGreater) lowerBound() segments {
	return segments{satInc(v.Major), satInc(v.Minor), satInc(v.Patch)}
}

func (v PatchGreater) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// MajorGreaterEqual requires versions with a major segment at or above the
// given one.
type MajorGreaterEqual struct {
	Major uint64 `json:"major"`
}

func (v MajorGreaterEqual) lowerBound() segments {
	return segments{v.Major, 0, 0}
}

func (v MajorGreaterEqual) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// MinorGreaterEqual requires versions with major and minor segments at or
// above the given ones.
type MinorGreaterEqual struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
}

func (v MinorGreaterEqual) lowerBound() segments {
	return segments{v.Major, v.Minor, 0}
}

func (v MinorGreaterEqual) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// PatchGreaterEqual requires versions with all three segments at or above
// the given ones.
type PatchGreaterEqual struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

func (v PatchGreaterEqual) lowerBound() segments {
	return segments{v.Major, v.Minor, v.Patch}
}

func (v PatchGreaterEqual) bounds() (segments, segments) {
	return v.lowerBound(), maxSegments
}

// MajorLess requires versions with a major segment below the given one.
type MajorLess struct {
	Major uint64 `json:"major"`
}

func (v MajorLess) upperBound() segments {
	return segments{satDec(v.Major), math.MaxUint64, math.MaxUint64}
}

func (v MajorLess) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// MinorLess requires versions with major and minor segments below the given
// ones, each decremented independently.
type MinorLess struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
}

func (v MinorLess) upperBound() segments {
	return segments{satDec(v.Major), satDec(v.Minor), math.MaxUint64}
}

func (v MinorLess) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// PatchLess requires versions with all three segments below the given ones,
// each decremented independently.
type PatchLess struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

func (v PatchLess) upperBound() segments {
	return segments{satDec(v.Major), satDec(v.Minor), satDec(v.Patch)}
}

func (v PatchLess) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// MajorLessEqual requires versions with a major segment at or below the
// given one.
type MajorLessEqual struct {
	Major uint64 `json:"major"`
}

func (v MajorLessEqual) upperBound() segments {
	return segments{v.Major, math.MaxUint64, math.MaxUint64}
}

func (v MajorLessEqual) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// MinorLessEqual requires versions with major and minor segments at or below
// the given ones.
type MinorLessEqual struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
}

func (v MinorLessEqual) upperBound() segments {
	return segments{v.Major, v.Minor, math.MaxUint64}
}

func (v MinorLessEqual) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// PatchLessEqual requires versions with all three segments at or below the
// given ones.
type PatchLessEqual struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

func (v PatchLessEqual) upperBound() segments {
	return segments{v.Major, v.Minor, v.Patch}
}

func (v PatchLessEqual) bounds() (segments, segments) {
	return minSegments, v.upperBound()
}

// Req is a normalized version requirement: a closed box over the version
// segment space, bounded by a lower and an upper segment triple.
//
// The box is matched PER SEGMENT, not lexicographically (see Matches). A box
// built from bounds spanning several majors therefore excludes versions one
// would expect a lexicographic range to include; downstream callers relying
// on ranges like '>=1.5, <=2' should read the Matches documentation first.
//
// Normalization never fails: segment arithmetic saturates at the uint64
// boundaries, and an inverted (empty) box simply matches nothing.
type Req struct {
	MajorLower  uint64 `json:"major_lower"`
	MinorLower  uint64 `json:"minor_lower"`
	PatchLower  uint64 `json:"patch_lower"`
	MajorHigher uint64 `json:"major_higher"`
	MinorHigher uint64 `json:"minor_higher"`
	PatchHigher uint64 `json:"patch_higher"`
}

// Star returns the unconstrained requirement, matching every version.
func Star() Req {
	return Req{
		MajorHigher: math.MaxUint64,
		MinorHigher: math.MaxUint64,
		PatchHigher: math.MaxUint64,
	}
}

// NewReq normalizes a declarative requirement variant into a Req box.
func NewReq(variant ReqVariant) Req {
	lower, upper := variant.bounds()
	return Req{
		MajorLower:  lower.major,
		MinorLower:  lower.minor,
		PatchLower:  lower.patch,
		MajorHigher: upper.major,
		MinorHigher: upper.minor,
		PatchHigher: upper.patch,
	}
}

// Matches reports whether the version lies inside the requirement box.
//
// Each segment is tested against its own pair of bounds independently:
//
//	lower  = MajorLower <= v.Major && MinorLower <= v.Minor && PatchLower <= v.Patch
//	higher = MajorHigher >= v.Major && MinorHigher >= v.Minor && PatchHigher >= v.Patch
//
// This is NOT a lexicographic range test. For example the box built from
// Compound(MinorGreaterEqual{1, 5}, MajorLessEqual{2}) does not match
// version 2.0.0, because the minor lower bound (5) exceeds its minor
// segment (0).
func (r Req) Matches(v Version) bool {
	lowerMatch := r.MajorLower <= v.Major &&
		r.MinorLower <= v.Minor &&
		r.PatchLower <= v.Patch
	higherMatch := r.MajorHigher >= v.Major &&
		r.MinorHigher >= v.Minor &&
		r.PatchHigher >= v.Patch
	return lowerMatch && higherMatch
}
