package parsers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fastver/fastver-core/providers/version"
)

/*
Requirement rule semantic parsing implementation.

Supported grammar, mapping 1:1 onto the version.ReqVariant union:

	*                 every version
	1.2.3 / =1.2.3    exact pin (full triple required)
	>1  >1.2  >1.2.3  greater at major/minor/patch granularity
	>=  <  <=         likewise for the remaining bound families
	>=1.2, <2         compound: one lower bound and one upper bound

There is deliberately no caret/tilde shorthand and no '||' of ranges.
*/

var ErrRuleNotSupported = errors.New("rule not supported")

// ruleRgx matches one unary rule: optional operator plus one to three dot
// separated segments.
//
// Groups:
//
//	1: operator (e.g. '>=', empty for exact pins)
//	2: major segment
//	4: minor segment (optional)
//	6: patch segment (optional)
var ruleRgx = regexp.MustCompile(`^(>=|<=|==|=|>|<)?\s*([0-9]+)(\.([0-9]+))?(\.([0-9]+))?$`)

// ParseRule converts a requirement rule string into a declarative
// requirement variant.
func ParseRule(rule string) (version.ReqVariant, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "*" {
		return version.MajorGreaterEqual{Major: 0}, nil
	}

	halves := strings.Split(trimmed, ",")
	switch len(halves) {
	case 1:
		return parseUnaryRule(halves[0])
	case 2:
		lowerVariant, err := parseUnaryRule(halves[0])
		if err != nil {
			return nil, err
		}
		upperVariant, err := parseUnaryRule(halves[1])
		if err != nil {
			return nil, err
		}
		lower, ok := lowerVariant.(version.LowerBound)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a lower bound, compound rules are '>/>=, </<='", ErrRuleNotSupported, strings.TrimSpace(halves[0]))
		}
		upper, ok := upperVariant.(version.UpperBound)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an upper bound, compound rules are '>/>=, </<='", ErrRuleNotSupported, strings.TrimSpace(halves[1]))
		}
		return version.Compound{Lower: lower, Upper: upper}, nil
	}

	return nil, fmt.Errorf("%w: %q has too many bounds", ErrRuleNotSupported, rule)
}

// parseUnaryRule is a utility function to convert one raw unary rule (e.g.
// '>=1.2') into the variant matching its operator and granularity.
func parseUnaryRule(rule string) (version.ReqVariant, error) {
	matches := ruleRgx.FindStringSubmatch(strings.TrimSpace(rule))
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", ErrRuleNotSupported, rule)
	}

	var (
		operator            = matches[1]
		segments            = 1
		major, minor, patch uint64
		err                 error
	)

	if major, err = parseSegment(matches[2]); err != nil {
		return nil, err
	}
	if matches[4] != "" {
		if minor, err = parseSegment(matches[4]); err != nil {
			return nil, err
		}
		segments = 2
	}
	if matches[6] != "" {
		if patch, err = parseSegment(matches[6]); err != nil {
			return nil, err
		}
		segments = 3
	}

	switch operator {
	case "", "=", "==":
		if segments != 3 {
			return nil, fmt.Errorf("%w: exact pin %q requires a full 'major.minor.patch' version", ErrRuleNotSupported, rule)
		}
		return version.Strict{Version: version.New(major, minor, patch)}, nil
	case ">":
		switch segments {
		case 1:
			return version.MajorGreater{Major: major}, nil
		case 2:
			return version.MinorGreater{Major: major, Minor: minor}, nil
		}
		return version.PatchGreater{Major: major, Minor: minor, Patch: patch}, nil
	case ">=":
		switch segments {
		case 1:
			return version.MajorGreaterEqual{Major: major}, nil
		case 2:
			return version.MinorGreaterEqual{Major: major, Minor: minor}, nil
		}
		return version.PatchGreaterEqual{Major: major, Minor: minor, Patch: patch}, nil
	case "<":
		switch segments {
		case 1:
			return version.MajorLess{Major: major}, nil
		case 2:
			return version.MinorLess{Major: major, Minor: minor}, nil
		}
		return version.PatchLess{Major: major, Minor: minor, Patch: patch}, nil
	case "<=":
		switch segments {
		case 1:
			return version.MajorLessEqual{Major: major}, nil
		case 2:
			return version.MinorLessEqual{Major: major, Minor: minor}, nil
		}
		return version.PatchLessEqual{Major: major, Minor: minor, Patch: patch}, nil
	}

	return nil, fmt.Errorf("%w: unknown operator %q", ErrRuleNotSupported, operator)
}

func parseSegment(segment string) (uint64, error) {
	v, err := strconv.ParseUint(segment, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("segment parse error: %w", err)
	}
	return v, nil
}
