// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package glob matches slash-separated names, such as package parts and
// content paths, against patterns with support for '**'.
package glob

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadPattern is returned for patterns that cannot be matched.
var ErrBadPattern = errors.New("invalid pattern")

// Match extends path.Match to support the '**' glob pattern.
//   - '**' matches zero or more path segments
//   - '**' must make up a whole segment
//
// A leading '/' on the pattern or the name is ignored, so "**/*.xml" matches
// both "slide1.xml" and "/ppt/slides/slide1.xml".
func Match(pattern, name string) (bool, error) {
	if err := validate(pattern); err != nil {
		return false, err
	}
	return matchSegments(strings.Split(strings.TrimPrefix(pattern, "/"), "/"), strings.Split(strings.TrimPrefix(name, "/"), "/"))
}

func validate(pattern string) error {
	for _, seg := range strings.Split(pattern, "/") {
		if strings.Contains(seg, "**") && seg != "**" {
			return errors.Wrapf(ErrBadPattern, "'**' must make up a whole segment in %q", pattern)
		}
		if _, err := path.Match(seg, ""); err != nil {
			return errors.Wrapf(ErrBadPattern, "%q: %v", pattern, err)
		}
	}
	return nil
}

func matchSegments(pat, name []string) (bool, error) {
	for len(pat) > 0 {
		if pat[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if ok, err := matchSegments(pat[1:], name[i:]); ok || err != nil {
					return ok, err
				}
			}
			return false, nil
		}
		if len(name) == 0 {
			return false, nil
		}
		ok, err := path.Match(pat[0], name[0])
		if !ok || err != nil {
			return false, err
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0, nil
}

// Set is a validated list of patterns matched as a union.
type Set []string

// Compile validates every pattern and returns them as a Set.
func Compile(patterns ...string) (Set, error) {
	for _, p := range patterns {
		if err := validate(p); err != nil {
			return nil, err
		}
	}
	return Set(patterns), nil
}

// Match reports whether name matches any pattern in the set.
func (s Set) Match(name string) bool {
	for _, p := range s {
		// Patterns were validated by Compile.
		if ok, _ := Match(p, name); ok {
			return true
		}
	}
	return false
}
