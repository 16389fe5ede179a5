// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package semver parses and orders engine version strings.
//
// Engine builds report versions such as "5.6", "5.6.1" or
// "5.6.1-43139311+++UE5+Release-5.6". The patch component is optional and
// defaults to zero. Everything after the first '-' or '+' is kept but only the
// changelist number participates in ordering.
package semver

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Version is a parsed engine version.
type Version struct {
	Major int
	Minor int
	Patch int
	// Changelist is the numeric build identifier following '-', or 0.
	Changelist int
	// Suffix holds any text after the numeric components, verbatim.
	Suffix string
}

var versionRE = regexp.MustCompile(`^v?(?P<Major>0|[1-9]\d*)\.(?P<Minor>0|[1-9]\d*)(?:\.(?P<Patch>0|[1-9]\d*))?(?P<Suffix>(?:-(?P<Changelist>\d+))?(?:[-+].*)?)$`)

// ErrInvalid is returned for strings that are not engine versions.
var ErrInvalid = errors.New("invalid engine version")

func New(s string) (Version, error) {
	m := versionRE.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.Wrapf(ErrInvalid, "%q", s)
	}
	num := func(name string) int {
		v := m[versionRE.SubexpIndex(name)]
		if v == "" {
			return 0
		}
		n, _ := strconv.Atoi(v)
		return n
	}
	return Version{
		Major:      num("Major"),
		Minor:      num("Minor"),
		Patch:      num("Patch"),
		Changelist: num("Changelist"),
		Suffix:     m[versionRE.SubexpIndex("Suffix")],
	}, nil
}

// MustNew is like New but panics on error. Use only for constants.
func MustNew(s string) Version {
	v, err := New(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Suffix)
}

// Compare orders versions by major, minor, patch then changelist.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmp.Compare(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmp.Compare(v.Minor, o.Minor)
	case v.Patch != o.Patch:
		return cmp.Compare(v.Patch, o.Patch)
	default:
		return cmp.Compare(v.Changelist, o.Changelist)
	}
}

// AtLeast reports whether v is the same release as min or newer. A min
// without a changelist matches every build of that release.
func (v Version) AtLeast(min Version) bool {
	if min.Changelist == 0 {
		v.Changelist = 0
	}
	return v.Compare(min) >= 0
}

// Cmp compares two version strings. Unparseable strings sort first.
func Cmp(a, b string) int {
	av, aerr := New(a)
	bv, berr := New(b)
	switch {
	case aerr != nil && berr != nil:
		return 0
	case aerr != nil:
		return -1
	case berr != nil:
		return 1
	}
	return av.Compare(bv)
}
