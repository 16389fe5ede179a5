// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package fontswap

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/google/contentkit/internal/billyx"
	"github.com/pkg/errors"
)

// ErrSourceNotFound is returned when the package to convert does not exist.
var ErrSourceNotFound = errors.New("source package not found")

// ConvertFile converts the package at source and writes the result to output.
//
// An empty output, or one naming the source, converts in place. The result is
// always staged next to its destination and renamed into place only once fully
// written, so a failed conversion leaves both source and output untouched.
// The destination keeps its permission bits; a new output gets 0644.
func ConvertFile(fs billy.Filesystem, source, output string, opts Options) (*Report, error) {
	src, err := fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrSourceNotFound, source)
		}
		return nil, errors.Wrapf(err, "inspecting %s", source)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	perm := os.FileMode(0o644)
	if output == "" || samePath(fs, source, output) {
		output = source
		perm = src.Mode().Perm()
	} else if fi, err := fs.Stat(output); err == nil {
		perm = fi.Mode().Perm()
	}
	var report *Report
	err = billyx.WriteFileAtomic(fs, output, perm, func(w io.Writer) error {
		in, err := fs.Open(source)
		if err != nil {
			return errors.Wrapf(err, "opening %s", source)
		}
		defer in.Close()
		report, err = Convert(w, in, opts)
		return errors.Wrapf(err, "converting %s", source)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// VerifyFile runs Verify against the package at path.
func VerifyFile(fs billy.Filesystem, path string, opts Options) ([]Mismatch, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrSourceNotFound, path)
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Verify(f, opts)
}

func samePath(fs billy.Filesystem, a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, aerr := fs.Stat(a)
	bi, berr := fs.Stat(b)
	return aerr == nil && berr == nil && os.SameFile(ai, bi)
}
