// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// OpenZip constructs a zip.Reader over src, buffering it if necessary.
func OpenZip(src io.Reader) (*zip.Reader, error) {
	ra, size, err := ToZipCompatibleReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "converting reader")
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, errors.Wrap(err, "initializing zip reader")
	}
	return zr, nil
}

// NewContentSummary constructs a ContentSummary for the given container format.
func NewContentSummary(src io.Reader, f Format) (*ContentSummary, error) {
	switch f {
	case ZipFormat:
		zr, err := OpenZip(src)
		if err != nil {
			return nil, err
		}
		return NewContentSummaryFromZip(zr)
	default:
		return nil, errors.Errorf("unsupported container format: %v", f)
	}
}
