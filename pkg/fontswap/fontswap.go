// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package fontswap replaces every font named by a zip-packaged office
// document (pptx, docx, xlsx, ...) with a single typeface.
package fontswap

import (
	"archive/zip"
	"io"

	"github.com/google/contentkit/internal/glob"
	"github.com/google/contentkit/pkg/archive"
	"github.com/google/contentkit/pkg/typeface"
	"github.com/pkg/errors"
)

// DefaultFont is used when Options.Font is empty.
const DefaultFont = "Noto Sans KR"

// DefaultParts selects every XML part of the package.
var DefaultParts = []string{"**/*.xml"}

// Options configures a conversion.
type Options struct {
	// Font is the typeface written into every typeface attribute.
	Font string
	// Parts are glob patterns selecting the package parts to rewrite.
	Parts []string
}

func (o Options) withDefaults() Options {
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if len(o.Parts) == 0 {
		o.Parts = DefaultParts
	}
	return o
}

// Validate checks the part patterns.
func (o Options) Validate() error {
	_, err := glob.Compile(o.withDefaults().Parts...)
	return err
}

// PartReport describes what happened to one selected part.
type PartReport struct {
	Name     string
	Found    int
	Replaced int
	Skipped  bool
	Reason   string
}

// Report describes a conversion.
type Report struct {
	Parts []PartReport
}

// Replaced returns the total number of rewritten attributes.
func (r *Report) Replaced() int {
	var n int
	for _, p := range r.Parts {
		n += p.Replaced
	}
	return n
}

// Changed returns the number of parts with at least one rewritten attribute.
func (r *Report) Changed() int {
	var n int
	for _, p := range r.Parts {
		if p.Replaced > 0 {
			n++
		}
	}
	return n
}

// SkippedParts returns the names of parts that could not be parsed.
func (r *Report) SkippedParts() []string {
	var names []string
	for _, p := range r.Parts {
		if p.Skipped {
			names = append(names, p.Name)
		}
	}
	return names
}

// Convert reads the package from src and writes it to dst with every
// typeface attribute of the selected parts set to opts.Font.
//
// Parts that are not well-formed XML are reported as skipped and copied
// unchanged. Parts without a differing typeface are copied byte for byte.
func Convert(dst io.Writer, src io.Reader, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	parts, err := glob.Compile(opts.Parts...)
	if err != nil {
		return nil, errors.Wrap(err, "compiling part patterns")
	}
	zr, err := archive.OpenZip(src)
	if err != nil {
		return nil, errors.Wrap(err, "reading package")
	}
	mr := archive.NewMutableReader(zr)
	report := &Report{}
	for _, mf := range mr.File {
		if mf.FileInfo().IsDir() || !parts.Match(mf.Name) {
			continue
		}
		content, err := mf.ReadAll()
		if err != nil {
			return nil, errors.Wrapf(err, "reading part %s", mf.Name)
		}
		out, res, err := typeface.Rewrite(content, opts.Font)
		if errors.Is(err, typeface.ErrMalformed) {
			report.Parts = append(report.Parts, PartReport{Name: mf.Name, Skipped: true, Reason: err.Error()})
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "rewriting part %s", mf.Name)
		}
		report.Parts = append(report.Parts, PartReport{Name: mf.Name, Found: res.Found, Replaced: res.Count})
		if res.Count > 0 {
			mf.SetContent(out)
		}
	}
	zw := zip.NewWriter(dst)
	if err := mr.WriteTo(zw); err != nil {
		return nil, errors.Wrap(err, "writing package")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing package")
	}
	return report, nil
}

// Mismatch is a typeface attribute that does not name the expected font.
type Mismatch struct {
	Part string
	typeface.Occurrence
}

// Verify returns every typeface attribute in the selected parts of the
// package that does not equal opts.Font. Malformed parts are ignored.
func Verify(src io.Reader, opts Options) ([]Mismatch, error) {
	opts = opts.withDefaults()
	parts, err := glob.Compile(opts.Parts...)
	if err != nil {
		return nil, errors.Wrap(err, "compiling part patterns")
	}
	zr, err := archive.OpenZip(src)
	if err != nil {
		return nil, errors.Wrap(err, "reading package")
	}
	var bad []Mismatch
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !parts.Match(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening part %s", f.Name)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading part %s", f.Name)
		}
		occs, err := typeface.Mismatches(content, opts.Font)
		if errors.Is(err, typeface.ErrMalformed) {
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "scanning part %s", f.Name)
		}
		for _, o := range occs {
			bad = append(bad, Mismatch{Part: f.Name, Occurrence: o})
		}
	}
	return bad, nil
}
