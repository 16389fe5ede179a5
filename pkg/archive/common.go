// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package archive provides helpers for reading and rewriting zip-packaged
// office documents.
package archive

import (
	"path/filepath"
	"strings"
)

// Format represents the container type of a document.
type Format int

const (
	UnknownFormat Format = iota
	ZipFormat
	RawFormat
)

func (f Format) String() string {
	switch f {
	case ZipFormat:
		return "zip"
	case RawFormat:
		return "raw"
	default:
		return "unknown"
	}
}

// PackageFormat returns the container format implied by a document's extension.
// Office Open XML documents (presentations, documents, workbooks and their
// template/macro variants) are zip packages; a bare .xml part is raw.
func PackageFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pptx", ".pptm", ".potx", ".potm", ".ppsx", ".ppsm",
		".docx", ".docm", ".dotx", ".dotm",
		".xlsx", ".xlsm", ".xltx", ".xltm",
		".zip":
		return ZipFormat
	case ".xml":
		return RawFormat
	default:
		return UnknownFormat
	}
}

// ContentSummary records the name and content hash of every part in a package.
// Files is sorted by name.
type ContentSummary struct {
	Files      []string
	FileHashes []string
}

// Hash returns the recorded hash for the named part.
func (cs *ContentSummary) Hash(name string) (string, bool) {
	for i, f := range cs.Files {
		if f == name {
			return cs.FileHashes[i], true
		}
	}
	return "", false
}

// Diff returns the files that are only in this summary, the files that are in both summaries but have different hashes, and the files that are only in the other summary.
func (cs *ContentSummary) Diff(other *ContentSummary) (leftOnly, diffs, rightOnly []string) {
	left := cs
	right := other
	var i, j int
	for i < len(left.Files) || j < len(right.Files) {
		switch {
		case i >= len(left.Files):
			rightOnly = append(rightOnly, right.Files[j])
			j++
		case j >= len(right.Files):
			leftOnly = append(leftOnly, left.Files[i])
			i++
		case left.Files[i] == right.Files[j]:
			if left.FileHashes[i] != right.FileHashes[j] {
				diffs = append(diffs, right.Files[j])
			}
			i++
			j++
		case left.Files[i] < right.Files[j]:
			leftOnly = append(leftOnly, left.Files[i])
			i++
		case left.Files[i] > right.Files[j]:
			rightOnly = append(rightOnly, right.Files[j])
			j++
		}
	}
	return
}
