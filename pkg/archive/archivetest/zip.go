// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package archivetest builds and inspects zip packages in tests.
package archivetest

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/google/contentkit/pkg/archive"
)

// ZipFile writes entries, in order, into a new zip archive.
func ZipFile(entries []archive.ZipEntry) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		if err := entry.WriteTo(zw); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Part returns a deflated entry with the given name and body.
func Part(name, body string) archive.ZipEntry {
	return archive.ZipEntry{
		FileHeader: &zip.FileHeader{Name: name, Method: zip.Deflate},
		Body:       []byte(body),
	}
}

// Parts reads every non-directory entry of a zip archive into a name->content map.
func Parts(b []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		parts[f.Name] = string(body)
	}
	return parts, nil
}
