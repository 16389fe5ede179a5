// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func buildZip(t *testing.T, comment string, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		orDie(e.WriteTo(zw))
	}
	orDie(zw.SetComment(comment))
	orDie(zw.Close())
	return buf.Bytes()
}

func TestMutableZipReader_WriteTo(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := buildZip(t, "deck",
		ZipEntry{&zip.FileHeader{Name: "[Content_Types].xml", Method: zip.Deflate, Modified: modified}, []byte("<Types/>")},
		ZipEntry{&zip.FileHeader{Name: "ppt/slides/slide1.xml", Method: zip.Deflate, Modified: modified}, []byte(`<p typeface="Arial"/>`)},
		ZipEntry{&zip.FileHeader{Name: "ppt/media/image1.png", Method: zip.Store}, []byte{0x89, 'P', 'N', 'G'}},
	)
	zr := must(zip.NewReader(bytes.NewReader(input), int64(len(input))))
	mr := NewMutableReader(zr)
	mr.File[1].SetContent([]byte(`<p typeface="Noto Sans KR"/>`))
	var output bytes.Buffer
	zw := zip.NewWriter(&output)
	orDie(mr.WriteTo(zw))
	orDie(zw.Close())

	got := must(zip.NewReader(bytes.NewReader(output.Bytes()), int64(output.Len())))
	if got.Comment != "deck" {
		t.Errorf("comment = %q, want %q", got.Comment, "deck")
	}
	var names []string
	for _, f := range got.File {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"[Content_Types].xml", "ppt/slides/slide1.xml", "ppt/media/image1.png"}, names); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
	bodies := map[string]string{}
	for _, f := range got.File {
		bodies[f.Name] = string(must(io.ReadAll(must(f.Open()))))
	}
	if want := `<p typeface="Noto Sans KR"/>`; bodies["ppt/slides/slide1.xml"] != want {
		t.Errorf("rewritten part = %q, want %q", bodies["ppt/slides/slide1.xml"], want)
	}
	if !got.File[1].Modified.Equal(modified) {
		t.Errorf("rewritten part modified = %v, want %v", got.File[1].Modified, modified)
	}
	// Untouched entries keep their stored bytes.
	for _, i := range []int{0, 2} {
		want := must(io.ReadAll(must(zr.File[i].OpenRaw())))
		have := must(io.ReadAll(must(got.File[i].OpenRaw())))
		if !bytes.Equal(want, have) {
			t.Errorf("%s: raw bytes changed", zr.File[i].Name)
		}
		if got.File[i].Method != zr.File[i].Method {
			t.Errorf("%s: method = %d, want %d", zr.File[i].Name, got.File[i].Method, zr.File[i].Method)
		}
	}
}

func TestNewContentSummaryFromZip(t *testing.T) {
	input := buildZip(t, "",
		ZipEntry{&zip.FileHeader{Name: "ppt/"}, nil},
		ZipEntry{&zip.FileHeader{Name: "ppt/b.xml"}, []byte("b")},
		ZipEntry{&zip.FileHeader{Name: "a.xml"}, []byte("a")},
	)
	cs := must(NewContentSummary(bytes.NewReader(input), ZipFormat))
	if diff := cmp.Diff([]string{"a.xml", "ppt/b.xml"}, cs.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if len(cs.FileHashes) != 2 || cs.FileHashes[0] == cs.FileHashes[1] {
		t.Errorf("FileHashes = %v, want two distinct hashes", cs.FileHashes)
	}
	if _, err := NewContentSummary(bytes.NewReader(input), RawFormat); err == nil {
		t.Error("NewContentSummary(RawFormat) succeeded, want error")
	}
}

func TestStripExtraFields(t *testing.T) {
	block := func(id uint16, data ...byte) []byte {
		return append([]byte{byte(id), byte(id >> 8), byte(len(data)), 0}, data...)
	}
	extra := bytes.Join([][]byte{
		block(extTimeExtraID, 1, 0, 0, 0, 0),
		block(0x7875, 1, 4),
		block(zip64ExtraID, 0, 0, 0, 0, 0, 0, 0, 0),
	}, nil)
	got := stripExtraFields(extra, zip64ExtraID, extTimeExtraID)
	if diff := cmp.Diff(block(0x7875, 1, 4), got); diff != "" {
		t.Errorf("stripExtraFields mismatch (-want +got):\n%s", diff)
	}
	if got := stripExtraFields([]byte{0x55, 0x54, 0x09}, extTimeExtraID); got != nil {
		t.Errorf("stripExtraFields(truncated) = %v, want nil", got)
	}
}

func must[T any](t T, err error) T {
	orDie(err)
	return t
}

func orDie(err error) {
	if err != nil {
		panic(err)
	}
}

func TestToZipCompatibleReader(t *testing.T) {
	tests := []struct {
		name       string
		input      io.Reader
		size       int64
		expectRead bool
	}{
		{
			name:  "seekable ReaderAt",
			input: bytes.NewReader([]byte("test data")),
			size:  9,
		},
		{
			name:       "non-seekable ReaderAt",
			input:      &noSeekReaderAt{bytes.NewReader([]byte("test data")), false},
			size:       9,
			expectRead: true,
		},
		{
			name:       "non-ReadAt Reader",
			input:      &noReadAtSeeker{bytes.NewReader([]byte("test data")), false},
			size:       9,
			expectRead: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			readerAt, size, err := ToZipCompatibleReader(tc.input)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if readerAt == nil {
				t.Errorf("Unexpected nil reader")
			}
			if size != tc.size {
				t.Errorf("Expected size %d but got %d", tc.size, size)
			}
			if tc.expectRead && !tc.input.(readSpy).ReadCalled() {
				t.Error("Expected reader to have been read")
			}
		})
	}
}

type readSpy interface {
	io.Reader
	ReadCalled() bool
}

type noSeekReaderAt struct {
	io.ReaderAt
	readCalled bool
}

func (ns *noSeekReaderAt) ReadCalled() bool { return ns.readCalled }

func (ns *noSeekReaderAt) Read(p []byte) (n int, err error) {
	ns.readCalled = true
	return ns.ReaderAt.(io.Reader).Read(p)
}

func (ns *noSeekReaderAt) ReadAt(p []byte, off int64) (int, error) { return ns.ReaderAt.ReadAt(p, off) }

type noReadAtSeeker struct {
	io.ReadSeeker
	readCalled bool
}

func (ns *noReadAtSeeker) ReadCalled() bool { return ns.readCalled }

func (ns *noReadAtSeeker) Read(p []byte) (n int, err error) {
	ns.readCalled = true
	return ns.ReadSeeker.Read(p)
}

func (ns *noReadAtSeeker) Seek(off int64, w int) (int64, error) { return ns.ReadSeeker.Seek(off, w) }
