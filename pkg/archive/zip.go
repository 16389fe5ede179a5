// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// NewContentSummaryFromZip returns a ContentSummary for a zip archive.
// Directory entries are not summarized.
func NewContentSummaryFromZip(zr *zip.Reader) (*ContentSummary, error) {
	type part struct{ name, hash string }
	var parts []part
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", f.Name)
		}
		buf, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", f.Name)
		}
		h := sha256.Sum256(buf)
		parts = append(parts, part{f.Name, hex.EncodeToString(h[:])})
	}
	slices.SortFunc(parts, func(a, b part) int { return strings.Compare(a.name, b.name) })
	cs := ContentSummary{Files: make([]string, 0, len(parts)), FileHashes: make([]string, 0, len(parts))}
	for _, p := range parts {
		cs.Files = append(cs.Files, p.name)
		cs.FileHashes = append(cs.FileHashes, p.hash)
	}
	return &cs, nil
}

// ZipEntry represents an entry in a zip archive.
type ZipEntry struct {
	*zip.FileHeader
	Body []byte
}

// WriteTo writes the ZipEntry to a zip writer.
func (e ZipEntry) WriteTo(zw *zip.Writer) error {
	fw, err := zw.CreateHeader(e.FileHeader)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, bytes.NewReader(e.Body)); err != nil {
		return err
	}
	return nil
}

// MutableZipFile wraps zip.File to allow replacing the content of one part.
type MutableZipFile struct {
	zip.FileHeader
	File       *zip.File
	mutContent []byte
}

// Open returns a reader for the file content.
func (mf *MutableZipFile) Open() (io.ReadCloser, error) {
	if mf.mutContent != nil {
		return io.NopCloser(bytes.NewReader(mf.mutContent)), nil
	}
	return mf.File.Open()
}

// ReadAll returns the full content of the file.
func (mf *MutableZipFile) ReadAll() ([]byte, error) {
	rc, err := mf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// SetContent sets the modified content for this file.
func (mf *MutableZipFile) SetContent(content []byte) {
	mf.mutContent = content
}

// Rewritten reports whether SetContent replaced the original content.
func (mf *MutableZipFile) Rewritten() bool {
	return mf.mutContent != nil
}

// MutableZipReader wraps zip.Reader to allow in-place modification of the original.
type MutableZipReader struct {
	*zip.Reader
	File    []*MutableZipFile
	Comment string
}

// NewMutableReader creates a MutableZipReader from a zip.Reader.
func NewMutableReader(zr *zip.Reader) MutableZipReader {
	mr := MutableZipReader{Reader: zr}
	mr.Comment = mr.Reader.Comment
	for _, zf := range zr.File {
		mr.File = append(mr.File, &MutableZipFile{File: zf, FileHeader: zf.FileHeader})
	}
	return mr
}

// WriteTo writes the archive to a zip writer in its original entry order.
// Entries whose content was not replaced are copied without recompression so
// their stored bytes are identical to the source.
func (mr MutableZipReader) WriteTo(zw *zip.Writer) error {
	if err := zw.SetComment(mr.Comment); err != nil {
		return err
	}
	for _, mf := range mr.File {
		var err error
		if mf.Rewritten() || mf.File == nil {
			err = writeRewritten(zw, mf)
		} else {
			err = writeRaw(zw, mf)
		}
		if err != nil {
			return errors.Wrapf(err, "writing %s", mf.Name)
		}
	}
	return nil
}

func writeRaw(zw *zip.Writer, mf *MutableZipFile) error {
	r, err := mf.File.OpenRaw()
	if err != nil {
		return err
	}
	fh := mf.FileHeader
	w, err := zw.CreateRaw(&fh)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	return err
}

func writeRewritten(zw *zip.Writer, mf *MutableZipFile) error {
	r, err := mf.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	fh := mf.FileHeader
	fh.CRC32 = 0
	fh.CompressedSize, fh.CompressedSize64 = 0, 0
	fh.UncompressedSize, fh.UncompressedSize64 = 0, 0
	// The writer re-emits these itself.
	fh.Extra = stripExtraFields(fh.Extra, zip64ExtraID, extTimeExtraID)
	w, err := zw.CreateHeader(&fh)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	return err
}

const (
	zip64ExtraID   = 0x0001
	extTimeExtraID = 0x5455
)

// stripExtraFields removes the extra field blocks with the given header IDs.
// A malformed trailing block is dropped.
func stripExtraFields(extra []byte, ids ...uint16) []byte {
	var out []byte
	for len(extra) >= 4 {
		id := binary.LittleEndian.Uint16(extra[0:2])
		size := int(binary.LittleEndian.Uint16(extra[2:4]))
		if 4+size > len(extra) {
			break
		}
		if !slices.Contains(ids, id) {
			out = append(out, extra[:4+size]...)
		}
		extra = extra[4+size:]
	}
	return out
}

// ToZipCompatibleReader coerces an io.Reader into an io.ReaderAt required to construct a zip.Reader.
func ToZipCompatibleReader(r io.Reader) (io.ReaderAt, int64, error) {
	seeker, seekerOK := r.(io.Seeker)
	readerAt, readerOK := r.(io.ReaderAt)
	if seekerOK && readerOK {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, errors.Wrap(err, "locating reader position")
		}
		size, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, errors.Wrap(err, "retrieving size")
		}
		if _, err := seeker.Seek(pos, io.SeekStart); err != nil {
			return nil, 0, errors.Wrap(err, "restoring reader position")
		}
		return readerAt, size, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, errors.Wrap(err, "buffering reader")
	}
	return bytes.NewReader(b), int64(len(b)), nil
}
