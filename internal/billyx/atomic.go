// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package billyx provides utilities for working with billy filesystems.
package billyx

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// WriteFileAtomic stages the output of write in a hidden file next to name
// and renames it over name once write, sync and close all succeed. On failure
// the staged file is removed and name is left as it was.
//
// The staged file is closed before the rename, so write may read from name.
func WriteFileAtomic(fs billy.Filesystem, name string, perm os.FileMode, write func(io.Writer) error) (err error) {
	tmp := TempName(fs, name)
	f, err := fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", tmp)
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp)
		}
	}()
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if s, ok := f.(interface{ Sync() error }); ok {
		if err = s.Sync(); err != nil {
			f.Close()
			return errors.Wrapf(err, "syncing %s", tmp)
		}
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp)
	}
	if err = fs.Rename(tmp, name); err != nil {
		return errors.Wrapf(err, "replacing %s", name)
	}
	return nil
}

// TempName returns a unique hidden sibling path for name.
func TempName(fs billy.Filesystem, name string) string {
	dir, base := filepath.Split(name)
	return fs.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}
