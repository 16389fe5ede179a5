// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package session opens a project snapshot and task config for the editor
// commands and writes the project back once a routine has run.
package session

import (
	"flag"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/google/contentkit/internal/taskconfig"
	"github.com/google/contentkit/pkg/editor"
	"github.com/google/contentkit/pkg/editor/snapshot"
	"github.com/pkg/errors"
)

// Flags are the options shared by every editor command.
type Flags struct {
	Project    string
	ConfigPath string
	DryRun     bool
}

// Validate ensures a project was given.
func (f Flags) Validate() error {
	if f.Project == "" {
		return errors.New("--project is required")
	}
	return nil
}

// Register adds --project and --dry-run to set.
func (f *Flags) Register(set *flag.FlagSet) {
	set.StringVar(&f.Project, "project", "", "the project snapshot (YAML) to operate on")
	set.BoolVar(&f.DryRun, "dry-run", false, "run without writing the project back")
}

// RegisterConfig adds --config to set.
func (f *Flags) RegisterConfig(set *flag.FlagSet) {
	set.StringVar(&f.ConfigPath, "config", "", "a TOML task config")
}

// Abs resolves a command-line path against the working directory, for use
// with filesystems rooted at "/". The empty path stays empty.
func Abs(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	abs, err := filepath.Abs(p)
	return abs, errors.Wrapf(err, "resolving %s", p)
}

// Session is an editor host bound to the snapshot it was loaded from.
type Session struct {
	*snapshot.Host
	Tasks *taskconfig.File

	fs   billy.Filesystem
	path string
}

// Open loads the project and the task config named by f. Editor log lines
// are written to log.
func Open(fs billy.Filesystem, f Flags, log io.Writer) (*Session, error) {
	var err error
	if f.Project, err = Abs(f.Project); err != nil {
		return nil, err
	}
	if f.ConfigPath, err = Abs(f.ConfigPath); err != nil {
		return nil, err
	}
	tasks, err := taskconfig.Load(fs, f.ConfigPath)
	if err != nil {
		return nil, err
	}
	p, err := snapshot.Load(fs, f.Project)
	if err != nil {
		return nil, err
	}
	host, err := snapshot.NewHost(p, editor.NewLogger(log))
	if err != nil {
		return nil, errors.Wrap(err, "initializing editor host")
	}
	return &Session{Host: host, Tasks: tasks, fs: fs, path: f.Project}, nil
}

// Save writes the project back when the routine changed it. It reports
// whether anything was written.
func (s *Session) Save() (bool, error) {
	if !s.Modified() {
		return false, nil
	}
	if err := s.Project().Save(s.fs, s.path); err != nil {
		return false, errors.Wrap(err, "saving project")
	}
	return true, nil
}
