// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package convertfonts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/archive"
	"github.com/google/contentkit/pkg/archive/archivetest"
	"github.com/google/contentkit/pkg/fontswap"
	"github.com/google/go-cmp/cmp"
)

const slide = `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><a:latin typeface="Arial"/></p:sld>`

func writeDeck(t *testing.T, fs billy.Filesystem, name string) {
	t.Helper()
	buf, err := archivetest.ZipFile([]archive.ZipEntry{archivetest.Part("ppt/slides/slide1.xml", slide)})
	if err != nil {
		t.Fatalf("building deck: %v", err)
	}
	if err := util.WriteFile(fs, name, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func fonts(t *testing.T, fs billy.Filesystem, name string) []string {
	t.Helper()
	b, err := util.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	bad, err := fontswap.Verify(bytes.NewReader(b), fontswap.Options{Font: "-"})
	if err != nil {
		t.Fatalf("verifying %s: %v", name, err)
	}
	var got []string
	for _, m := range bad {
		got = append(got, m.Value)
	}
	return got
}

func newDeps(fs billy.Filesystem) (*Deps, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Deps{FS: fs, IO: cli.IO{Out: &out, Err: &errOut}}, &out, &errOut
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "single source", cfg: Config{Sources: []string{"a.pptx"}}},
		{name: "many sources in place", cfg: Config{Sources: []string{"a.pptx", "b.docx"}}},
		{name: "output for one source", cfg: Config{Sources: []string{"a.pptx"}, Output: "out.pptx"}},
		{name: "no sources", cfg: Config{}, wantErr: true},
		{name: "output for many sources", cfg: Config{Sources: []string{"a.pptx", "b.pptx"}, Output: "out.pptx"}, wantErr: true},
		{name: "output with check", cfg: Config{Sources: []string{"a.pptx"}, Output: "out.pptx", Check: true}, wantErr: true},
		{name: "single part", cfg: Config{Sources: []string{"slide1.xml"}}, wantErr: true},
		{name: "legacy format", cfg: Config{Sources: []string{"a.pptx", "old.ppt"}}, wantErr: true},
		{name: "output not a package", cfg: Config{Sources: []string{"a.pptx"}, Output: "out.txt"}, wantErr: true},
		{name: "bad part pattern", cfg: Config{Sources: []string{"a.pptx"}, Parts: "ppt/**,x**"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestHandlerConvertsInPlace(t *testing.T) {
	color.NoColor = true
	fs := memfs.New()
	writeDeck(t, fs, "/a.pptx")
	writeDeck(t, fs, "/b.pptx")
	deps, out, _ := newDeps(fs)
	if _, err := Handler(context.Background(), Config{Sources: []string{"/a.pptx", "/b.pptx"}}, deps); err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	want := "converted /a.pptx -> /a.pptx: 1 typeface attributes in 1 parts (0 skipped)\n" +
		"converted /b.pptx -> /b.pptx: 1 typeface attributes in 1 parts (0 skipped)\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"/a.pptx", "/b.pptx"} {
		if diff := cmp.Diff([]string{fontswap.DefaultFont}, fonts(t, fs, name)); diff != "" {
			t.Errorf("%s fonts mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestHandlerFontPrecedence(t *testing.T) {
	color.NoColor = true
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "default", cfg: Config{}, want: fontswap.DefaultFont},
		{name: "config file", cfg: Config{ConfigPath: "/tasks.toml"}, want: "Pretendard"},
		{name: "flag wins", cfg: Config{ConfigPath: "/tasks.toml", Font: "Nanum Gothic"}, want: "Nanum Gothic"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := memfs.New()
			writeDeck(t, fs, "/deck.pptx")
			if err := util.WriteFile(fs, "/tasks.toml", []byte("[fonts]\nfont = \"Pretendard\"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			tc.cfg.Sources = []string{"/deck.pptx"}
			tc.cfg.Output = "/out/deck.pptx"
			deps, _, _ := newDeps(fs)
			if _, err := Handler(context.Background(), tc.cfg, deps); err != nil {
				t.Fatalf("Handler() error = %v", err)
			}
			if diff := cmp.Diff([]string{tc.want}, fonts(t, fs, "/out/deck.pptx")); diff != "" {
				t.Errorf("fonts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"Arial"}, fonts(t, fs, "/deck.pptx")); diff != "" {
				t.Errorf("source changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerCheck(t *testing.T) {
	color.NoColor = true
	fs := memfs.New()
	writeDeck(t, fs, "/deck.pptx")
	deps, out, _ := newDeps(fs)
	cfg := Config{Sources: []string{"/deck.pptx"}, Check: true}
	if _, err := Handler(context.Background(), cfg, deps); err == nil {
		t.Fatal("Handler() with mismatched fonts succeeded, want error")
	}
	if want := "mismatch /deck.pptx: ppt/slides/slide1.xml=\"Arial\"\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if _, err := Handler(context.Background(), Config{Sources: cfg.Sources, Quiet: true}, deps); err != nil {
		t.Fatalf("converting: %v", err)
	}
	out.Reset()
	if _, err := Handler(context.Background(), cfg, deps); err != nil {
		t.Fatalf("Handler() after conversion error = %v", err)
	}
	if want := "ok /deck.pptx\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestHandlerContinuesPastFailures(t *testing.T) {
	color.NoColor = true
	fs := memfs.New()
	writeDeck(t, fs, "/good.pptx")
	deps, _, errOut := newDeps(fs)
	cfg := Config{Sources: []string{"/missing.pptx", "/good.pptx"}, Quiet: true}
	_, err := Handler(context.Background(), cfg, deps)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 packages failed") {
		t.Fatalf("Handler() error = %v, want a failure count", err)
	}
	if !strings.Contains(errOut.String(), "failed") {
		t.Errorf("stderr = %q, want a failure line", errOut.String())
	}
	if diff := cmp.Diff([]string{fontswap.DefaultFont}, fonts(t, fs, "/good.pptx")); diff != "" {
		t.Errorf("fonts mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerResolvesRelativePaths(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	t.Chdir(dir)
	deps, err := InitDeps(context.Background())
	if err != nil {
		t.Fatalf("InitDeps() error = %v", err)
	}
	writeDeck(t, deps.FS, filepath.Join(dir, "deck.pptx"))
	if err := os.Mkdir(filepath.Join(dir, "out"), 0o755); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	deps.SetIO(cli.IO{Out: &out, Err: &out})
	cfg := Config{Sources: []string{"deck.pptx"}, Output: "out/deck.pptx", Quiet: true}
	if _, err := Handler(context.Background(), cfg, deps); err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if diff := cmp.Diff([]string{fontswap.DefaultFont}, fonts(t, deps.FS, filepath.Join(dir, "out", "deck.pptx"))); diff != "" {
		t.Errorf("fonts mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertKeepsPermissions(t *testing.T) {
	dir := t.TempDir()
	deps, err := InitDeps(context.Background())
	if err != nil {
		t.Fatalf("InitDeps() error = %v", err)
	}
	name := filepath.Join(dir, "private.pptx")
	writeDeck(t, deps.FS, name)
	if err := os.Chmod(name, 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	deps.SetIO(cli.IO{Out: &out, Err: &out})
	if _, err := Handler(context.Background(), Config{Sources: []string{name}, Quiet: true}, deps); err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o600 {
		t.Errorf("mode after in-place conversion = %v, want %v", got, os.FileMode(0o600))
	}
}
