// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package glob

import (
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		path     string
		expected bool
		hasError bool
	}{
		// No **
		{"abc", "abc", true, false},
		{"a*c", "abc", true, false},
		{"a?c", "abc", true, false},
		{"a[b]c", "abc", true, false},
		{"a/b/c", "a/b/c", true, false},
		{"a/*/c", "a/b/c", true, false},
		{"*.xml", "ppt/slide1.xml", false, false},
		{"*.xml", "[Content_Types].xml", true, false},

		// **
		{"**", "", true, false},
		{"**", "a/b/c", true, false},
		{"**/*.xml", "[Content_Types].xml", true, false},
		{"**/*.xml", "ppt/slides/slide1.xml", true, false},
		{"**/*.xml", "/ppt/slides/slide1.xml", true, false},
		{"**/*.xml", "ppt/slides/_rels/slide1.xml.rels", false, false},
		{"ppt/**/*.xml", "ppt/theme/theme1.xml", true, false},
		{"ppt/**/*.xml", "ppt/presentation.xml", true, false},
		{"ppt/**/*.xml", "docProps/app.xml", false, false},
		{"**/slides/**", "ppt/slides/a/b.xml", true, false},
		{"a/**", "a", true, false},
		{"/Game/Props/**", "/Game/Props/Rock", true, false},
		{"/Game/Props/**", "/Game/Maps/Forest", false, false},

		// Invalid patterns
		{"a**b", "", false, true},
		{"a/**b", "", false, true},
		{"***", "", false, true},
		{"a/[", "", false, true},
	}
	for _, test := range tests {
		result, err := Match(test.pattern, test.path)
		if (err != nil) != test.hasError {
			t.Errorf("Match(%q, %q) error = %v, hasError = %v", test.pattern, test.path, err, test.hasError)
			continue
		}
		if test.hasError {
			continue
		}
		if result != test.expected {
			t.Errorf("Match(%q, %q) = %v, expected %v",
				test.pattern, test.path, result, test.expected)
		}
	}
}

func TestSet(t *testing.T) {
	s, err := Compile("**/*.xml", "**/*.rels")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for name, want := range map[string]bool{
		"ppt/slides/slide1.xml":            true,
		"ppt/slides/_rels/slide1.xml.rels": true,
		"ppt/media/image1.png":             false,
	} {
		if got := s.Match(name); got != want {
			t.Errorf("Match(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := Compile("ok/*.xml", "bad**"); err == nil {
		t.Error("Compile() with invalid pattern succeeded, want error")
	}
}
