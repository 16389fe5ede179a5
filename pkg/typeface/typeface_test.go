// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typeface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

const slide = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <!-- title -->
  <p:txBody>
    <a:r><a:rPr lang="en-US"><a:latin typeface="Arial" pitchFamily="34" charset="0"/><a:ea typeface='+mn-ea'/></a:rPr><a:t>Hello &amp; welcome</a:t></a:r>
  </p:txBody>
</p:sld>`

func TestRewrite(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		font      string
		want      string
		wantFound int
		wantCount int
	}{
		{
			name:      "drawingml slide",
			input:     slide,
			font:      "Noto Sans KR",
			want:      `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` + "\n  <!-- title -->\n  <p:txBody>\n" + `    <a:r><a:rPr lang="en-US"><a:latin typeface="Noto Sans KR" pitchFamily="34" charset="0"/><a:ea typeface='Noto Sans KR'/></a:rPr><a:t>Hello &amp; welcome</a:t></a:r>` + "\n  </p:txBody>\n</p:sld>",
			wantFound: 2,
			wantCount: 2,
		},
		{
			name:      "plain and namespaced attributes",
			input:     `<root xmlns:x="urn:x"><font typeface="Arial"/><font x:typeface="Calibri"/><font typeface="{urn:x}Calibri"/></root>`,
			font:      "Noto Sans KR",
			want:      `<root xmlns:x="urn:x"><font typeface="Noto Sans KR"/><font x:typeface="Noto Sans KR"/><font typeface="Noto Sans KR"/></root>`,
			wantFound: 3,
			wantCount: 3,
		},
		{
			name:      "already converted",
			input:     `<root><font typeface="Noto Sans KR"/></root>`,
			font:      "Noto Sans KR",
			want:      `<root><font typeface="Noto Sans KR"/></root>`,
			wantFound: 1,
		},
		{
			name:      "no typefaces",
			input:     `<Relationships><Relationship Id="rId1" Target="slides/slide1.xml"/></Relationships>`,
			font:      "Noto Sans KR",
			want:      `<Relationships><Relationship Id="rId1" Target="slides/slide1.xml"/></Relationships>`,
			wantFound: 0,
		},
		{
			name:      "font needing escapes",
			input:     `<root><font typeface='Arial'/></root>`,
			font:      `Tom & "Jerry's"`,
			want:      `<root><font typeface='Tom &amp; &#34;Jerry&#39;s&#34;'/></root>`,
			wantFound: 1,
			wantCount: 1,
		},
		{
			name:      "escaped value equal to font",
			input:     `<root><font typeface="A&amp;B"/></root>`,
			font:      "A&B",
			want:      `<root><font typeface="A&amp;B"/></root>`,
			wantFound: 1,
		},
		{
			name:      "namespace declaration named typeface",
			input:     `<root xmlns:typeface="urn:t"><font typeface:other="1" typeface = "Arial" /></root>`,
			font:      "Noto Sans KR",
			want:      `<root xmlns:typeface="urn:t"><font typeface:other="1" typeface = "Noto Sans KR" /></root>`,
			wantFound: 1,
			wantCount: 1,
		},
		{
			name:      "xml prefix and default namespace",
			input:     `<root xmlns="urn:d"><font xml:lang="ko" typeface="Arial"/></root>`,
			font:      "Noto Sans KR",
			want:      `<root xmlns="urn:d"><font xml:lang="ko" typeface="Noto Sans KR"/></root>`,
			wantFound: 1,
			wantCount: 1,
		},
		{
			name:      "multiline tag",
			input:     "<root>\n<font\n\ttypeface=\"Arial\"\n\tcharset=\"0\"></font></root>",
			font:      "Noto Sans KR",
			want:      "<root>\n<font\n\ttypeface=\"Noto Sans KR\"\n\tcharset=\"0\"></font></root>",
			wantFound: 1,
			wantCount: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res, err := Rewrite([]byte(tt.input), tt.font)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Rewrite() content mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(Result{Found: tt.wantFound, Count: tt.wantCount}, res); diff != "" {
				t.Errorf("Rewrite() result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewriteIdempotent(t *testing.T) {
	first, res, err := Rewrite([]byte(slide), "Noto Sans KR")
	if err != nil || res.Count == 0 {
		t.Fatalf("Rewrite() = %v, %v; want changes", res, err)
	}
	second, res, err := Rewrite(first, "Noto Sans KR")
	if err != nil {
		t.Fatalf("second Rewrite() error = %v", err)
	}
	if res.Count != 0 {
		t.Errorf("second Rewrite() count = %d, want 0", res.Count)
	}
	if string(second) != string(first) {
		t.Errorf("second Rewrite() changed content:\n%s", cmp.Diff(string(first), string(second)))
	}
}

func TestRewriteMalformed(t *testing.T) {
	for name, input := range map[string]string{
		"empty":          "",
		"only prolog":    `<?xml version="1.0"?>`,
		"mismatched":     `<a typeface="Arial"></b>`,
		"unclosed":       `<a><b typeface="Arial"/>`,
		"bad attribute":  `<a typeface=Arial/>`,
		"text only":      `hello`,
		"undefined ent":  `<a typeface="&bogus;"/>`,
		"two roots junk": `<a/><`,
		"unbound attr":   `<f a:typeface="Arial"/>`,
		"unbound elem":   `<root><a:latin typeface="Arial"/></root>`,
		"out of scope":   `<root><g xmlns:a="urn:a"/><f a:typeface="Arial"/></root>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Rewrite([]byte(input), "Noto Sans KR")
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Rewrite(%q) error = %v, want ErrMalformed", input, err)
			}
		})
	}
}

func TestMismatches(t *testing.T) {
	got, err := Mismatches([]byte(slide), "Arial")
	if err != nil {
		t.Fatalf("Mismatches() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Mismatches() = %d occurrences, want 1", len(got))
	}
	if got[0].Value != "+mn-ea" || got[0].Element.Local != "ea" || got[0].Quote != '\'' {
		t.Errorf("Mismatches()[0] = %+v, want ea +mn-ea in single quotes", got[0])
	}
	if got[0].Element.Space != "http://schemas.openxmlformats.org/drawingml/2006/main" {
		t.Errorf("Mismatches()[0].Element.Space = %q, want the drawingml namespace", got[0].Element.Space)
	}
}

func TestScanAttrs(t *testing.T) {
	tag := `<a:latin typeface="Arial" x = 'y' empty=""/>`
	got, err := scanAttrs([]byte(tag))
	if err != nil {
		t.Fatalf("scanAttrs() error = %v", err)
	}
	var names, values []string
	for _, a := range got {
		names = append(names, a.name)
		values = append(values, tag[a.start:a.end])
	}
	if diff := cmp.Diff([]string{"typeface", "x", "empty"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Arial", "y", ""}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}
