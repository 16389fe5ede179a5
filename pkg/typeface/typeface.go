// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package typeface finds and rewrites font-naming "typeface" attributes in
// office-document XML parts.
//
// Rewriting is done in place on the raw bytes: only the values of rewritten
// attributes change, every other byte of the part is preserved.
package typeface

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// AttrName is the local name of the attribute that names a font.
const AttrName = "typeface"

// ErrMalformed is returned for parts that are not well-formed XML.
var ErrMalformed = errors.New("malformed xml")

// Occurrence is one typeface attribute within a part.
type Occurrence struct {
	// Element is the name of the element carrying the attribute.
	Element xml.Name
	// Attr is the attribute name; Space holds the namespace URL when prefixed.
	Attr xml.Name
	// Value is the decoded attribute value.
	Value string
	// Start and End delimit the raw (escaped) value bytes within the part.
	Start, End int
	// Quote is the quote character surrounding the value.
	Quote byte
}

// Result summarizes a Rewrite.
type Result struct {
	// Found is the number of typeface attributes in the part.
	Found int
	// Count is the number of attributes whose value was replaced.
	Count int
}

// Find returns every typeface attribute in content in document order.
func Find(content []byte) ([]Occurrence, error) {
	d := xml.NewDecoder(bytes.NewReader(content))
	d.Strict = true
	var found []Occurrence
	var sawElement bool
	var scopes []map[string]bool
	for {
		start := int(d.InputOffset())
		tok, err := d.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(ErrMalformed, err.Error())
		}
		if _, ok := tok.(xml.EndElement); ok {
			scopes = scopes[:len(scopes)-1]
			continue
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		scopes = append(scopes, declared(se.Attr))
		if err := checkBound(se, scopes); err != nil {
			return nil, errors.Wrapf(err, "at offset %d", start)
		}
		if !hasTypeface(se.Attr) {
			continue
		}
		end := int(d.InputOffset())
		raw, err := scanAttrs(content[start:end])
		if err != nil {
			return nil, err
		}
		if len(raw) != len(se.Attr) {
			return nil, errors.Wrapf(ErrMalformed, "attribute count mismatch in <%s> at offset %d", se.Name.Local, start)
		}
		for i, a := range se.Attr {
			if !isTypeface(a.Name) {
				continue
			}
			found = append(found, Occurrence{
				Element: se.Name,
				Attr:    a.Name,
				Value:   a.Value,
				Start:   start + raw[i].start,
				End:     start + raw[i].end,
				Quote:   raw[i].quote,
			})
		}
	}
	if !sawElement {
		return nil, errors.Wrap(ErrMalformed, "no root element")
	}
	return found, nil
}

// Rewrite replaces the value of every typeface attribute that differs from
// font. When nothing differs the original content is returned unchanged.
func Rewrite(content []byte, font string) ([]byte, Result, error) {
	occs, err := Find(content)
	if err != nil {
		return nil, Result{}, err
	}
	res := Result{Found: len(occs)}
	var out bytes.Buffer
	last := 0
	for _, o := range occs {
		if o.Value == font {
			continue
		}
		out.Write(content[last:o.Start])
		if err := xml.EscapeText(&out, []byte(font)); err != nil {
			return nil, Result{}, errors.Wrap(err, "escaping font name")
		}
		last = o.End
		res.Count++
	}
	if res.Count == 0 {
		return content, res, nil
	}
	out.Write(content[last:])
	return out.Bytes(), res, nil
}

// Mismatches returns the typeface attributes in content whose value is not font.
func Mismatches(content []byte, font string) ([]Occurrence, error) {
	occs, err := Find(content)
	if err != nil {
		return nil, err
	}
	var bad []Occurrence
	for _, o := range occs {
		if o.Value != font {
			bad = append(bad, o)
		}
	}
	return bad, nil
}

func hasTypeface(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if isTypeface(a.Name) {
			return true
		}
	}
	return false
}

// isTypeface matches "typeface" with or without a namespace, but not a
// namespace declaration that happens to bind the prefix "typeface".
func isTypeface(n xml.Name) bool {
	return n.Local == AttrName && n.Space != "xmlns"
}

const xmlURL = "http://www.w3.org/XML/1998/namespace"

// declared returns the namespace URLs bound by attrs.
func declared(attrs []xml.Attr) map[string]bool {
	var urls map[string]bool
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			if urls == nil {
				urls = make(map[string]bool)
			}
			urls[a.Value] = true
		}
	}
	return urls
}

// checkBound rejects element and attribute prefixes with no namespace
// declaration in scope. The decoder leaves such a prefix in Name.Space
// instead of failing.
func checkBound(se xml.StartElement, scopes []map[string]bool) error {
	bound := func(space string) bool {
		if space == "" || space == xmlURL {
			return true
		}
		for _, s := range scopes {
			if s[space] {
				return true
			}
		}
		return false
	}
	if !bound(se.Name.Space) {
		return errors.Wrapf(ErrMalformed, "unbound prefix %q on <%s>", se.Name.Space, se.Name.Local)
	}
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" {
			continue
		}
		if !bound(a.Name.Space) {
			return errors.Wrapf(ErrMalformed, "unbound prefix %q on attribute %s", a.Name.Space, a.Name.Local)
		}
	}
	return nil
}
