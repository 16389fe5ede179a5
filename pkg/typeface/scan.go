// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typeface

import (
	"github.com/pkg/errors"
)

// rawAttr locates one attribute value within a raw start tag.
type rawAttr struct {
	name       string
	start, end int
	quote      byte
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// scanAttrs lexes the attributes of a raw start tag such as
// `<a:latin typeface="Arial" pitchFamily="34"/>`. The tag has already been
// accepted by the XML decoder, so only its shape is checked here.
func scanAttrs(tag []byte) ([]rawAttr, error) {
	if len(tag) < 2 || tag[0] != '<' {
		return nil, errors.Wrapf(ErrMalformed, "unexpected start tag %q", tag)
	}
	i := 1
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}
	var attrs []rawAttr
	for {
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) {
			return nil, errors.Wrapf(ErrMalformed, "unterminated start tag %q", tag)
		}
		if tag[i] == '/' || tag[i] == '>' {
			return attrs, nil
		}
		nameStart := i
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '=' {
			i++
		}
		name := string(tag[nameStart:i])
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			return nil, errors.Wrapf(ErrMalformed, "attribute %s without value", name)
		}
		i++
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || (tag[i] != '"' && tag[i] != '\'') {
			return nil, errors.Wrapf(ErrMalformed, "unquoted value for attribute %s", name)
		}
		q := tag[i]
		i++
		valStart := i
		for i < len(tag) && tag[i] != q {
			i++
		}
		if i >= len(tag) {
			return nil, errors.Wrapf(ErrMalformed, "unterminated value for attribute %s", name)
		}
		attrs = append(attrs, rawAttr{name: name, start: valStart, end: i, quote: q})
		i++
	}
}
