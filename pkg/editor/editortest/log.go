// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package editortest provides test doubles for the editor package.
package editortest

import (
	"fmt"
	"sync"

	"github.com/google/contentkit/pkg/editor"
)

type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

type Entry struct {
	Severity Severity
	Message  string
}

// Logger records every line it is given.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ editor.Logger = &Logger{}

func (l *Logger) add(s Severity, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{s, fmt.Sprintf(format, args...)})
}

func (l *Logger) Logf(format string, args ...any)     { l.add(Info, format, args) }
func (l *Logger) Warningf(format string, args ...any) { l.add(Warning, format, args) }
func (l *Logger) Errorf(format string, args ...any)   { l.add(Error, format, args) }

// Messages returns the recorded messages of the given severity in order.
func (l *Logger) Messages(s Severity) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.Entries {
		if e.Severity == s {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
