// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package editor

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

var (
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// StdLogger writes editor log lines through the standard log package.
type StdLogger struct {
	l *log.Logger
}

var _ Logger = &StdLogger{}

// NewLogger returns a Logger writing to w with the standard log flags.
func NewLogger(w io.Writer) *StdLogger {
	return &StdLogger{l: log.New(w, "", log.LstdFlags)}
}

func (s *StdLogger) Logf(format string, args ...any) {
	s.l.Print(fmt.Sprintf(format, args...))
}

func (s *StdLogger) Warningf(format string, args ...any) {
	s.l.Print(warningColor.Sprint("Warning:") + " " + fmt.Sprintf(format, args...))
}

func (s *StdLogger) Errorf(format string, args ...any) {
	s.l.Print(errorColor.Sprint("Error:") + " " + fmt.Sprintf(format, args...))
}
