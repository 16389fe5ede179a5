// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cli adapts act actions into cobra commands.
package cli

import (
	"fmt"
	"io"
)

// IO provides input/output streams for CLI commands.
type IO struct {
	In  io.Reader // stdin
	Out io.Writer // stdout
	Err io.Writer // stderr
}

// Printf writes a formatted line to Out.
func (cio IO) Printf(format string, args ...any) {
	fmt.Fprintf(cio.Out, format, args...)
}
