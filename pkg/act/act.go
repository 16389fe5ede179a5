// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package act provides the small action abstraction shared by the contentkit
// commands: a validated Input, a dependency container and an Action that
// consumes both.
package act

import "context"

// Input is a validated input type (flags, task config, etc.)
type Input interface {
	Validate() error
}

// Deps is a marker type for dependency containers.
type Deps any

// InitDeps initializes dependencies from context.
type InitDeps[D Deps] func(context.Context) (D, error)

// Action is a transport-agnostic operation.
type Action[I Input, O any, D Deps] func(context.Context, I, D) (*O, error)

// NoOutput is a zero-value output for actions that only produce side effects.
type NoOutput struct{}
