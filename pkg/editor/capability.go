// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package editor

import (
	"fmt"

	"github.com/google/contentkit/internal/semver"
	"github.com/pkg/errors"
)

var ErrMissingCapability = errors.New("missing editor capability")

// MissingCapabilityError names a class, subsystem or method the host lacks.
type MissingCapabilityError struct {
	Capability  string
	Requirement string
}

func (e *MissingCapabilityError) Error() string {
	if e.Requirement == "" {
		return fmt.Sprintf("%s is not available", e.Capability)
	}
	return fmt.Sprintf("%s is not available: requires %s", e.Capability, e.Requirement)
}

func (e *MissingCapabilityError) Is(target error) bool {
	return target == ErrMissingCapability
}

// RequireClass fails with a MissingCapabilityError when reg cannot resolve name.
func RequireClass(reg ClassRegistry, name, requirement string) error {
	if reg.HasClass(name) {
		return nil
	}
	return &MissingCapabilityError{Capability: "class " + name, Requirement: requirement}
}

// RequireVersion fails with a MissingCapabilityError when the engine is older than min.
func RequireVersion(reg ClassRegistry, min semver.Version, capability string) error {
	if v := reg.EngineVersion(); !v.AtLeast(min) {
		return &MissingCapabilityError{
			Capability:  capability,
			Requirement: fmt.Sprintf("engine %d.%d or newer (running %s)", min.Major, min.Minor, v),
		}
	}
	return nil
}
