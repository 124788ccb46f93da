// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"path"
	"strings"
)

// Kind tells playable sounds apart from navigation-only folders.
type Kind string

const (
	KindSound  Kind = "sound"
	KindFolder Kind = "folder"
)

// Sound is one catalog entry. Path is the stable identifier used to fetch
// and cache the audio; Name is for display and need not be unique.
type Sound struct {
	Type Kind   `json:"type"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// New returns a playable sound whose name is its path.
func New(p string) Sound {
	return Sound{Type: KindSound, Name: p, Path: p}
}

// Validate reports whether s is well formed. Folders are valid entries
// but are never playable.
func (s Sound) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return ErrMissingPath
	}

	switch s.Type {
	case KindSound, KindFolder:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
	}
}

// Playable is true for valid entries of KindSound.
func (s Sound) Playable() bool {
	return s.Validate() == nil && s.Type == KindSound
}

// Category is the top-level directory the sound lives in, or "" for
// sounds at the root.
func (s Sound) Category() string {
	parts := strings.Split(strings.TrimPrefix(s.label(), "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// DisplayName is the file name without directory or extension.
func (s Sound) DisplayName() string {
	base := path.Base(s.label())
	return strings.TrimSuffix(base, path.Ext(base))
}

func (s Sound) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Path
}
