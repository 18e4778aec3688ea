package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle refers to a node that has been removed.
	ErrStaleHandle = errors.New("ui: stale node handle")

	// ErrRootRemoval is returned when removing the root node is attempted.
	ErrRootRemoval = errors.New("ui: the root node cannot be removed")

	// ErrUnknownWidget is returned by the unpacker for an unregistered widget kind.
	ErrUnknownWidget = errors.New("ui: unknown widget kind")
)

func staleHandle(h Handle) error {
	return fmt.Errorf("%w: %v", ErrStaleHandle, h)
}

// MalformedStyleError describes a style field whose value has the wrong shape
// for the widget consuming it. The widget falls back to its default; the error
// is only a diagnostic.
type MalformedStyleError struct {
	Key  string
	Want string
	Got  ValueKind
}

func (e *MalformedStyleError) Error() string {
	return fmt.Sprintf("ui: style field %q: want %s, got %s", e.Key, e.Want, e.Got)
}
