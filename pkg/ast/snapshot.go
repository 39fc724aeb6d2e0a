package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const snapshotMagic = "LLAST"

// ErrLayoutMismatch is returned when a snapshot was written with a different LayoutVersion.
var ErrLayoutMismatch = errors.New("ast: snapshot layout version mismatch")

type snapshotHeader struct {
	Magic  string `msgpack:"magic"`
	Layout uint16 `msgpack:"layout"`
}

// WriteSnapshot encodes c to w, prefixed with the layout version.
func WriteSnapshot(w io.Writer, c *Crate) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(snapshotHeader{Magic: snapshotMagic, Layout: LayoutVersion}); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if err := enc.Encode(&c.d); err != nil {
		return fmt.Errorf("failed to write crate: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a crate written by WriteSnapshot. A snapshot with a
// different layout version is rejected, never converted.
func ReadSnapshot(r io.Reader) (*Crate, error) {
	dec := msgpack.NewDecoder(r)

	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if h.Magic != snapshotMagic {
		return nil, fmt.Errorf("not a crate snapshot (magic %q)", h.Magic)
	}
	if h.Layout != LayoutVersion {
		return nil, fmt.Errorf("%w: snapshot has %d, host has %d", ErrLayoutMismatch, h.Layout, LayoutVersion)
	}

	c := &Crate{}
	if err := dec.Decode(&c.d); err != nil {
		return nil, fmt.Errorf("failed to read crate: %w", err)
	}
	return c, nil
}
