package asterix

import (
	"asterixdecode/internal/bitio"
	"asterixdecode/internal/record"
)

// Codec decodes a single Data Item's encoding starting at the cursor's
// current position, writing whatever fields it produces onto out. It never
// advances past its own item's bytes.
//
// Every codec registered by cat021/cat048 is a plain function wrapped in
// CodecFunc that reads its own item's layout; there is no fixed / extended /
// repetitive / compound descriptor type behind them, and the registries
// record no per-item output field bindings.
type Codec interface {
	Decode(c *bitio.Cursor, out *record.PartialRecord) error
}

// CodecFunc adapts a plain function to the Codec interface.
type CodecFunc func(c *bitio.Cursor, out *record.PartialRecord) error

func (f CodecFunc) Decode(c *bitio.Cursor, out *record.PartialRecord) error {
	return f(c, out)
}

// CategoryDecoder decodes one record's worth of FSPEC-selected items for a
// single ASTERIX category. Implementations live in internal/asterix/cat021
// and internal/asterix/cat048; the composition root (internal/app) wires
// them into a Pipeline by category number so this base package never
// imports either subpackage.
type CategoryDecoder interface {
	// Category returns the ASTERIX category number this decoder handles.
	Category() int
	// MaxFRN is the category-defined FSPEC chain bound (14 for CAT021, 28
	// for CAT048).
	MaxFRN() int
	// DecodeRecord decodes one record starting at the cursor's current
	// position (positioned at the start of the record's FSPEC), returning
	// the accumulated partial record.
	DecodeRecord(c *bitio.Cursor, blockOffset int) (record.PartialRecord, error)
}
