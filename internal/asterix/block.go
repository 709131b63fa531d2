package asterix

import "fmt"

// Block is one framed ASTERIX block: category, and the record payload that
// follows CAT+LEN.
type Block struct {
	Category int
	Payload  []byte
	Offset   int // byte offset of this block's CAT octet within the stream
}

// BlockReader frames CAT+LEN+payload blocks out of a byte slice.
//
// Grounded on the general shape of internal/beast/decoder.go's Decoder
// (a cursor position advanced past exactly what was consumed each call),
// generalized to ASTERIX's simpler length-prefixed framing: no sync-byte
// search or escape processing is needed, CAT+LEN gives an exact frame
// boundary up front.
type BlockReader struct {
	data []byte
	pos  int
}

// NewBlockReader returns a BlockReader over data.
func NewBlockReader(data []byte) *BlockReader {
	return &BlockReader{data: data}
}

// Next returns the next block, or ok=false when the stream is exhausted.
// A trailing fragment under 3 bytes is dropped silently: nothing reports it
// to the caller, and DecodeStream logs no warning for it. SHORT_BLOCK and
// BAD_LENGTH are returned as errors for a fragment that looks like the start
// of a block but cannot be framed.
func (r *BlockReader) Next() (Block, bool, error) {
	if r.pos >= len(r.data) {
		return Block{}, false, nil
	}

	remaining := len(r.data) - r.pos
	if remaining < 3 {
		// Truncated trailing bytes are ignored per spec, not an error.
		r.pos = len(r.data)
		return Block{}, false, nil
	}

	offset := r.pos
	cat := int(r.data[r.pos])
	length := int(r.data[r.pos+1])<<8 | int(r.data[r.pos+2])

	if length < 3 {
		return Block{}, false, fmt.Errorf("%w", newDiagnostic(ErrBadLength, offset, intPtr(cat), nil,
			fmt.Sprintf("LEN=%d is less than the minimum 3", length)))
	}

	if r.pos+length > len(r.data) {
		return Block{}, false, fmt.Errorf("%w", newDiagnostic(ErrShortBlock, offset, intPtr(cat), nil,
			fmt.Sprintf("LEN=%d extends %d bytes past the input", length, r.pos+length-len(r.data))))
	}

	payload := r.data[r.pos+3 : r.pos+length]
	r.pos += length

	return Block{Category: cat, Payload: payload, Offset: offset}, true, nil
}
