package asterix

import (
	"errors"
	"fmt"

	"asterixdecode/internal/bitio"
	"asterixdecode/internal/record"
)

// RunFRNTable is the shared record-decode loop every CategoryDecoder uses:
// parse FSPEC, then invoke each set FRN's codec in ascending order against
// the shared cursor, accumulating fields onto a PartialRecord.
//
// Grounded on spec.md §4.6's DecodePipeline description ("iterate the set
// FRNs in ascending order, invoking the corresponding codec against the
// shared BitCursor") factored out so cat021 and cat048 share one
// implementation instead of duplicating the loop.
func RunFRNTable(c *bitio.Cursor, category int, maxFRN int, table map[int]Codec, blockOffset int) (record.PartialRecord, error) {
	out := record.PartialRecord{Category: category}

	frns, _, err := ParseFspec(c, maxFRN)
	if err != nil {
		return out, err
	}

	for _, frn := range frns {
		codec, ok := table[frn]
		if !ok {
			return out, fmt.Errorf("%w", newDiagnostic(ErrUnknownFRN, blockOffset+c.BitPos()/8, intPtr(category), intPtr(frn),
				fmt.Sprintf("FRN %d has no registered codec", frn)))
		}
		if err := codec.Decode(c, &out); err != nil {
			if errors.Is(err, bitio.ErrTruncated) {
				return out, fmt.Errorf("%w", newDiagnostic(ErrTruncated, blockOffset+c.BitPos()/8, intPtr(category), intPtr(frn),
					fmt.Sprintf("item for FRN %d ran past the end of the record", frn)))
			}
			return out, err
		}
	}

	return out, nil
}
