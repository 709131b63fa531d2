package asterix

import (
	"fmt"

	"asterixdecode/internal/bitio"
)

// ParseFspec walks the FSPEC bitmap at the current cursor position,
// returning the ascending list of set FRNs and the number of octets
// consumed. maxFRN bounds the chain length: more than ceil(maxFRN/7)
// octets is FSPEC_UNTERMINATED.
//
// Grounded on cat048_decoder.py's _parse_fspec: the high 7 bits of each
// octet are presence flags (FRN increasing across octets), the low bit is
// FX (1 = another octet follows).
func ParseFspec(c *bitio.Cursor, maxFRN int) ([]int, int, error) {
	maxOctets := (maxFRN + 6) / 7

	var frns []int
	frn := 1
	octets := 0

	for {
		if octets >= maxOctets {
			return nil, octets, fmt.Errorf("%w", newDiagnostic(ErrFspecUnterminated, c.BitPos()/8, nil, nil,
				fmt.Sprintf("FSPEC chain exceeds %d octets for max FRN %d", maxOctets, maxFRN)))
		}

		octet, err := c.AlignedByte()
		if err != nil {
			return nil, octets, fmt.Errorf("%w", newDiagnostic(ErrTruncated, c.BitPos()/8, nil, nil, "truncated FSPEC octet"))
		}
		octets++

		if octet == 0x00 && octets == 1 {
			return nil, octets, fmt.Errorf("%w", newDiagnostic(ErrFspecEmpty, c.BitPos()/8, nil, nil, "first FSPEC octet is zero with FX=0"))
		}

		for bit := 7; bit >= 1; bit-- {
			if octet&(1<<uint(bit)) != 0 {
				frns = append(frns, frn)
			}
			frn++
		}

		if octet&0x01 == 0 {
			break
		}
	}

	return frns, octets, nil
}
