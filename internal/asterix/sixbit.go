package asterix

// DecodeSixBitChar maps a 6-bit ICAO character code to its ASCII rendering.
//
// Grounded on _decode_aircraft_identification in
// original_source/src/decoders/cat048_decoder.py and the same alphabet
// family as internal/adsb/constants.go's ADSBCharset: 1..26 -> 'A'..'Z',
// 32 -> space, 48..57 -> '0'..'9', anything else -> '?' per spec.md's
// explicit mapping (the Python original substitutes a space for invalid
// codes; the decoder's contract calls for '?' instead).
func DecodeSixBitChar(code uint64) byte {
	switch {
	case code >= 1 && code <= 26:
		return byte('A' + code - 1)
	case code == 32:
		return ' '
	case code >= 48 && code <= 57:
		return byte(code)
	default:
		return '?'
	}
}

// DecodeSixBitChars maps each six-bit character code in bits to its ASCII
// rendering, one output byte per code (trailing spaces are not trimmed;
// callers decide whether to trim).
func DecodeSixBitChars(bits []uint64) string {
	out := make([]byte, len(bits))
	for i, c := range bits {
		out[i] = DecodeSixBitChar(c)
	}
	return string(out)
}

// DecodeMode3AOctal splits a 12-bit Mode-3/A raw field into its four octal
// digits (A B C D), using the same shift-mask-sum technique as
// internal/adsb/constants.go's SquawkA4A2A1Mask/Shift family, applied here
// to CAT048's 12-bit field instead of a Mode-S 13-bit identity field.
func DecodeMode3AOctal(raw uint64) string {
	const (
		shiftA, shiftB, shiftC, shiftD = 9, 6, 3, 0
		digitMask                     = 0x07
	)
	a := (raw >> shiftA) & digitMask
	b := (raw >> shiftB) & digitMask
	c := (raw >> shiftC) & digitMask
	d := (raw >> shiftD) & digitMask
	return string([]byte{
		byte('0' + a),
		byte('0' + b),
		byte('0' + c),
		byte('0' + d),
	})
}
