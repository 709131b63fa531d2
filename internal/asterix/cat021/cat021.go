// Package cat021 implements the CAT021 (ADS-B target report) item codec
// registry.
//
// The Python original's cat021_decoder.py is an unimplemented stub, so the
// FRN assignments and bit layouts here follow the CAT021 item list in
// SPEC_FULL.md §6.3 instead, using the six-bit alphabet and Mode-3/A octal
// helpers shared with cat048 via the base asterix package.
package cat021

import (
	"fmt"
	"strings"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/bitio"
	"asterixdecode/internal/record"
)

// MaxFRN is the CAT021-defined FSPEC chain bound (14 FRNs -> 2 octets).
const MaxFRN = 14

// Decoder implements asterix.CategoryDecoder for category 21.
type Decoder struct {
	table map[int]asterix.Codec
}

// New builds the CAT021 FRN -> codec table once.
func New() *Decoder {
	d := &Decoder{table: make(map[int]asterix.Codec)}
	d.table[1] = asterix.CodecFunc(decodeDataSource)
	d.table[2] = asterix.CodecFunc(decodeTargetReportDescriptor)
	d.table[3] = asterix.CodecFunc(decodeTrackNumber)
	d.table[4] = asterix.CodecFunc(decodePositionWGS84)
	d.table[5] = asterix.CodecFunc(decodeTimeOfDay)
	d.table[6] = asterix.CodecFunc(decodeTargetAddress)
	d.table[7] = asterix.CodecFunc(decodeTargetIdentification)
	d.table[8] = asterix.CodecFunc(decodeFlightLevel)
	d.table[9] = asterix.CodecFunc(decodeMode3ACode)
	d.table[10] = asterix.CodecFunc(decodeGeometricHeight)
	return d
}

// Category implements asterix.CategoryDecoder.
func (d *Decoder) Category() int { return 21 }

// MaxFRN implements asterix.CategoryDecoder.
func (d *Decoder) MaxFRN() int { return MaxFRN }

// DecodeRecord implements asterix.CategoryDecoder.
func (d *Decoder) DecodeRecord(c *bitio.Cursor, blockOffset int) (record.PartialRecord, error) {
	return asterix.RunFRNTable(c, 21, MaxFRN, d.table, blockOffset)
}

func decodeDataSource(c *bitio.Cursor, out *record.PartialRecord) error {
	sac, err := c.AlignedByte()
	if err != nil {
		return err
	}
	sic, err := c.AlignedByte()
	if err != nil {
		return err
	}
	sacV, sicV := sac, sic
	out.SAC = &sacV
	out.SIC = &sicV
	return nil
}

// decodeTargetReportDescriptor reads I021/040: a first octet of ATP/ARC/RC/RAB
// followed by an FX-chained extension octet of DCR/GBS/SIM/TST/SAA/CL, then
// further extension octets that carry no fields this decoder projects onto
// the Unified Record and are only consumed to keep the cursor aligned.
func decodeTargetReportDescriptor(c *bitio.Cursor, out *record.PartialRecord) error {
	first, err := c.AlignedByte()
	if err != nil {
		return err
	}
	atp := int((first >> 5) & 0x07)
	arc := int((first >> 3) & 0x03)
	rc := int((first >> 2) & 0x01)
	rab := (first>>1)&0x01 != 0

	out.AltitudeSource = &atp
	out.AltitudeRC = &arc
	out.SurvStatus = &rc
	out.ReportFromFM = &rab

	fx := first&0x01 != 0
	first2 := true
	for fx {
		next, err := c.AlignedByte()
		if err != nil {
			return err
		}
		if first2 {
			gbs := (next>>6)&0x01 != 0
			sim := (next>>5)&0x01 != 0
			out.GroundBit = &gbs
			out.Simulated = &sim
			first2 = false
		}
		fx = next&0x01 != 0
	}
	return nil
}

func decodeTrackNumber(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Uint(16)
	if err != nil {
		return err
	}
	tn := int(raw & 0x0FFF)
	out.TrackNumber = &tn
	return nil
}

// decodePositionWGS84 reads I021/130: two 24-bit signed fields, latitude then
// longitude, each scaled by 180/2^23 degrees per LSB. Latitude outside
// [-90,90] is rejected as ITEM_OUT_OF_RANGE; longitude is normalized into
// [-180,180] rather than rejected, per the position's documented invariant.
func decodePositionWGS84(c *bitio.Cursor, out *record.PartialRecord) error {
	latRaw, err := c.Int(24)
	if err != nil {
		return err
	}
	lonRaw, err := c.Int(24)
	if err != nil {
		return err
	}
	const lsb = 180.0 / 8388608.0 // 180 / 2^23
	lat := float64(latRaw) * lsb
	lon := normalizeLongitude(float64(lonRaw) * lsb)

	if lat < -90.0 || lat > 90.0 {
		return fmt.Errorf("%w", asterix.Diagnostic{
			Kind:   asterix.ErrItemOutOfRange,
			Detail: fmt.Sprintf("latitude %.6f out of range [-90,90]", lat),
		})
	}

	out.Lat = &lat
	out.Lon = &lon
	return nil
}

// normalizeLongitude wraps a longitude into [-180,180].
func normalizeLongitude(lon float64) float64 {
	for lon > 180.0 {
		lon -= 360.0
	}
	for lon < -180.0 {
		lon += 360.0
	}
	return lon
}

func decodeTimeOfDay(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Uint(24)
	if err != nil {
		return err
	}
	seconds := float64(raw) / 128.0
	out.TimeOfDaySec = &seconds
	return nil
}

func decodeTargetAddress(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Uint(24)
	if err != nil {
		return err
	}
	hex := fmt.Sprintf("%06X", raw)
	out.TargetAddress = &hex
	return nil
}

func decodeTargetIdentification(c *bitio.Cursor, out *record.PartialRecord) error {
	chars := make([]uint64, 8)
	for i := range chars {
		v, err := c.Uint(6)
		if err != nil {
			return err
		}
		chars[i] = v
	}
	callsign := strings.TrimRight(asterix.DecodeSixBitChars(chars), " ")
	out.Callsign = &callsign
	return nil
}

func decodeFlightLevel(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Int(16)
	if err != nil {
		return err
	}
	fl := float64(raw) / 4.0
	out.FlightLevel = &fl
	return nil
}

func decodeMode3ACode(c *bitio.Cursor, out *record.PartialRecord) error {
	v, err := c.Bit()
	if err != nil {
		return err
	}
	g, err := c.Bit()
	if err != nil {
		return err
	}
	l, err := c.Bit()
	if err != nil {
		return err
	}
	if _, err := c.Uint(1); err != nil { // spare
		return err
	}
	raw, err := c.Uint(12)
	if err != nil {
		return err
	}
	out.Mode3A = &record.Mode3A{
		Code:      asterix.DecodeMode3AOctal(raw),
		Validated: v,
		Garbled:   g,
		Smoothed:  l,
	}
	return nil
}

// decodeGeometricHeight reads I021/145: a signed 16-bit field, LSB 6.25 ft.
func decodeGeometricHeight(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Int(16)
	if err != nil {
		return err
	}
	heightFt := float64(raw) * 6.25
	out.GeometricHeightFt = &heightFt
	return nil
}
