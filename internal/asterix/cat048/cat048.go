// Package cat048 implements the CAT048 (monoradar target report) item
// codec registry.
//
// Grounded item-by-item on original_source/src/decoders/cat048_decoder.py:
// FRN assignments and bit layouts are reproduced faithfully from that
// file's own Item(...) frn= values and _decode_* method bodies.
package cat048

import (
	"fmt"
	"strings"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/asterix/bds"
	"asterixdecode/internal/bitio"
	"asterixdecode/internal/record"
)

// MaxFRN is the CAT048-defined FSPEC chain bound (28 FRNs -> 4 octets).
const MaxFRN = 28

// Decoder implements asterix.CategoryDecoder for category 48.
type Decoder struct {
	table map[int]asterix.Codec
}

// New builds the CAT048 FRN -> codec table once.
func New() *Decoder {
	d := &Decoder{table: make(map[int]asterix.Codec)}
	d.table[1] = asterix.CodecFunc(decodeDataSource)
	d.table[2] = asterix.CodecFunc(decodeTimeOfDay)
	d.table[3] = asterix.CodecFunc(decodeTargetReportDescriptor)
	d.table[4] = asterix.CodecFunc(decodeMeasuredPositionPolar)
	d.table[5] = asterix.CodecFunc(decodeMode3ACode)
	d.table[6] = asterix.CodecFunc(decodeFlightLevel)
	d.table[7] = asterix.CodecFunc(decodeRadarPlotCharacteristics)
	d.table[8] = asterix.CodecFunc(decodeAircraftAddress)
	d.table[9] = asterix.CodecFunc(decodeAircraftIdentification)
	d.table[10] = asterix.CodecFunc(decodeModeSMBData)
	d.table[11] = asterix.CodecFunc(decodeTrackNumber)
	d.table[12] = asterix.CodecFunc(skipFixed(4))  // I048/042 Calculated Position Cartesian
	d.table[13] = asterix.CodecFunc(decodeTrackVelocityPolar)
	d.table[14] = asterix.CodecFunc(decodeTrackStatus)
	d.table[15] = asterix.CodecFunc(skipFixed(4)) // I048/210 Track Quality
	d.table[16] = asterix.CodecFunc(skipExtended)  // I048/030 Warning/Error Conditions
	d.table[17] = asterix.CodecFunc(skipFixed(2)) // I048/080 Mode-3/A Confidence
	d.table[18] = asterix.CodecFunc(skipFixed(4)) // I048/100 Mode-C Confidence
	d.table[19] = asterix.CodecFunc(skipFixed(2)) // I048/110 Height Measured by 3D Radar
	d.table[20] = asterix.CodecFunc(skipRadialDopplerSpeed)
	d.table[21] = asterix.CodecFunc(decodeCommunicationsACAS)
	return d
}

// Category implements asterix.CategoryDecoder.
func (d *Decoder) Category() int { return 48 }

// MaxFRN implements asterix.CategoryDecoder.
func (d *Decoder) MaxFRN() int { return MaxFRN }

// DecodeRecord implements asterix.CategoryDecoder.
func (d *Decoder) DecodeRecord(c *bitio.Cursor, blockOffset int) (record.PartialRecord, error) {
	return asterix.RunFRNTable(c, 48, MaxFRN, d.table, blockOffset)
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

func decodeTimeOfDay(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Uint(24)
	if err != nil {
		return err
	}
	seconds := float64(raw) / 128.0
	out.TimeOfDaySec = &seconds
	return nil
}

func decodeTargetReportDescriptor(c *bitio.Cursor, out *record.PartialRecord) error {
	first, err := c.AlignedByte()
	if err != nil {
		return err
	}

	typ := int((first >> 5) & 0x07)
	sim := (first>>4)&0x01 != 0
	rdp := int((first >> 3) & 0x01)
	spi := (first>>2)&0x01 != 0
	rab := (first>>1)&0x01 != 0

	out.DetectionType = &typ
	out.Simulated = &sim
	out.RDPChain = &rdp
	out.SPI = &spi
	out.ReportFromFM = &rab

	fx := first&0x01 != 0
	for fx {
		next, err := c.AlignedByte()
		if err != nil {
			return err
		}
		fx = next&0x01 != 0
	}
	return nil
}

func decodeMeasuredPositionPolar(c *bitio.Cursor, out *record.PartialRecord) error {
	rho, err := c.Uint(16)
	if err != nil {
		return err
	}
	theta, err := c.Uint(16)
	if err != nil {
		return err
	}

	rhoNM := float64(rho) / 256.0
	thetaDeg := float64(theta) * 360.0 / 65536.0

	out.RhoNM = &rhoNM
	out.ThetaDeg = &thetaDeg
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

func decodeFlightLevel(c *bitio.Cursor, out *record.PartialRecord) error {
	if _, err := c.Uint(2); err != nil { // V, G flags, unused downstream
		return err
	}
	raw, err := c.Int(14)
	if err != nil {
		return err
	}
	fl := float64(raw) / 4.0
	out.FlightLevel = &fl
	return nil
}

func decodeRadarPlotCharacteristics(c *bitio.Cursor, out *record.PartialRecord) error {
	primary, err := c.AlignedByte()
	if err != nil {
		return err
	}
	// Subfields are read-and-discard: not part of the Unified Record
	// schema, but their bytes must still be consumed to keep the cursor
	// aligned for subsequent FRNs.
	for bit := 7; bit >= 1; bit-- {
		if primary&(1<<uint(bit)) != 0 {
			if _, err := c.AlignedByte(); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeAircraftAddress(c *bitio.Cursor, out *record.PartialRecord) error {
	raw, err := c.Uint(24)
	if err != nil {
		return err
	}
	hex := fmt.Sprintf("%06X", raw)
	out.TargetAddress = &hex
	return nil
}

func decodeAircraftIdentification(c *bitio.Cursor, out *record.PartialRecord) error {
	callsign, err := decodeSixCharCallsign(c)
	if err != nil {
		return err
	}
	callsign = strings.TrimRight(callsign, " ")
	out.Callsign = &callsign
	return nil
}

func decodeSixCharCallsign(c *bitio.Cursor) (string, error) {
	chars := make([]uint64, 8)
	for i := range chars {
		v, err := c.Uint(6)
		if err != nil {
			return "", err
		}
		chars[i] = v
	}
	return asterix.DecodeSixBitChars(chars), nil
}

func decodeModeSMBData(c *bitio.Cursor, out *record.PartialRecord) error {
	rep, err := c.AlignedByte()
	if err != nil {
		return err
	}

	for i := 0; i < int(rep); i++ {
		var data [7]byte
		for j := range data {
			b, err := c.AlignedByte()
			if err != nil {
				return err
			}
			data[j] = b
		}
		code, err := c.AlignedByte()
		if err != nil {
			return err
		}
		bds1 := int((code >> 4) & 0x0F)
		bds2 := int(code & 0x0F)
		codeStr := fmt.Sprintf("%d%d", bds1, bds2)
		out.ModeSCodes = append(out.ModeSCodes, codeStr)

		switch {
		case bds1 == 4 && bds2 == 0:
			out.BDS40 = bds.Decode40(data)
		case bds1 == 5 && bds2 == 0:
			out.BDS50 = bds.Decode50(data)
		case bds1 == 6 && bds2 == 0:
			out.BDS60 = bds.Decode60(data)
		}
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

func decodeTrackVelocityPolar(c *bitio.Cursor, out *record.PartialRecord) error {
	speedRaw, err := c.Uint(16)
	if err != nil {
		return err
	}
	headingRaw, err := c.Uint(16)
	if err != nil {
		return err
	}

	groundSpeedKt := float64(speedRaw) * pow2Neg14 * 3600.0
	headingDeg := float64(headingRaw) * 360.0 / 65536.0

	out.CalcGroundSpeedKt = &groundSpeedKt
	out.CalcHeadingDeg = &headingDeg
	return nil
}

const pow2Neg14 = 1.0 / 16384.0

func decodeTrackStatus(c *bitio.Cursor, out *record.PartialRecord) error {
	first, err := c.AlignedByte()
	if err != nil {
		return err
	}
	cnf := (first>>7)&0x01 != 0
	rad := int((first >> 5) & 0x03)
	cdm := int((first >> 1) & 0x03)

	confirmed := !cnf // spec: CNF 0 = confirmed
	out.TrackConfirmed = &confirmed
	out.TrackRadarSource = &rad
	out.ClimbDescend = &cdm

	fx := first&0x01 != 0
	for fx {
		next, err := c.AlignedByte()
		if err != nil {
			return err
		}
		fx = next&0x01 != 0
	}
	return nil
}

var statDescriptions = map[int]string{
	0: "no alert, no SPI, aircraft airborne",
	1: "no alert, no SPI, aircraft on ground",
	2: "alert, no SPI, aircraft airborne",
	3: "alert, no SPI, aircraft on ground",
	4: "alert, SPI, aircraft airborne or on ground",
	5: "no alert, SPI, aircraft airborne or on ground",
	7: "unknown",
}

func decodeCommunicationsACAS(c *bitio.Cursor, out *record.PartialRecord) error {
	first, err := c.AlignedByte()
	if err != nil {
		return err
	}
	if _, err := c.AlignedByte(); err != nil { // second octet: MSSC/ARC/AIC/B1A/B1B, not in Unified Record schema
		return err
	}
	stat := int((first >> 2) & 0x07)
	description, ok := statDescriptions[stat]
	if !ok {
		description = "not assigned"
	}
	out.FlightStatus = &description
	return nil
}

func skipFixed(n int) func(c *bitio.Cursor, out *record.PartialRecord) error {
	return func(c *bitio.Cursor, out *record.PartialRecord) error {
		_, err := c.Bytes(n)
		return err
	}
}

func skipExtended(c *bitio.Cursor, out *record.PartialRecord) error {
	for {
		b, err := c.AlignedByte()
		if err != nil {
			return err
		}
		if b&0x01 == 0 {
			return nil
		}
	}
}

func skipRadialDopplerSpeed(c *bitio.Cursor, out *record.PartialRecord) error {
	primary, err := c.AlignedByte()
	if err != nil {
		return err
	}
	if primary&0x80 != 0 { // CAL subfield, 1 octet
		if _, err := c.AlignedByte(); err != nil {
			return err
		}
	}
	if primary&0x40 != 0 { // RDS subfield, 2 octets
		if _, err := c.Bytes(2); err != nil {
			return err
		}
	}
	return nil
}
