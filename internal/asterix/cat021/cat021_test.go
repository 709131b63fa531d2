package cat021

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/bitio"
)

// TestDecodeRecord_TargetIdentification reconstructs the decoder's literal
// six-bit alphabet scenario: codes 1..8 decode to "ABCDEFGH".
func TestDecodeRecord_TargetIdentification(t *testing.T) {
	// FSPEC: FRN7 only (bit1 of octet1 = 0x02), FX=0.
	payload := []byte{0x02}
	// Six-bit codes 1..8 packed MSB-first into 48 bits (6 bytes):
	// 000001 000010 000011 000100 000101 000110 000111 001000
	payload = append(payload, 0x04, 0x20, 0xC4, 0x14, 0x61, 0xC8)

	d := New()
	c := bitio.New(payload)
	rec, err := d.DecodeRecord(c, 0)
	require.NoError(t, err)

	require.NotNil(t, rec.Callsign)
	assert.Equal(t, "ABCDEFGH", *rec.Callsign)
	assert.Equal(t, 0, c.Remaining())
}

// TestDecodeRecord_FSPECOverflowUnterminated reconstructs the decoder's FSPEC
// chain bound scenario for CAT021: five FX-chained octets exceed the
// category's two-octet (14 FRN) bound, so ParseFspec must reject the chain
// as unterminated rather than reading a fifth octet.
func TestDecodeRecord_FSPECOverflowUnterminated(t *testing.T) {
	payload := []byte{0x81, 0x81, 0x81, 0x81, 0x80}
	d := New()
	c := bitio.New(payload)
	_, err := d.DecodeRecord(c, 0)
	assert.Error(t, err)
}

func TestDecodeRecord_DataSourceAndTargetReportDescriptor(t *testing.T) {
	payload := []byte{
		0xC0,       // FSPEC: FRN1 (data source), FRN2 (target report descriptor), FX=0
		0x0A, 0x0B, // SAC/SIC
		0x20, // target report descriptor octet1: ATP=1,ARC=0,RC=0,RAB=0,FX=0
	}
	d := New()
	c := bitio.New(payload)
	rec, err := d.DecodeRecord(c, 0)
	require.NoError(t, err)

	require.NotNil(t, rec.SAC)
	require.NotNil(t, rec.SIC)
	assert.Equal(t, uint8(0x0A), *rec.SAC)
	assert.Equal(t, uint8(0x0B), *rec.SIC)

	require.NotNil(t, rec.AltitudeSource)
	assert.Equal(t, 1, *rec.AltitudeSource)
	assert.Equal(t, 0, c.Remaining())
}

func TestDecodeRecord_PositionWGS84(t *testing.T) {
	payload := []byte{0x10} // FSPEC: FRN4 (bit4 = 0x10), FX=0
	// lat raw = 0x100000 (positive), lon raw = 0xF00000 (negative, two's complement 24-bit)
	payload = append(payload, 0x10, 0x00, 0x00, 0xF0, 0x00, 0x00)

	d := New()
	c := bitio.New(payload)
	rec, err := d.DecodeRecord(c, 0)
	require.NoError(t, err)

	require.NotNil(t, rec.Lat)
	require.NotNil(t, rec.Lon)
	const lsb = 180.0 / 8388608.0
	assert.InDelta(t, float64(0x100000)*lsb, *rec.Lat, 1e-9)
	assert.InDelta(t, float64(int32(-0x100000))*lsb, *rec.Lon, 1e-9)
}

// TestDecodeRecord_PositionOutOfRangeLatitude exercises the full 24-bit
// signed domain: a raw value of 0x700000 scales to 157.5 degrees, well past
// the +/-90 degree latitude bound, and must be rejected rather than passed
// through.
func TestDecodeRecord_PositionOutOfRangeLatitude(t *testing.T) {
	payload := []byte{0x10} // FSPEC: FRN4 (bit4 = 0x10), FX=0
	payload = append(payload, 0x70, 0x00, 0x00, 0x00, 0x00, 0x00)

	d := New()
	c := bitio.New(payload)
	_, err := d.DecodeRecord(c, 0)
	require.Error(t, err)

	var diag asterix.Diagnostic
	require.True(t, errors.As(err, &diag))
	assert.Equal(t, asterix.ErrItemOutOfRange, diag.Kind)
}

func TestDecodeRecord_GeometricHeightAndMode3A(t *testing.T) {
	// FSPEC octet1: FX=1 only (FRN1-7 absent).
	// FSPEC octet2: FRN9 (mode3a, bit6=0x40) and FRN10 (geometric height,
	// bit5=0x20) present, FX=0.
	payload := []byte{0x01, 0x60}
	payload = append(payload, 0x00, 0x00) // mode3a all-zero
	payload = append(payload, 0x00, 0x10) // geometric height raw = 16 -> 100.0 ft

	d := New()
	c := bitio.New(payload)
	rec, err := d.DecodeRecord(c, 0)
	require.NoError(t, err)

	require.NotNil(t, rec.Mode3A)
	assert.Equal(t, "0000", rec.Mode3A.Code)
	require.NotNil(t, rec.GeometricHeightFt)
	assert.InDelta(t, 100.0, *rec.GeometricHeightFt, 1e-9)
	assert.Equal(t, 0, c.Remaining())
}
