// Package record holds the fixed Unified Record schema that every decoded
// ASTERIX record is assembled into, plus the intermediate PartialRecord
// that category codecs accumulate fields on while decoding.
package record

// Mode3A carries the four-octal-digit transponder code together with its
// validity flags. A nil *Mode3A on PartialRecord means the item was absent.
type Mode3A struct {
	Code      string // four octal digits, e.g. "7000"
	Validated bool   // V bit: false means validated, true means not validated
	Garbled   bool   // G bit
	Smoothed  bool   // L bit: derived/smoothed rather than direct
}

// BDS40 is the decoded Selected Vertical Intention register (BDS 4.0).
// Every field is optional: the source status bit gates its presence.
type BDS40 struct {
	MCPFCUAltitudeFt      *float64
	FMSAltitudeFt         *float64
	BarometricPressureHPa *float64
}

// BDS50 is the decoded Track and Turn report (BDS 5.0).
type BDS50 struct {
	RollAngleDeg      *float64
	TrueTrackAngleDeg *float64
	GroundSpeedKt     *float64
	TrackAngleRateDeg *float64
	TrueAirspeedKt    *float64
}

// BDS60 is the decoded Heading and Speed report (BDS 6.0).
type BDS60 struct {
	MagneticHeadingDeg    *float64
	IndicatedAirspeedKt   *float64
	Mach                  *float64
	BarometricAltRateFtMn *float64
	InertialVVFtMn        *float64
}

// PartialRecord accumulates the raw fields a category codec table produces
// while walking a record's FRN list. It is category-agnostic: fields that a
// given category never populates simply stay nil. Assembler reads this
// (plus derived geo/QNH results) into the fixed Unified Record.
type PartialRecord struct {
	Category int

	SAC *uint8
	SIC *uint8

	TimeOfDaySec *float64

	// Target report descriptor flags, shared vocabulary across categories.
	DetectionType  *int // TYP (CAT048 only)
	Simulated      *bool
	RDPChain       *int  // RDP (CAT048 only)
	SPI            *bool
	ReportFromFM   *bool // RAB
	AltitudeSource *int  // ATP (CAT021 only)
	AltitudeRC     *int  // ARC (CAT021 only)
	SurvStatus     *int  // RC (CAT021 only)
	GroundBit      *bool // GBS (CAT021 only)

	TrackNumber *int

	// CAT048 measured polar position.
	RhoNM     *float64
	ThetaDeg  *float64

	// CAT021 absolute position, already in degrees.
	Lat *float64
	Lon *float64

	// CAT021 geometric height (I021/145), feet.
	GeometricHeightFt *float64

	Mode3A      *Mode3A
	FlightLevel *float64 // in FL units (hundreds of feet), signed quarter-FL precision

	TargetAddress *string // 24-bit hex, uppercase, no separators
	Callsign      *string

	// CAT048 track velocity and status.
	CalcGroundSpeedKt *float64
	CalcHeadingDeg    *float64
	TrackConfirmed    *bool // CNF inverted (true = confirmed)
	TrackRadarSource  *int  // RAD
	ClimbDescend      *int  // CDM

	// CAT048 communications/ACAS.
	FlightStatus *string // STAT description

	// CAT048 Mode S MB data (I048/250).
	ModeSCodes []string
	BDS40      *BDS40
	BDS50      *BDS50
	BDS60      *BDS60
}
