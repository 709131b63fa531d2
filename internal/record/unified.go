package record

// UnifiedRecord is the fixed 47-field output schema every decoded CAT021
// or CAT048 record is assembled into. Every field is optional (a nil
// pointer means "not present in the source record", distinct from a
// present zero value) per the "absence vs. zero" design requirement.
//
// Grounded on AsterixExporter.ALL_COLUMNS in
// original_source/src/exporters/asterix_exporter.py, extended with the
// Mode-3/A validity flags and CNF/RAD/CDM track-status flags that the
// Python original's sibling CSV/analysis helpers read but its shared
// exporter schema had not folded in.
type UnifiedRecord struct {
	CAT int
	SAC *uint8
	SIC *uint8

	Time    *string // HH:MM:SS.mmm
	TimeSec *float64

	Lat       *float64
	Lon       *float64
	HeightM   *float64
	HeightFt  *float64

	Rho   *float64
	Theta *float64

	Mode3A  *string
	Mode3AV *bool
	Mode3AG *bool
	Mode3AL *bool

	FlightLevel   *float64
	TargetAddress *string
	Callsign      *string

	ModeS string // space-joined BDS register codes seen, e.g. "40 50"

	BarometricPressure        *float64
	RollAngle                 *float64
	TrueTrackAngle            *float64
	GroundSpeedBDS            *float64
	TrackAngleRate            *float64
	TrueAirspeed              *float64
	MagneticHeading           *float64
	IndicatedAirspeed         *float64
	Mach                      *float64
	BarometricAltRate         *float64
	InertialVerticalVelocity  *float64

	TrackNumber           *int
	CalculatedGroundSpeed *float64
	CalculatedHeading     *float64

	FlightStatus *string

	DetectionType *int
	Simulated     *bool
	RDPChain      *int
	SPI           *bool

	ReportFromFieldMonitor *bool

	TrackConfirmed   *bool
	TrackRadarSource *int
	ClimbDescend     *int

	GeometricHeightWGS84         *float64
	AltitudeSource               *int
	AltitudeReportingCapability  *int
	SurveillanceStatus           *int
	GroundBit                    *bool
}
