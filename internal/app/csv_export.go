package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"asterixdecode/internal/record"
)

// csvColumns mirrors AsterixExporter.ALL_COLUMNS in
// original_source/src/exporters/asterix_exporter.py, reordered to the field
// order UnifiedRecord declares them in.
var csvColumns = []string{
	"CAT", "SAC", "SIC", "Time", "Time_sec",
	"LAT", "LON", "H(m)", "H(ft)", "RHO", "THETA",
	"Mode3/A", "Mode3AV", "Mode3AG", "Mode3AL",
	"FL", "TA", "TI", "ModeS",
	"BP", "RA", "TTA", "GS", "TAR", "TAS", "HDG", "IAS", "MACH", "BAR", "IVV",
	"TN", "GS(kt)", "HDG(calc)", "STAT",
	"TYP", "SIM", "RDP", "SPI", "RAB",
	"CNF", "RAD", "CDM",
	"H_WGS84", "ATP", "ARC", "RC", "GBS",
}

// CSVWriter renders UnifiedRecords to CSV grounded on
// other_examples/cyoung-stratux__es_dump_csv.go's csv.NewWriter usage.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter returns a CSVWriter over w and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	return &CSVWriter{w: cw}, nil
}

// Write appends one Unified Record as a CSV row.
func (c *CSVWriter) Write(r record.UnifiedRecord) error {
	row := []string{
		strconv.Itoa(r.CAT),
		u8(r.SAC), u8(r.SIC), str(r.Time), f(r.TimeSec),
		f(r.Lat), f(r.Lon), f(r.HeightM), f(r.HeightFt), f(r.Rho), f(r.Theta),
		str(r.Mode3A), b(r.Mode3AV), b(r.Mode3AG), b(r.Mode3AL),
		f(r.FlightLevel), str(r.TargetAddress), str(r.Callsign), r.ModeS,
		f(r.BarometricPressure), f(r.RollAngle), f(r.TrueTrackAngle), f(r.GroundSpeedBDS),
		f(r.TrackAngleRate), f(r.TrueAirspeed), f(r.MagneticHeading), f(r.IndicatedAirspeed),
		f(r.Mach), f(r.BarometricAltRate), f(r.InertialVerticalVelocity),
		i(r.TrackNumber), f(r.CalculatedGroundSpeed), f(r.CalculatedHeading), str(r.FlightStatus),
		i(r.DetectionType), b(r.Simulated), i(r.RDPChain), b(r.SPI), b(r.ReportFromFieldMonitor),
		b(r.TrackConfirmed), i(r.TrackRadarSource), i(r.ClimbDescend),
		f(r.GeometricHeightWGS84), i(r.AltitudeSource), i(r.AltitudeReportingCapability),
		i(r.SurveillanceStatus), b(r.GroundBit),
	}
	return c.w.Write(row)
}

// Flush flushes buffered output and returns any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func f(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func i(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func u8(v *uint8) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(int(*v))
}

func b(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
