package record

import (
	"fmt"
	"strings"

	"asterixdecode/internal/geo"
	"asterixdecode/internal/qnh"
)

// Assemble merges a category-agnostic PartialRecord with its (optional)
// derived geo position and QNH-corrected altitude into the fixed Unified
// Record schema.
//
// Grounded on AsterixExporter._process_cat021/_process_cat048 in
// original_source/src/exporters/asterix_exporter.py: each partial field is
// routed to the same Unified Record column the Python original routes it
// to via its ALL_COLUMNS row dict, but CAT021 and CAT048 share one
// PartialRecord shape here instead of two disjoint per-category branches,
// since the field vocabularies barely overlap and gain nothing from
// separate code paths.
func Assemble(p PartialRecord, geoResult *geo.Result, qnhResult *qnh.Result) UnifiedRecord {
	out := UnifiedRecord{CAT: p.Category}

	out.SAC = p.SAC
	out.SIC = p.SIC

	if p.TimeOfDaySec != nil {
		out.TimeSec = p.TimeOfDaySec
		formatted := formatTimeOfDay(*p.TimeOfDaySec)
		out.Time = &formatted
	}

	if p.Lat != nil {
		out.Lat = p.Lat
	}
	if p.Lon != nil {
		out.Lon = p.Lon
	}
	if p.GeometricHeightFt != nil {
		out.GeometricHeightWGS84 = p.GeometricHeightFt
	}
	if geoResult != nil {
		lat, lon := geoResult.LatDeg, geoResult.LonDeg
		out.Lat = &lat
		out.Lon = &lon
	}

	out.Rho = p.RhoNM
	out.Theta = p.ThetaDeg

	if p.Mode3A != nil {
		out.Mode3A = &p.Mode3A.Code
		v, g, l := p.Mode3A.Validated, p.Mode3A.Garbled, p.Mode3A.Smoothed
		out.Mode3AV = &v
		out.Mode3AG = &g
		out.Mode3AL = &l
	}

	out.FlightLevel = p.FlightLevel
	out.TargetAddress = p.TargetAddress
	out.Callsign = p.Callsign

	if len(p.ModeSCodes) > 0 {
		out.ModeS = strings.Join(p.ModeSCodes, " ")
	}

	if p.BDS40 != nil {
		out.BarometricPressure = p.BDS40.BarometricPressureHPa
	}
	if p.BDS50 != nil {
		out.RollAngle = p.BDS50.RollAngleDeg
		out.TrueTrackAngle = p.BDS50.TrueTrackAngleDeg
		out.GroundSpeedBDS = p.BDS50.GroundSpeedKt
		out.TrackAngleRate = p.BDS50.TrackAngleRateDeg
		out.TrueAirspeed = p.BDS50.TrueAirspeedKt
	}
	if p.BDS60 != nil {
		out.MagneticHeading = p.BDS60.MagneticHeadingDeg
		out.IndicatedAirspeed = p.BDS60.IndicatedAirspeedKt
		out.Mach = p.BDS60.Mach
		out.BarometricAltRate = p.BDS60.BarometricAltRateFtMn
		out.InertialVerticalVelocity = p.BDS60.InertialVVFtMn
	}

	out.TrackNumber = p.TrackNumber
	out.CalculatedGroundSpeed = p.CalcGroundSpeedKt
	out.CalculatedHeading = p.CalcHeadingDeg
	out.FlightStatus = p.FlightStatus

	out.DetectionType = p.DetectionType
	out.Simulated = p.Simulated
	out.RDPChain = p.RDPChain
	out.SPI = p.SPI
	out.ReportFromFieldMonitor = p.ReportFromFM

	out.TrackConfirmed = p.TrackConfirmed
	out.TrackRadarSource = p.TrackRadarSource
	out.ClimbDescend = p.ClimbDescend

	out.AltitudeSource = p.AltitudeSource
	out.AltitudeReportingCapability = p.AltitudeRC
	out.SurveillanceStatus = p.SurvStatus
	out.GroundBit = p.GroundBit

	// qnhResult is built whenever a flight level was present (see assemble
	// in internal/asterix/pipeline.go) and always carries a pass-through
	// altitude even when no correction applied (qnh.Corrector.Correct), so it is
	// authoritative over geoResult's zero-elevation WGS-84 height whenever
	// it exists at all — not just when a correction happened to apply.
	if qnhResult != nil {
		out.HeightFt = &qnhResult.AltitudeFt
		out.HeightM = &qnhResult.AltitudeM
	} else if geoResult != nil {
		h := geoResult.HeightM
		hf := geoResult.HeightFt
		out.HeightM = &h
		out.HeightFt = &hf
	}

	return out
}

// formatTimeOfDay renders a CAT021/CAT048 time-of-day (seconds since
// midnight, 1/128s resolution) as HH:MM:SS.mmm, matching the Python
// original's formatted Time column.
func formatTimeOfDay(seconds float64) string {
	totalMillis := int64(seconds*1000 + 0.5)
	h := totalMillis / 3600000
	totalMillis %= 3600000
	m := totalMillis / 60000
	totalMillis %= 60000
	s := totalMillis / 1000
	ms := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
