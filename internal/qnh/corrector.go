// Package qnh corrects barometric pressure-altitude reports for
// non-standard local pressure below a transition altitude.
//
// Grounded on original_source/src/utils/qnh_corrector.py, adapted to a
// stateless contract: the Python original persists the last non-standard
// QNH per aircraft (_last_qnh) so it can keep correcting a track between
// updates. The decoder's contract instead requires a pure, deterministic
// corrector applied exactly once per record with an explicit QNH value, so
// that stickiness is dropped here.
package qnh

const (
	// DefaultTransitionAltitudeFt is used when a caller supplies no
	// transition altitude override.
	DefaultTransitionAltitudeFt = 6000.0

	stdPressureHPa = 1013.25

	// ftPerHPa is normative per the decoder's own worked example (3000 ft
	// at QNH 1003.25 hPa corrects to 2727 ft), which supersedes the Python
	// original's FT_PER_HPA = 30.0.
	ftPerHPa = 27.3

	metersPerFoot = 0.3048
)

// Result is a corrected altitude in both feet and meters.
type Result struct {
	AltitudeFt      float64
	AltitudeM       float64
	CorrectionApplied bool
}

// Corrector applies QNH correction below a transition altitude. The zero
// value uses DefaultTransitionAltitudeFt.
type Corrector struct {
	TransitionAltitudeFt float64
}

// New returns a Corrector using transitionFt, or the default if
// transitionFt is zero.
func New(transitionFt float64) Corrector {
	if transitionFt == 0 {
		transitionFt = DefaultTransitionAltitudeFt
	}
	return Corrector{TransitionAltitudeFt: transitionFt}
}

// Correct adjusts pressureAltitudeFt for local QNH when both below the
// transition altitude and a QNH value are supplied. Above the transition,
// or with no QNH, the altitude passes through unchanged.
func (c Corrector) Correct(pressureAltitudeFt float64, qnhHPa *float64) Result {
	transition := c.TransitionAltitudeFt
	if transition == 0 {
		transition = DefaultTransitionAltitudeFt
	}

	if pressureAltitudeFt >= transition || qnhHPa == nil {
		return Result{
			AltitudeFt: pressureAltitudeFt,
			AltitudeM:  pressureAltitudeFt * metersPerFoot,
		}
	}

	corrected := pressureAltitudeFt + (*qnhHPa-stdPressureHPa)*ftPerHPa
	return Result{
		AltitudeFt:        corrected,
		AltitudeM:         corrected * metersPerFoot,
		CorrectionApplied: true,
	}
}
