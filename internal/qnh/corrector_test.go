package qnh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCorrector_ScenarioS6(t *testing.T) {
	c := New(0)

	below := c.Correct(3000, floatPtr(1003.25))
	assert.InDelta(t, 2727.0, below.AltitudeFt, 1e-9)
	assert.True(t, below.CorrectionApplied)

	above := c.Correct(8000, floatPtr(1003.25))
	assert.InDelta(t, 8000.0, above.AltitudeFt, 1e-9)
	assert.False(t, above.CorrectionApplied)
}

func TestCorrector_NoQNHPassesThrough(t *testing.T) {
	c := New(0)
	result := c.Correct(3000, nil)
	assert.InDelta(t, 3000.0, result.AltitudeFt, 1e-9)
	assert.False(t, result.CorrectionApplied)
}

func TestCorrector_StandardQNHLeavesAltitudeUnchanged(t *testing.T) {
	c := New(0)
	result := c.Correct(3000, floatPtr(1013.25))
	assert.InDelta(t, 3000.0, result.AltitudeFt, 1e-9)
	assert.True(t, result.CorrectionApplied)
}

func TestCorrector_Monotonicity(t *testing.T) {
	c := New(0)
	qnh := floatPtr(990.0)

	tests := []struct {
		a, b float64
	}{
		{1000, 2000},
		{0, 5999},
		{3000, 3001},
	}
	for _, tt := range tests {
		ra := c.Correct(tt.a, qnh)
		rb := c.Correct(tt.b, qnh)
		assert.Less(t, ra.AltitudeFt, rb.AltitudeFt)
	}
}

func TestCorrector_CustomTransitionAltitude(t *testing.T) {
	c := New(10000)
	result := c.Correct(8000, floatPtr(990.0))
	assert.True(t, result.CorrectionApplied)

	above := c.Correct(10000, floatPtr(990.0))
	assert.False(t, above.CorrectionApplied)
}

func TestCorrector_MetersConversion(t *testing.T) {
	c := New(0)
	result := c.Correct(8000, floatPtr(1013.25))
	assert.InDelta(t, 8000*0.3048, result.AltitudeM, 1e-9)
}
