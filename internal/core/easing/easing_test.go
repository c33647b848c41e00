package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEndpoints(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
	}{
		{name: "ease in out", curve: EaseInOut()},
		{name: "linear", curve: Linear()},
		{name: "ease in", curve: EaseIn()},
		{name: "ease out", curve: EaseOut()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 0.0, tt.curve.Evaluate(0), 1e-12)
			assert.InDelta(t, 1.0, tt.curve.Evaluate(1), 1e-12)
		})
	}
}

func TestEaseInOutShape(t *testing.T) {
	curve := EaseInOut()

	assert.InDelta(t, 0.5, curve.Evaluate(0.5), 1e-12)
	assert.InDelta(t, 0.15625, curve.Evaluate(0.25), 1e-12)
	assert.InDelta(t, 0.84375, curve.Evaluate(0.75), 1e-12)

	// Zero tangents: tiny steps near the ends move far less than linearly.
	assert.Less(t, curve.Evaluate(0.01), 0.01)
	assert.Greater(t, curve.Evaluate(0.99), 0.99)
}

func TestEaseInOutClampsInput(t *testing.T) {
	curve := EaseInOut()
	assert.Equal(t, 0.0, curve.Evaluate(-1))
	assert.Equal(t, 1.0, curve.Evaluate(2))
}

func TestByName(t *testing.T) {
	curve, err := ByName("")
	require.NoError(t, err)
	assert.InDelta(t, 0.15625, curve.Evaluate(0.25), 1e-12)

	curve, err = ByName(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, 0.3, curve.Evaluate(0.3))

	_, err = ByName("bounce")
	require.ErrorIs(t, err, ErrUnknownCurve)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{NameEaseIn, NameEaseInOut, NameEaseOut, NameLinear}, Names())
}

func TestFuncAdapter(t *testing.T) {
	overshoot := Func(func(u float64) float64 { return u * 1.5 })
	assert.Equal(t, 1.5, overshoot.Evaluate(1))
}
