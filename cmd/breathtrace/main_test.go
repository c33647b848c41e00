package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTraceCalmCycle(t *testing.T) {
	rows, err := trace(model.DefaultBreathConfig(), 500*time.Millisecond, 1)
	require.NoError(t, err)

	require.Len(t, rows, 19)

	first := rows[0]
	assert.Equal(t, string(breath.PhaseInhale), first.Phase)
	assert.Equal(t, 0.8, first.Scale)
	assert.Equal(t, 1.0, first.PulseAlpha)
	assert.Equal(t, "breathe in", first.Label)
	assert.Zero(t, first.LabelAlpha)

	peak := rows[8]
	assert.Equal(t, string(breath.PhaseHoldAfterInhale), peak.Phase)
	assert.Equal(t, 1.25, peak.Scale)
	assert.Equal(t, 0.35, peak.PulseAlpha)
	assert.Zero(t, peak.LabelAlpha)

	exhale := rows[9]
	assert.Equal(t, string(breath.PhaseExhale), exhale.Phase)
	assert.Equal(t, "breathe out", exhale.Label)

	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Scale, 0.8)
		assert.LessOrEqual(t, r.Scale, 1.25)
		assert.GreaterOrEqual(t, r.LabelAlpha, 0.0)
		assert.LessOrEqual(t, r.LabelAlpha, 1.0)
	}
}

func TestTraceDefaultsNonPositiveStep(t *testing.T) {
	rows, err := trace(model.DefaultBreathConfig(), 0, 0.5)

	require.NoError(t, err)
	assert.Len(t, rows, 46)
}

func TestTraceRejectsBadCycles(t *testing.T) {
	tests := []struct {
		name   string
		cycles float64
		want   error
	}{
		{name: "nan", cycles: math.NaN(), want: errBadCycles},
		{name: "infinite", cycles: math.Inf(1), want: errBadCycles},
		{name: "negative", cycles: -1, want: errBadCycles},
		{name: "too many steps", cycles: 1e12, want: errTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := trace(model.DefaultBreathConfig(), time.Millisecond, tt.cycles)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, rows)
		})
	}
}

func TestStepDuration(t *testing.T) {
	dt, err := stepDuration(0.25)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, dt)

	for _, seconds := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -0.1, 1e12} {
		_, err := stepDuration(seconds)
		assert.ErrorIs(t, err, errBadStep, "dt %v", seconds)
	}
}

func TestWriteFormats(t *testing.T) {
	rows, err := trace(model.DefaultBreathConfig(), time.Second, 0.25)
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, write(&table, rows, "table"))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	assert.Len(t, lines, len(rows)+1)
	assert.True(t, strings.HasPrefix(lines[0], "t "))

	var encoded bytes.Buffer
	require.NoError(t, write(&encoded, rows, "yaml"))
	var decoded []row
	require.NoError(t, yaml.Unmarshal(encoded.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)

	assert.ErrorIs(t, write(&bytes.Buffer{}, rows, "csv"), errBadFormat)
}
