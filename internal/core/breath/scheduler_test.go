package breath

import (
	"testing"
	"time"

	"campuszen/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStoppedTickIsNil(t *testing.T) {
	scheduler := NewScheduler(PhasesFromConfig(model.DefaultBreathConfig()), false)
	assert.Nil(t, scheduler.Tick(time.Second))
	assert.False(t, scheduler.Stop())
}

func TestSchedulerTickSamples(t *testing.T) {
	scheduler := NewScheduler(PhasesFromConfig(model.DefaultBreathConfig()), false)
	require.True(t, scheduler.Start())
	require.False(t, scheduler.Start())

	samples := scheduler.Tick(time.Second)
	assert.Equal(t, []Sample{{Event: SampleProgress, Phase: PhaseInhale, Elapsed: time.Second}}, samples)

	samples = scheduler.Tick(3 * time.Second)
	assert.Equal(t, []Sample{
		{Event: SampleComplete, Phase: PhaseInhale, Elapsed: 4 * time.Second},
		{Event: SampleEnter, Phase: PhaseHoldAfterInhale},
	}, samples)

	samples = scheduler.Tick(2 * time.Second)
	assert.Equal(t, []Sample{
		{Event: SampleComplete, Phase: PhaseHoldAfterInhale, Elapsed: 500 * time.Millisecond},
		{Event: SampleEnter, Phase: PhaseExhale},
	}, samples)
	assert.Equal(t, RuntimeState{Running: true, Phase: PhaseExhale}, scheduler.State())
}

func TestSchedulerStopKeepsPosition(t *testing.T) {
	scheduler := NewScheduler(PhasesFromConfig(model.DefaultBreathConfig()), false)
	scheduler.Start()
	scheduler.Tick(1200 * time.Millisecond)

	require.True(t, scheduler.Stop())

	assert.Equal(t, RuntimeState{Phase: PhaseInhale, Elapsed: 1200 * time.Millisecond}, scheduler.State())
}

func TestPhaseKindNext(t *testing.T) {
	for i, kind := range Cycle {
		assert.Equal(t, Cycle[(i+1)%len(Cycle)], kind.Next())
	}
	assert.True(t, PhaseHoldAfterInhale.IsHold())
	assert.False(t, PhaseExhale.IsHold())
}

func TestPhasesFromConfig(t *testing.T) {
	config := model.DefaultBreathConfig()
	config.InhaleCurve = nil

	phases := PhasesFromConfig(config)

	assert.Equal(t, 0.8, phases.Inhale.ScaleFrom)
	assert.Equal(t, 1.25, phases.Inhale.ScaleTo)
	assert.Equal(t, 1.25, phases.Exhale.ScaleFrom)
	assert.Equal(t, 0.8, phases.Exhale.ScaleTo)
	assert.Equal(t, 0.35, phases.Exhale.AlphaFrom)
	assert.Equal(t, 1.0, phases.Exhale.AlphaTo)
	assert.NotNil(t, phases.Inhale.Curve)
	assert.Equal(t, "breathe out", phases.Exhale.Label)
	assert.Equal(t, 500*time.Millisecond, phases.Spec(PhaseHoldAfterExhale).Duration)
}
