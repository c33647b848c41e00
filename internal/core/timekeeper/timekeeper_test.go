package timekeeper

import (
	"errors"
	"testing"
	"time"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdle struct {
	idle  time.Duration
	err   error
	calls int
}

func (checker *fakeIdle) IdleDuration() (time.Duration, error) {
	checker.calls++
	return checker.idle, checker.err
}

func newGuide(unscaled bool) *breath.Controller {
	config := model.DefaultBreathConfig()
	config.InhaleCurve = easing.Linear()
	config.ExhaleCurve = easing.Linear()
	config.UseUnscaledTime = unscaled
	return breath.NewController(config, nil, nil)
}

func drain(events <-chan Event) []Event {
	var drained []Event
	for {
		select {
		case event := <-events:
			drained = append(drained, event)
		default:
			return drained
		}
	}
}

func TestStepTicksRunningGuide(t *testing.T) {
	guide := newGuide(true)
	keeper := New(guide, Config{})
	base := time.Unix(1000, 0)

	keeper.StartGuide()
	keeper.Step(base)
	keeper.Step(base.Add(2 * time.Second))

	assert.Equal(t, 2*time.Second, guide.State().Elapsed)
	assert.InDelta(t, 1.025, guide.Output().Scale, 1e-9)
}

func TestStepIgnoresStoppedGuide(t *testing.T) {
	guide := newGuide(true)
	keeper := New(guide, Config{})
	base := time.Unix(1000, 0)

	keeper.Step(base)
	keeper.Step(base.Add(time.Second))

	assert.False(t, keeper.IsGuideRunning())
	assert.Equal(t, time.Duration(0), guide.State().Elapsed)
}

func TestPauseOnlyAffectsScaledGuides(t *testing.T) {
	tests := []struct {
		name     string
		unscaled bool
		want     time.Duration
	}{
		{name: "unscaled keeps breathing", unscaled: true, want: time.Second},
		{name: "scaled freezes", unscaled: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide := newGuide(tt.unscaled)
			keeper := New(guide, Config{})
			base := time.Unix(1000, 0)
			keeper.StartGuide()
			keeper.Pause()
			require.True(t, keeper.IsPaused())

			keeper.Step(base)
			keeper.Step(base.Add(time.Second))

			assert.Equal(t, tt.want, guide.State().Elapsed)
		})
	}
}

func TestTimeScale(t *testing.T) {
	guide := newGuide(false)
	keeper := New(guide, Config{})
	base := time.Unix(1000, 0)
	keeper.StartGuide()
	keeper.SetTimeScale(0.5)

	keeper.Step(base)
	keeper.Step(base.Add(2 * time.Second))
	assert.Equal(t, time.Second, guide.State().Elapsed)

	keeper.Pause()
	keeper.SetTimeScale(2)
	assert.Equal(t, 0.0, keeper.TimeScale())
	keeper.Resume()
	assert.Equal(t, 2.0, keeper.TimeScale())

	keeper.SetTimeScale(-1)
	assert.Equal(t, 0.0, keeper.TimeScale())
}

func TestEventsOnStartAndPhaseChange(t *testing.T) {
	guide := newGuide(true)
	keeper := New(guide, Config{})
	events := keeper.Subscribe(16)
	base := time.Unix(1000, 0)

	keeper.Attach()
	started := drain(events)
	require.Len(t, started, 2)
	assert.Equal(t, EventRunning, started[0].Type)
	assert.True(t, started[0].Running)
	assert.Equal(t, EventPhaseChange, started[1].Type)
	assert.Equal(t, breath.PhaseInhale, started[1].Phase)

	keeper.Step(base)
	keeper.Step(base.Add(4 * time.Second))
	changed := drain(events)
	require.NotEmpty(t, changed)
	last := changed[len(changed)-1]
	assert.Equal(t, EventPhaseChange, last.Type)
	assert.Equal(t, breath.PhaseHoldAfterInhale, last.Phase)

	keeper.Detach()
	stopped := drain(events)
	require.Len(t, stopped, 1)
	assert.Equal(t, EventRunning, stopped[0].Type)
	assert.False(t, stopped[0].Running)

	keeper.Detach()
	assert.Empty(t, drain(events))
}

func TestProgressEventsAreThrottled(t *testing.T) {
	guide := newGuide(true)
	keeper := New(guide, Config{ProgressInterval: time.Second})
	events := keeper.Subscribe(64)
	base := time.Unix(1000, 0)
	keeper.StartGuide()
	drain(events)

	for i := 0; i <= 30; i++ {
		keeper.Step(base.Add(time.Duration(i) * 100 * time.Millisecond))
	}

	progress := 0
	for _, event := range drain(events) {
		if event.Type == EventProgress {
			progress++
		}
	}
	assert.Equal(t, 4, progress)
}

func TestIdleEvents(t *testing.T) {
	guide := newGuide(true)
	checker := &fakeIdle{}
	keeper := New(guide, Config{IdleEnabled: true, IdleAfter: time.Minute, IdleCheckInterval: time.Second})
	keeper.SetIdleChecker(checker)
	events := keeper.Subscribe(8)
	base := time.Unix(1000, 0)

	keeper.Step(base)
	keeper.Step(base.Add(500 * time.Millisecond))
	assert.Equal(t, 1, checker.calls)
	assert.Empty(t, drain(events))

	checker.idle = 2 * time.Minute
	keeper.Step(base.Add(2 * time.Second))
	away := drain(events)
	require.Len(t, away, 1)
	assert.Equal(t, EventIdle, away[0].Type)
	assert.True(t, away[0].Idle)

	checker.idle = 0
	keeper.Step(base.Add(4 * time.Second))
	back := drain(events)
	require.Len(t, back, 1)
	assert.False(t, back[0].Idle)
}

func TestIdleUnsupportedDisablesChecks(t *testing.T) {
	guide := newGuide(true)
	checker := &fakeIdle{err: ErrIdleUnsupported}
	keeper := New(guide, Config{IdleEnabled: true, IdleAfter: time.Minute, IdleCheckInterval: time.Second})
	keeper.SetIdleChecker(checker)
	events := keeper.Subscribe(8)
	base := time.Unix(1000, 0)

	keeper.Step(base)
	keeper.Step(base.Add(10 * time.Second))

	assert.Equal(t, 1, checker.calls)
	failures := drain(events)
	require.Len(t, failures, 1)
	assert.Equal(t, EventIdleError, failures[0].Type)
}

func TestIdleTransientErrorKeepsChecking(t *testing.T) {
	guide := newGuide(true)
	checker := &fakeIdle{err: errors.New("xprintidle: exit status 1")}
	keeper := New(guide, Config{IdleEnabled: true, IdleAfter: time.Minute, IdleCheckInterval: time.Second})
	keeper.SetIdleChecker(checker)
	base := time.Unix(1000, 0)

	keeper.Step(base)
	keeper.Step(base.Add(10 * time.Second))

	assert.Equal(t, 2, checker.calls)
}

func TestUpdateIdle(t *testing.T) {
	guide := newGuide(true)
	checker := &fakeIdle{idle: 2 * time.Minute}
	keeper := New(guide, Config{IdleCheckInterval: time.Hour})
	keeper.SetIdleChecker(checker)
	events := keeper.Subscribe(8)
	base := time.Unix(1000, 0)

	keeper.Step(base)
	assert.Zero(t, checker.calls)

	keeper.UpdateIdle(true, 3*time.Minute)
	keeper.Step(base.Add(time.Second))
	assert.Equal(t, 1, checker.calls)
	assert.Empty(t, drain(events))

	keeper.UpdateIdle(true, time.Minute)
	keeper.Step(base.Add(2 * time.Second))
	away := drain(events)
	require.Len(t, away, 1)
	assert.True(t, away[0].Idle)
}

func TestSetGuideCarriesRunningState(t *testing.T) {
	first := newGuide(true)
	keeper := New(first, Config{})
	keeper.StartGuide()
	base := time.Unix(1000, 0)
	keeper.Step(base)
	keeper.Step(base.Add(time.Second))

	second := newGuide(true)
	keeper.SetGuide(second)

	assert.False(t, first.IsRunning())
	assert.True(t, second.IsRunning())
	assert.Equal(t, time.Duration(0), second.State().Elapsed)
}

func TestStartStopLoop(t *testing.T) {
	guide := newGuide(true)
	keeper := New(guide, Config{TickInterval: time.Millisecond})
	events := keeper.Subscribe(1)

	keeper.Start()
	keeper.Start()
	keeper.Stop()
	keeper.Stop()

	_, open := <-events
	assert.False(t, open)

	keeper.Start()
	keeper.Stop()
}
