package gameloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStepper struct {
	updates []float64
	renders []float64
}

func (s *countingStepper) Update(dt float64)    { s.updates = append(s.updates, dt) }
func (s *countingStepper) Render(alpha float64) { s.renders = append(s.renders, alpha) }

func newTestLoop(t *testing.T, step time.Duration, maxSteps int) (*Loop, *countingStepper, *ManualClock) {
	t.Helper()
	stepper := &countingStepper{}
	clock := NewManualClock(time.Unix(0, 0))
	loop, err := New(Settings{Step: step, MaxStepsPerFrame: maxSteps}, clock, stepper, nil)
	require.NoError(t, err)
	return loop, stepper, clock
}

func TestAdvanceRunsFloorOfElapsedOverStep(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		steps   int
		lag     time.Duration
	}{
		{0, 0, 0},
		{15 * time.Millisecond, 0, 15 * time.Millisecond},
		{16 * time.Millisecond, 1, 0},
		{100 * time.Millisecond, 6, 4 * time.Millisecond},
		{161 * time.Millisecond, 10, time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			loop, stepper, _ := newTestLoop(t, 16*time.Millisecond, 240)
			res := loop.Advance(tt.elapsed)

			assert.Equal(t, tt.steps, res.Steps)
			assert.Len(t, stepper.updates, tt.steps)
			assert.Equal(t, tt.lag, loop.Lag())
			assert.InDelta(t, float64(tt.lag)/float64(16*time.Millisecond), res.Alpha, 1e-9)
			assert.Len(t, stepper.renders, 1, "render runs once per frame")
		})
	}
}

func TestLagCarriesAcrossFrames(t *testing.T) {
	loop, stepper, _ := newTestLoop(t, 10*time.Millisecond, 240)

	loop.Advance(7 * time.Millisecond)
	loop.Advance(7 * time.Millisecond)
	loop.Advance(7 * time.Millisecond)

	assert.Len(t, stepper.updates, 2)
	assert.Equal(t, time.Millisecond, loop.Lag())
	assert.Equal(t, uint64(2), loop.TotalSteps())
	for _, dt := range stepper.updates {
		assert.InDelta(t, 0.01, dt, 1e-12)
	}
}

func TestStepCapDiscardsExcessLag(t *testing.T) {
	loop, stepper, _ := newTestLoop(t, 10*time.Millisecond, 5)

	res := loop.Advance(time.Second)
	assert.Equal(t, 5, res.Steps)
	assert.Len(t, stepper.updates, 5)
	assert.Equal(t, 950*time.Millisecond, res.Dropped)
	assert.Zero(t, loop.Lag())

	res = loop.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, res.Steps, "no catch-up after the cap was hit")
}

func TestFrameMeasuresWallClock(t *testing.T) {
	loop, stepper, clock := newTestLoop(t, 10*time.Millisecond, 240)

	res := loop.Frame()
	assert.Zero(t, res.Steps, "first frame only starts the clock")

	clock.Advance(35 * time.Millisecond)
	res = loop.Frame()
	assert.Equal(t, 3, res.Steps)
	assert.InDelta(t, 0.5, res.Alpha, 1e-9)
	assert.Len(t, stepper.renders, 2)
}

func TestPauseShiftsDeadline(t *testing.T) {
	loop, stepper, clock := newTestLoop(t, 10*time.Millisecond, 240)
	loop.Frame()

	clock.Advance(25 * time.Millisecond)
	loop.Frame()
	require.Len(t, stepper.updates, 2)

	loop.Pause()
	assert.True(t, loop.Paused())
	clock.Advance(10 * time.Second)
	res := loop.Frame()
	assert.Zero(t, res.Steps)
	assert.InDelta(t, 0.5, res.Alpha, 1e-9, "paused frames keep rendering the last state")

	loop.Resume()
	clock.Advance(5 * time.Millisecond)
	res = loop.Frame()
	assert.Equal(t, 1, res.Steps, "only time outside the pause is simulated")
	assert.Len(t, stepper.updates, 3)
}

func TestNewValidatesSettings(t *testing.T) {
	_, err := New(Settings{Step: 0, MaxStepsPerFrame: 1}, nil, &countingStepper{}, nil)
	assert.Error(t, err)
	_, err = New(Settings{Step: time.Millisecond}, nil, &countingStepper{}, nil)
	assert.Error(t, err)
}
