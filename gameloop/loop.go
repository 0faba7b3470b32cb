package gameloop

import (
	"time"

	"github.com/rotisserie/eris"

	"ebiten-platformer/logging"
)

// Stepper is advanced by the loop. *ecs.World implements it.
type Stepper interface {
	// Update runs one fixed simulation step of dt seconds
	Update(dt float64)
	// Render draws one displayed frame interpolated by alpha in [0, 1)
	Render(alpha float64)
}

// Settings configure the accumulator
type Settings struct {
	Step             time.Duration // fixed simulation step
	MaxStepsPerFrame int           // catch-up cap, excess lag is discarded
}

// FrameResult describes what one frame did
type FrameResult struct {
	Steps   int
	Alpha   float64
	Dropped time.Duration // lag discarded because the step cap was hit
}

// Loop is a fixed-timestep accumulator with a variable render rate
type Loop struct {
	settings Settings
	clock    Clock
	target   Stepper
	logger   logging.Logger

	lag      time.Duration
	last     time.Time
	started  bool
	paused   bool
	pausedAt time.Time
	alpha    float64

	totalSteps uint64
}

// New creates a loop driving target
func New(settings Settings, clock Clock, target Stepper, logger logging.Logger) (*Loop, error) {
	if settings.Step <= 0 {
		return nil, eris.Errorf("step must be positive, got %s", settings.Step)
	}
	if settings.MaxStepsPerFrame < 1 {
		return nil, eris.Errorf("max steps per frame must be at least 1, got %d", settings.MaxStepsPerFrame)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Loop{settings: settings, clock: clock, target: target, logger: logger}, nil
}

// Frame is the per-display-frame callback: it measures elapsed wall time,
// runs the due simulation steps and renders once
func (l *Loop) Frame() FrameResult {
	now := l.clock.Now()
	if l.paused {
		l.target.Render(l.alpha)
		return FrameResult{Alpha: l.alpha}
	}
	if !l.started {
		l.started = true
		l.last = now
		l.target.Render(0)
		return FrameResult{}
	}

	elapsed := now.Sub(l.last)
	l.last = now
	return l.Advance(elapsed)
}

// Advance adds elapsed time to the lag, drains it in fixed steps and renders once
func (l *Loop) Advance(elapsed time.Duration) FrameResult {
	if elapsed > 0 {
		l.lag += elapsed
	}

	var result FrameResult
	dt := l.settings.Step.Seconds()
	for l.lag >= l.settings.Step {
		if result.Steps >= l.settings.MaxStepsPerFrame {
			result.Dropped = l.lag
			l.lag = 0
			l.logger.Warn("simulation fell behind, dropping lag",
				"dropped", result.Dropped, "steps", result.Steps)
			break
		}
		l.target.Update(dt)
		l.lag -= l.settings.Step
		result.Steps++
	}
	l.totalSteps += uint64(result.Steps)

	l.alpha = float64(l.lag) / float64(l.settings.Step)
	result.Alpha = l.alpha
	l.target.Render(l.alpha)
	return result
}

// Pause stops the accumulator from advancing
func (l *Loop) Pause() {
	if l.paused {
		return
	}
	l.paused = true
	l.pausedAt = l.clock.Now()
}

// Resume restarts the accumulator. The last frame time is shifted forward by the
// paused duration, so no catch-up burst follows.
func (l *Loop) Resume() {
	if !l.paused {
		return
	}
	l.paused = false
	if l.started {
		pausedFor := l.clock.Now().Sub(l.pausedAt)
		l.last = l.last.Add(pausedFor)
		l.logger.Debug("loop resumed", "paused_for", pausedFor)
	}
}

// Paused reports whether the loop is paused
func (l *Loop) Paused() bool {
	return l.paused
}

// Lag returns the time carried to the next frame
func (l *Loop) Lag() time.Duration {
	return l.lag
}

// TotalSteps returns the number of simulation steps run so far
func (l *Loop) TotalSteps() uint64 {
	return l.totalSteps
}

// Settings returns the loop settings
func (l *Loop) Settings() Settings {
	return l.settings
}
