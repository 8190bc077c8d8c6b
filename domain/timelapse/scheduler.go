package timelapse

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fennrik/lapsecam-go/domain/camera"
)

// maxFrameAge is how old the latest published snapshot may be before a
// capture tick counts it as a read failure for that slot.
const maxFrameAge = time.Second

// Scheduler is the capture state machine. It is driven by Tick(now) calls
// from the UI update loop and is mutated on that thread only, so it needs
// no synchronization (same policy as the UI models).
//
// Dropped reads skip the frame but never stretch the schedule: the next due
// time always advances by exactly one interval.
type Scheduler struct {
	logger *slog.Logger
	source camera.FrameSource

	state          State
	cfg            SessionConfig
	store          FrameWriter
	onDone         func(Result)
	listeners      []Listener
	framesPlanned  int
	framesCaptured int
	skippedReads   int
	startedAt      time.Time
	nextDue        time.Time
}

// NewScheduler returns an idle scheduler reading frames from source.
func NewScheduler(logger *slog.Logger, source camera.FrameSource) *Scheduler {
	return &Scheduler{logger: logger, source: source, state: StateIdle}
}

// AddListener registers a state transition listener.
func (s *Scheduler) AddListener(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Arm validates the config and prepares a session writing into store.
// done is invoked exactly once when the session reaches a terminal state.
func (s *Scheduler) Arm(cfg SessionConfig, store FrameWriter, done func(Result)) error {
	if s.state == StateArmed || s.state == StateRunning {
		return fmt.Errorf("%w: session already %s", ErrInvalidConfig, s.state)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: nil frame store", ErrInvalidConfig)
	}
	s.cfg = cfg
	s.store = store
	s.onDone = done
	s.framesPlanned = cfg.FramesPlanned()
	s.framesCaptured = 0
	s.skippedReads = 0
	s.transition(StateArmed)
	return nil
}

// Start begins the run; the first frame is due immediately (t=0).
func (s *Scheduler) Start(now time.Time) error {
	if s.state != StateArmed {
		return fmt.Errorf("%w: start from %s", ErrInvalidConfig, s.state)
	}
	s.startedAt = now
	s.nextDue = now
	s.transition(StateRunning)
	if s.logger != nil {
		s.logger.Info("capture started",
			"interval", s.cfg.Interval,
			"total", s.cfg.Total,
			"frames_planned", s.framesPlanned,
			"dir", s.store.Dir(),
		)
	}
	return nil
}

// Tick advances the session. Call it more often than the capture interval;
// each due slot captures at most one frame.
func (s *Scheduler) Tick(now time.Time) {
	if s.state != StateRunning {
		return
	}
	for !now.Before(s.nextDue) {
		s.captureOne(now)
		s.nextDue = s.nextDue.Add(s.cfg.Interval)
		if s.framesCaptured >= s.framesPlanned {
			s.finish(StateCompleted)
			return
		}
	}
	if now.Sub(s.startedAt) >= s.cfg.Total {
		s.finish(StateCompleted)
	}
}

// Cancel stops a running session. No frame is written after Cancel returns;
// frames already on disk are handed off through the completion callback.
func (s *Scheduler) Cancel() {
	if s.state != StateRunning {
		return
	}
	s.finish(StateCancelled)
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Progress returns frames captured and frames planned for the session.
func (s *Scheduler) Progress() (captured, planned int) {
	return s.framesCaptured, s.framesPlanned
}

// SkippedReads returns how many capture slots were lost to read failures.
func (s *Scheduler) SkippedReads() int { return s.skippedReads }

// Remaining returns the countdown to the scheduled end, clamped at zero.
// Dropped frames do not alter the real-time basis.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	if s.state != StateRunning {
		return 0
	}
	left := s.cfg.Total - now.Sub(s.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

func (s *Scheduler) captureOne(now time.Time) {
	snap := s.source.LatestFrame()
	if !snap.Fresh(now, maxFrameAge) {
		s.skippedReads++
		if s.logger != nil {
			s.logger.Debug("capture slot skipped, no fresh frame", "sequence", snap.Sequence)
		}
		return
	}
	if err := s.store.WriteFrame(snap.Image, now); err != nil {
		s.skippedReads++
		if s.logger != nil {
			s.logger.Error("frame write failed", "error", err, "frame", s.framesCaptured)
		}
		return
	}
	s.framesCaptured++
}

func (s *Scheduler) finish(terminal State) {
	s.transition(terminal)
	if s.logger != nil {
		s.logger.Info("capture finished",
			"state", terminal.String(),
			"frames_captured", s.framesCaptured,
			"skipped_reads", s.skippedReads,
		)
	}
	done := s.onDone
	s.onDone = nil
	if done != nil {
		done(Result{
			Dir:            s.store.Dir(),
			FramesCaptured: s.framesCaptured,
			SkippedReads:   s.skippedReads,
			State:          terminal,
		})
	}
}

func (s *Scheduler) transition(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	if s.logger != nil {
		s.logger.Debug("capture state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}
