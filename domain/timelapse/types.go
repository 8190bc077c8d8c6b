package timelapse

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrInvalidConfig is returned by Arm when the session parameters are unusable.
var ErrInvalidConfig = errors.New("timelapse: invalid session config")

// State enumerates the capture scheduler lifecycle.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a session.
func (s State) Terminal() bool { return s == StateCompleted || s == StateCancelled }

// SessionConfig describes one capture run.
type SessionConfig struct {
	Interval time.Duration
	Total    time.Duration
	FPS      int
	Stamp    bool // draw a timestamp onto each stored frame
}

// Validate rejects configs the scheduler cannot run.
func (c SessionConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval %v", ErrInvalidConfig, c.Interval)
	}
	if c.Total < c.Interval {
		return fmt.Errorf("%w: total %v shorter than interval %v", ErrInvalidConfig, c.Total, c.Interval)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	return nil
}

// FramesPlanned returns the number of captures for the config: one at t=0,
// then one per interval up to and including t <= total.
func (c SessionConfig) FramesPlanned() int {
	return int(c.Total/c.Interval) + 1
}

// Result is handed to the completion callback when a session ends, whether
// it ran to completion or was cancelled. Zero captured frames is a valid
// result, not an error.
type Result struct {
	Dir            string
	FramesCaptured int
	SkippedReads   int
	State          State
}

// FrameWriter persists captured frames with store-owned sequence numbers.
type FrameWriter interface {
	WriteFrame(img image.Image, ts time.Time) error
	Count() int
	Dir() string
}

// Listener is called on each scheduler state transition.
type Listener func(prev, next State)
