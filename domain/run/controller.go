package run

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fennrik/lapsecam-go/domain/camera"
	"github.com/fennrik/lapsecam-go/domain/encode"
	"github.com/fennrik/lapsecam-go/domain/timelapse"
)

// ErrNotAllowed rejects an intent that conflicts with the current state,
// leaving the state unchanged.
var ErrNotAllowed = errors.New("run: operation not allowed")

// State enumerates the top-level application lifecycle.
type State int

const (
	StateIdle State = iota
	StatePreviewing
	StateCapturing
	StateEncoding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreviewing:
		return "previewing"
	case StateCapturing:
		return "capturing"
	case StateEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Listener is called on each controller state transition.
type Listener func(prev, next State)

// Encoder narrows the encode dispatcher to what the controller needs.
type Encoder interface {
	Start(job encode.Job, done func(encode.Result)) error
	Active() bool
}

// StoreFactory creates the frame store for a new session.
type StoreFactory func(now time.Time, stamp bool) (timelapse.FrameWriter, error)

// Controller is the single authority over the camera handle lifecycle and
// the capture/encode handoff. All methods must be called from the UI update
// loop thread; encode completions arrive on that thread via Tick.
type Controller struct {
	logger   *slog.Logger
	cam      camera.Service
	sched    *timelapse.Scheduler
	enc      Encoder
	newStore StoreFactory

	state        State
	listeners    []Listener
	encodeDone   chan encode.Result
	shuttingDown bool
	lastFPS      int

	// UI notification hooks, invoked on the update loop thread.
	OnSessionEnd func(timelapse.Result)
	OnEncodeEnd  func(encode.Result)
}

// NewController wires the controller over its collaborators.
func NewController(logger *slog.Logger, cam camera.Service, sched *timelapse.Scheduler, enc Encoder, newStore StoreFactory) *Controller {
	return &Controller{
		logger:     logger,
		cam:        cam,
		sched:      sched,
		enc:        enc,
		newStore:   newStore,
		state:      StateIdle,
		encodeDone: make(chan encode.Result, 1),
	}
}

// State returns the current controller state.
func (c *Controller) State() State { return c.state }

// AddListener registers a transition listener.
func (c *Controller) AddListener(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// StartPreview opens the device and enters previewing. No-op when already
// previewing on the same device.
func (c *Controller) StartPreview(d camera.Descriptor) error {
	switch c.state {
	case StateIdle, StatePreviewing:
	default:
		return fmt.Errorf("%w: start preview while %s", ErrNotAllowed, c.state)
	}
	if cur, open := c.cam.Current(); open && cur.ID == d.ID {
		c.transition(StatePreviewing)
		return nil
	}
	if err := c.cam.Open(d); err != nil {
		c.transition(StateIdle)
		return err
	}
	c.transition(StatePreviewing)
	return nil
}

// StopPreview closes the device and returns to idle.
func (c *Controller) StopPreview() error {
	if c.state != StatePreviewing {
		return fmt.Errorf("%w: stop preview while %s", ErrNotAllowed, c.state)
	}
	c.cam.Close()
	c.transition(StateIdle)
	return nil
}

// SwitchDevice closes the current handle and opens the new device. The
// active session owns the handle during capture, so switching then is
// rejected without touching anything.
func (c *Controller) SwitchDevice(d camera.Descriptor) error {
	if c.state == StateCapturing {
		return fmt.Errorf("%w: device switch during capture", ErrNotAllowed)
	}
	if err := c.cam.Open(d); err != nil {
		// Open failed after the old handle was released; fall back to idle.
		if c.state == StatePreviewing {
			c.transition(StateIdle)
		}
		return err
	}
	if c.state == StateIdle {
		c.transition(StatePreviewing)
	}
	return nil
}

// StartCapture arms and starts a session on the open device. Rejected while
// a session or an encode job is active (no encode queue).
func (c *Controller) StartCapture(cfg timelapse.SessionConfig, now time.Time) error {
	switch c.state {
	case StateCapturing:
		return fmt.Errorf("%w: capture already running", ErrNotAllowed)
	case StateEncoding:
		return fmt.Errorf("%w: encode job still active", ErrNotAllowed)
	}
	if _, open := c.cam.Current(); !open {
		return fmt.Errorf("%w: no device open", camera.ErrDeviceUnavailable)
	}
	store, err := c.newStore(now, cfg.Stamp)
	if err != nil {
		return err
	}
	if err := c.sched.Arm(cfg, store, c.onSessionDone); err != nil {
		return err
	}
	if err := c.sched.Start(now); err != nil {
		return err
	}
	c.lastFPS = cfg.FPS
	c.transition(StateCapturing)
	return nil
}

// CancelCapture stops a running session; the frames captured so far are
// handed to the encoder through the normal completion path.
func (c *Controller) CancelCapture() error {
	if c.state != StateCapturing {
		return fmt.Errorf("%w: no capture running", ErrNotAllowed)
	}
	c.sched.Cancel()
	return nil
}

// Tick drives the scheduler and delivers finished encode jobs back onto the
// update loop thread.
func (c *Controller) Tick(now time.Time) {
	c.sched.Tick(now)
	select {
	case res := <-c.encodeDone:
		if c.state == StateEncoding {
			c.transition(c.restState())
		}
		if c.OnEncodeEnd != nil {
			c.OnEncodeEnd(res)
		}
	default:
	}
}

// Shutdown cancels any running session without encoding, closes the camera
// and stops the controller. Frames already on disk stay valid for a manual
// encode; the folder is logged so they can be found.
func (c *Controller) Shutdown() {
	c.shuttingDown = true
	if c.state == StateCapturing {
		c.sched.Cancel()
	}
	c.cam.Close()
	c.transition(StateIdle)
}

// onSessionDone runs on the update loop thread when the scheduler reaches a
// terminal state (completed or cancelled).
func (c *Controller) onSessionDone(r timelapse.Result) {
	if c.OnSessionEnd != nil && !c.shuttingDown {
		c.OnSessionEnd(r)
	}
	if c.shuttingDown {
		if c.logger != nil {
			c.logger.Info("shutdown during capture, frames kept", "dir", r.Dir, "frames", r.FramesCaptured)
		}
		return
	}

	job := encode.Job{Dir: r.Dir, FPS: c.lastFPS, FrameCount: r.FramesCaptured}
	err := c.enc.Start(job, func(res encode.Result) { c.encodeDone <- res })
	if err != nil {
		// Zero frames or a busy encoder: the session itself still ended
		// cleanly, so return to the rest state and surface the error.
		c.transition(c.restState())
		if c.OnEncodeEnd != nil {
			c.OnEncodeEnd(encode.Result{Job: job, Err: err})
		}
		return
	}
	c.transition(StateEncoding)
}

// restState is where the controller settles when no session or job is
// active: previewing while a handle is open, idle otherwise.
func (c *Controller) restState() State {
	if _, open := c.cam.Current(); open {
		return StatePreviewing
	}
	return StateIdle
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("run state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}
