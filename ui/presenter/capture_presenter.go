package presenter

import (
	"fmt"
	"time"

	"github.com/fennrik/lapsecam-go/domain/run"
	"github.com/fennrik/lapsecam-go/domain/timelapse"
)

// CaptureController narrows what the presenter needs from the run controller.
type CaptureController interface {
	State() run.State
	StartCapture(cfg timelapse.SessionConfig, now time.Time) error
	CancelCapture() error
}

// SessionProvider builds a session config from the current UI fields.
type SessionProvider interface {
	Session() (timelapse.SessionConfig, error)
}

// CaptureView updates UI elements affected by capture toggling.
type CaptureView interface {
	SetToggleText(string)
	ConfigEditable(bool)
	ShowStatus(string)
}

// CapturePresenter owns presentation logic for the single start/stop button.
type CapturePresenter struct {
	ctrl CaptureController
	cfg  SessionProvider
	view CaptureView
}

// NewCapturePresenter returns a presenter wiring the toggle button to the controller.
func NewCapturePresenter(ctrl CaptureController, cfg SessionProvider, view CaptureView) *CapturePresenter {
	return &CapturePresenter{ctrl: ctrl, cfg: cfg, view: view}
}

// Toggle starts a session from the current config fields, or cancels the
// running one. Rejections surface on the status line, never as a crash.
func (c *CapturePresenter) Toggle(now time.Time) {
	if c == nil || c.ctrl == nil || c.cfg == nil || c.view == nil {
		return
	}
	if c.ctrl.State() == run.StateCapturing {
		if err := c.ctrl.CancelCapture(); err != nil {
			c.view.ShowStatus(err.Error())
		}
		return
	}
	cfg, err := c.cfg.Session()
	if err != nil {
		c.view.ShowStatus(fmt.Sprintf("Invalid settings: %v", err))
		return
	}
	if err := c.ctrl.StartCapture(cfg, now); err != nil {
		c.view.ShowStatus(err.Error())
	}
}

// OnRunState reflects controller transitions onto the button and the config
// lock. Interval/duration/device stay locked only while capturing; encoding
// releases them (only fps affects the video render).
func (c *CapturePresenter) OnRunState(prev, next run.State) {
	if c == nil || c.view == nil {
		return
	}
	if next == run.StateCapturing {
		c.view.SetToggleText("Stop timelapse")
		c.view.ConfigEditable(false)
		return
	}
	c.view.SetToggleText("Start timelapse")
	c.view.ConfigEditable(true)
}
