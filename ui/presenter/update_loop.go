package presenter

import "time"

// ControllerTicker advances domain state on the UI thread.
type ControllerTicker interface {
	Tick(now time.Time)
}

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the run controller first (scheduler captures, encode completion
// delivery), then the presenters, then invokes a scheduler callback to
// re-arm the next tick. The zero value is usable (methods are nil-safe).
type Loop struct {
	Controller ControllerTicker
	Preview    *PreviewPresenter
	Status     *StatusPresenter
	Schedule   func()
}

// NewLoop returns an update loop over the given components.
func NewLoop(ctrl ControllerTicker, preview *PreviewPresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Controller: ctrl, Preview: preview, Status: status, Schedule: schedule}
}

// Tick runs one update cycle.
func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Controller != nil {
		l.Controller.Tick(now)
	}
	if l.Preview != nil {
		l.Preview.Tick(now)
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
