package presenter

import (
	"time"

	"github.com/fennrik/lapsecam-go/domain/run"
	"github.com/fennrik/lapsecam-go/domain/timelapse"
	"github.com/fennrik/lapsecam-go/ui/model"
)

// SessionSource exposes the scheduler values shown in the footer.
type SessionSource interface {
	State() timelapse.State
	Progress() (captured, planned int)
	Remaining(now time.Time) time.Duration
}

// RunStateSource reports the top-level controller state.
type RunStateSource interface {
	State() run.State
}

// PlanProvider returns the predicted frame count and fps from the current
// config fields, used while no session is running.
type PlanProvider interface {
	Plan() (frames, fps int)
}

// StatusView displays the footer line, state label and frame counters.
type StatusView interface {
	SetStatus(string)
	SetStateLabel(string)
	SetCounts(captured, planned int)
}

// StatusPresenter formats session progress and countdown to the footer on
// each UI tick (the original updated its status bar on a light 250ms timer).
type StatusPresenter struct {
	sess      SessionSource
	runSrc    RunStateSource
	plan      PlanProvider
	model     *model.StatusModel
	view      StatusView
	lastState run.State
}

// NewStatusPresenter returns a footer presenter.
func NewStatusPresenter(sess SessionSource, runSrc RunStateSource, plan PlanProvider, m *model.StatusModel, view StatusView) *StatusPresenter {
	// lastState starts out-of-range so the first tick always paints the label.
	return &StatusPresenter{sess: sess, runSrc: runSrc, plan: plan, model: m, view: view, lastState: run.State(-1)}
}

// Tick refreshes the footer from the scheduler and config fields.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.runSrc == nil || p.plan == nil || p.model == nil || p.view == nil {
		return
	}
	_, fps := p.plan.Plan()
	if p.sess.State() == timelapse.StateRunning {
		captured, planned := p.sess.Progress()
		p.model.SetProgress(captured, planned, p.sess.Remaining(now))
		p.view.SetCounts(captured, planned)
	} else {
		frames, _ := p.plan.Plan()
		p.model.SetIdle()
		p.model.SetPlanned(frames)
	}
	p.view.SetStatus(p.model.Line(fps))

	if st := p.runSrc.State(); st != p.lastState {
		p.lastState = st
		p.view.SetStateLabel("State: " + st.String())
	}
}

// Flash pins a message to the footer until the next capture starts.
func (p *StatusPresenter) Flash(msg string) {
	if p == nil || p.model == nil {
		return
	}
	p.model.SetMessage(msg)
}

// OnRunState clears a pinned message when a new capture starts.
func (p *StatusPresenter) OnRunState(prev, next run.State) {
	if p == nil || p.model == nil {
		return
	}
	if next == run.StateCapturing {
		p.model.SetMessage("")
	}
}
