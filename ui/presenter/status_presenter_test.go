package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/fennrik/lapsecam-go/domain/run"
	"github.com/fennrik/lapsecam-go/domain/timelapse"
	"github.com/fennrik/lapsecam-go/ui/model"
)

type mockSession struct {
	state     timelapse.State
	captured  int
	planned   int
	remaining time.Duration
}

func (m *mockSession) State() timelapse.State                { return m.state }
func (m *mockSession) Progress() (int, int)                  { return m.captured, m.planned }
func (m *mockSession) Remaining(now time.Time) time.Duration { return m.remaining }

type mockRunState struct{ state run.State }

func (m *mockRunState) State() run.State { return m.state }

type mockPlan struct{ frames, fps int }

func (m *mockPlan) Plan() (int, int) { return m.frames, m.fps }

type mockStatusView struct {
	status    string
	stateText string
	captured  int
	planned   int
}

func (v *mockStatusView) SetStatus(s string)       { v.status = s }
func (v *mockStatusView) SetStateLabel(s string)   { v.stateText = s }
func (v *mockStatusView) SetCounts(c, p int)       { v.captured, v.planned = c, p }

func TestStatusTickWhileCapturing(t *testing.T) {
	sess := &mockSession{state: timelapse.StateRunning, captured: 2, planned: 4, remaining: 12 * time.Second}
	view := &mockStatusView{}
	p := NewStatusPresenter(sess, &mockRunState{state: run.StateCapturing}, &mockPlan{frames: 4, fps: 10}, model.NewStatusModel(), view)
	p.Tick(time.Now())
	if view.captured != 2 || view.planned != 4 {
		t.Fatalf("counts %d/%d", view.captured, view.planned)
	}
	for _, want := range []string{"2/4", "50%", "00:12"} {
		if !strings.Contains(view.status, want) {
			t.Errorf("status %q missing %q", view.status, want)
		}
	}
	if view.stateText != "State: capturing" {
		t.Fatalf("state label %q", view.stateText)
	}
}

func TestStatusTickIdleShowsPrediction(t *testing.T) {
	sess := &mockSession{state: timelapse.StateIdle}
	view := &mockStatusView{}
	p := NewStatusPresenter(sess, &mockRunState{state: run.StatePreviewing}, &mockPlan{frames: 13, fps: 30}, model.NewStatusModel(), view)
	p.Tick(time.Now())
	if !strings.Contains(view.status, "Planned: 13 frames") {
		t.Fatalf("status %q", view.status)
	}
}

func TestFlashPinsMessageUntilNextCapture(t *testing.T) {
	sess := &mockSession{state: timelapse.StateIdle}
	view := &mockStatusView{}
	m := model.NewStatusModel()
	p := NewStatusPresenter(sess, &mockRunState{state: run.StatePreviewing}, &mockPlan{frames: 4, fps: 10}, m, view)
	p.Flash("Video ready: /out/timelapse.mp4")
	p.Tick(time.Now())
	if view.status != "Video ready: /out/timelapse.mp4" {
		t.Fatalf("status %q", view.status)
	}
	p.OnRunState(run.StatePreviewing, run.StateCapturing)
	p.Tick(time.Now())
	if strings.Contains(view.status, "Video ready") {
		t.Fatalf("message not cleared on capture start: %q", view.status)
	}
}

func TestStateLabelOnlyUpdatesOnChange(t *testing.T) {
	sess := &mockSession{state: timelapse.StateIdle}
	view := &mockStatusView{}
	rs := &mockRunState{state: run.StateIdle}
	p := NewStatusPresenter(sess, rs, &mockPlan{frames: 1, fps: 1}, model.NewStatusModel(), view)
	p.Tick(time.Now())
	if view.stateText != "State: idle" {
		t.Fatalf("state label %q", view.stateText)
	}
	view.stateText = "sentinel"
	p.Tick(time.Now())
	if view.stateText != "sentinel" {
		t.Fatal("label rewritten without a state change")
	}
	rs.state = run.StatePreviewing
	p.Tick(time.Now())
	if view.stateText != "State: previewing" {
		t.Fatalf("state label %q", view.stateText)
	}
}
