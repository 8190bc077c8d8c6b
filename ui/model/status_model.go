package model

import (
	"fmt"
	"time"
)

// StatusModel holds the footer values most recently derived from the
// capture session. The zero value is usable. Mutated on the UI thread only.
type StatusModel struct {
	capturing bool
	captured  int
	planned   int
	remaining time.Duration
	message   string
}

// NewStatusModel returns a pointer to a ready-to-use StatusModel.
func NewStatusModel() *StatusModel { return &StatusModel{} }

// SetProgress records the running session values.
func (m *StatusModel) SetProgress(captured, planned int, remaining time.Duration) {
	if m == nil {
		return
	}
	m.capturing = true
	m.captured = captured
	m.planned = planned
	m.remaining = remaining
}

// SetIdle clears the running session values.
func (m *StatusModel) SetIdle() {
	if m == nil {
		return
	}
	m.capturing = false
}

// SetMessage overrides the derived status line until cleared or replaced.
func (m *StatusModel) SetMessage(msg string) {
	if m == nil {
		return
	}
	m.message = msg
}

// Line renders the footer text. A sticky message wins; while capturing the
// line shows progress, countdown and the predicted video length; otherwise
// it shows the prediction for the given planned frame count.
func (m *StatusModel) Line(videoFPS int) string {
	if m == nil {
		return ""
	}
	if m.message != "" {
		return m.message
	}
	videoLen := PredictVideoLength(m.planned, videoFPS)
	if !m.capturing {
		return fmt.Sprintf("Planned: %d frames | Video: %s", m.planned, FormatClock(videoLen))
	}
	pct := 0
	if m.planned > 0 {
		pct = m.captured * 100 / m.planned
	}
	return fmt.Sprintf("%d/%d frames (%d%%) | Remaining %s | Video: %s",
		m.captured, m.planned, pct, FormatClock(m.remaining), FormatClock(videoLen))
}

// SetPlanned updates the predicted frame count shown while idle.
func (m *StatusModel) SetPlanned(planned int) {
	if m == nil {
		return
	}
	m.planned = planned
}

// PredictVideoLength returns the duration of the rendered video for a frame
// count at the given playback fps.
func PredictVideoLength(frames, fps int) time.Duration {
	if frames <= 0 || fps <= 0 {
		return 0
	}
	return time.Duration(float64(frames)/float64(fps)*float64(time.Second) + 0.5)
}

// FormatClock renders a duration as mm:ss, or hh:mm:ss once hours appear.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Round(time.Second).Seconds())
	hh := s / 3600
	mm := (s % 3600) / 60
	ss := s % 60
	if hh > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
