package model

import (
	"image"

	"github.com/fennrik/lapsecam-go/domain/camera"
)

// PreviewModel tracks live-preview state and the last rendered frame.
// No synchronization needed: updates occur on the UI thread tick.
type PreviewModel struct {
	enabled  bool
	lastSeq  uint64
	lastGood image.Image
}

// NewPreviewModel returns a model with live preview enabled.
func NewPreviewModel(enabled bool) *PreviewModel { return &PreviewModel{enabled: enabled} }

// Enabled reports whether the live preview is on.
func (m *PreviewModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled
}

// SetEnabled stores the live-preview flag.
func (m *PreviewModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled = b
}

// Offer feeds the latest camera snapshot. It returns a frame to render only
// when the snapshot carries a new sequence number; on a stale or empty
// snapshot the previously rendered frame is retained so the preview never
// flickers to blank.
func (m *PreviewModel) Offer(snap camera.Snapshot) (image.Image, bool) {
	if m == nil || !m.enabled {
		return nil, false
	}
	if snap.Image == nil || snap.Sequence == m.lastSeq {
		return nil, false
	}
	m.lastSeq = snap.Sequence
	m.lastGood = snap.Image
	return snap.Image, true
}

// LastFrame returns the most recently rendered frame, if any.
func (m *PreviewModel) LastFrame() image.Image {
	if m == nil {
		return nil
	}
	return m.lastGood
}

// Reset forgets the rendered frame, e.g. after a device switch.
func (m *PreviewModel) Reset() {
	if m == nil {
		return
	}
	m.lastSeq = 0
	m.lastGood = nil
}
