package presenter

import (
	"image"
	"time"

	"github.com/fennrik/lapsecam-go/domain/camera"
	"github.com/fennrik/lapsecam-go/ui/model"
)

// PreviewView is the UI surface the preview presenter draws on.
type PreviewView interface {
	UpdatePreview(img image.Image)
	PreviewOff()
	PreviewReset()
}

// PreviewPresenter pulls the latest camera frame on each UI tick and renders
// it. Read failures keep the previous frame on screen.
type PreviewPresenter struct {
	model  *model.PreviewModel
	source camera.FrameSource
	view   PreviewView
}

// NewPreviewPresenter returns a presenter over the given frame source.
func NewPreviewPresenter(m *model.PreviewModel, source camera.FrameSource, view PreviewView) *PreviewPresenter {
	return &PreviewPresenter{model: m, source: source, view: view}
}

// Tick renders the freshest frame when live preview is enabled and a new
// frame has been published since the last tick.
func (p *PreviewPresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.source == nil || p.view == nil {
		return
	}
	if !p.model.Enabled() {
		return
	}
	if img, ok := p.model.Offer(p.source.LatestFrame()); ok {
		p.view.UpdatePreview(img)
	}
}

// SetEnabled flips the live preview. Turning it off shows the placeholder;
// the camera keeps running so capture ticks still get frames.
func (p *PreviewPresenter) SetEnabled(b bool) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.model.SetEnabled(b)
	if !b {
		p.view.PreviewOff()
	}
}

// OnDeviceSwitched forgets the old device's frame so the next tick renders
// the new device immediately.
func (p *PreviewPresenter) OnDeviceSwitched() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.model.Reset()
	p.view.PreviewReset()
}
