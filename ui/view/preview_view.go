package view

import (
	"image"

	"github.com/fennrik/lapsecam-go/assets"
	"github.com/fennrik/lapsecam-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PreviewView renders the live camera frame into a label widget.
// It owns the label and disposes the previous Tk photo before swapping in a
// new one so off-screen image data does not accumulate.
type PreviewView interface {
	UpdatePreview(img image.Image)
	PreviewOff()
	PreviewReset()
}

type previewView struct {
	label     *LabelWidget
	prevPhoto *Img
	targetW   int
	targetH   int
}

const (
	// Max preview dimensions; frames are scaled down proportionally.
	maxPreviewW = 480
	maxPreviewH = 270
)

// NewPreviewView creates the preview label and grids it at the given row,
// spanning the full width of the form above it. The embedded placeholder is
// shown until the first frame arrives.
func NewPreviewView(row int) PreviewView {
	photo := NewPhoto(Data(assets.PreviewPlaceholderPNG))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &previewView{label: label, prevPhoto: photo, targetW: maxPreviewW, targetH: maxPreviewH}
}

func (v *previewView) UpdatePreview(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, v.targetW, v.targetH)
	pngBytes := images.EncodePNG(scaled)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevPhoto = newPhoto
	v.label.Configure(Image(newPhoto))
}

// PreviewOff swaps in the placeholder. The camera keeps running behind it.
func (v *previewView) PreviewOff() { v.showPlaceholder() }

// PreviewReset clears the last frame, e.g. after a device switch.
func (v *previewView) PreviewReset() { v.showPlaceholder() }

func (v *previewView) showPlaceholder() {
	if v == nil || v.label == nil {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(assets.PreviewPlaceholderPNG))
	v.label.Configure(Image(v.prevPhoto))
}
