package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// PreviewPlaceholderPNG contains the raw PNG bytes shown in the preview pane
// before the first camera frame arrives or while live preview is off.
//
//go:embed preview_placeholder.png
var PreviewPlaceholderPNG []byte

// PreviewPlaceholderImage decodes the embedded PNG into an image.Image.
func PreviewPlaceholderImage() (image.Image, error) {
	if len(PreviewPlaceholderPNG) == 0 {
		return nil, fmt.Errorf("embedded preview_placeholder.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(PreviewPlaceholderPNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}
