package timelapse

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	stampFontSize = 18.0
	stampPadding  = 6
)

// StampTimestamp draws the capture time onto a copy of img: white HH:MM:SS
// text on a translucent box in the lower-left corner.
func StampTimestamp(img image.Image, ts time.Time) (*image.RGBA, error) {
	face, err := stampFace(stampFontSize)
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	label := ts.Format("15:04:05")
	drawer := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	metrics := face.Metrics()
	textW := drawer.MeasureString(label).Round()
	x := rgba.Bounds().Min.X + stampPadding*2
	y := rgba.Bounds().Max.Y - stampPadding*2 - metrics.Descent.Round()

	box := image.Rect(
		x-stampPadding,
		y-metrics.Ascent.Round()-stampPadding,
		x+textW+stampPadding,
		y+metrics.Descent.Round()+stampPadding,
	)
	draw.Draw(rgba, box.Intersect(rgba.Bounds()), &image.Uniform{color.RGBA{0, 0, 0, 150}}, image.Point{}, draw.Over)

	drawer.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	drawer.DrawString(label)

	return rgba, nil
}

func stampFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
