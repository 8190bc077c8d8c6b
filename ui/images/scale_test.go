package images

import (
	"image"
	"testing"
)

func TestScaleToFitKeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if out := ScaleToFit(src, 200, 200); out != src {
		t.Fatal("image within bounds should be returned unchanged")
	}
}

func TestScaleToFitPreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	out := ScaleToFit(src, 320, 320)
	b := out.Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("scaled to %dx%d, want 320x240", b.Dx(), b.Dy())
	}
}

func TestScaleToFitNeverReturnsZeroSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 10))
	out := ScaleToFit(src, 5, 5)
	b := out.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		t.Fatalf("degenerate result %dx%d", b.Dx(), b.Dy())
	}
}

func TestEncodePNGNil(t *testing.T) {
	if got := EncodePNG(nil); got != nil {
		t.Fatalf("nil image should produce nil bytes, got %d bytes", len(got))
	}
	if got := EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 4))); len(got) == 0 {
		t.Fatal("valid image produced no bytes")
	}
}
