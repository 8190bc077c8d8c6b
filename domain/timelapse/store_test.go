package timelapse

import (
	"fmt"
	"image"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreWritesContiguousSequence(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "run"), false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(img, time.Now()); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if s.Count() != 3 {
		t.Fatalf("count = %d, want 3", s.Count())
	}
	names, err := s.Frames()
	if err != nil {
		t.Fatalf("frames: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("listed %d frames, want 3", len(names))
	}
	for i, name := range names {
		if want := fmt.Sprintf(FramePattern, i); name != want {
			t.Errorf("frame %d named %q, want %q", i, name, want)
		}
	}
}

func TestStoreNilFrameDoesNotAdvanceSequence(t *testing.T) {
	s, err := OpenStore(t.TempDir(), false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.WriteFrame(nil, time.Now()); err == nil {
		t.Fatal("nil frame must error")
	}
	if s.Count() != 0 {
		t.Fatalf("count advanced on failed write: %d", s.Count())
	}
}

func TestNewRunStoreCreatesTimestampedFolder(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s, err := NewRunStore(base, now, false)
	if err != nil {
		t.Fatalf("new run store: %v", err)
	}
	want := filepath.Join(base, "timelapse_20260314_150926")
	if s.Dir() != want {
		t.Fatalf("dir = %q, want %q", s.Dir(), want)
	}
}

func TestNewRunStoreRejectsEmptyBase(t *testing.T) {
	if _, err := NewRunStore("", time.Now(), false); err == nil {
		t.Fatal("empty base dir must error")
	}
}

func TestStampTimestampPreservesBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	out, err := StampTimestamp(img, time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v -> %v", img.Bounds(), out.Bounds())
	}
	// The box region must differ from the untouched source.
	changed := false
	for y := 200; y < 240 && !changed; y++ {
		for x := 0; x < 100; x++ {
			if out.RGBAAt(x, y) != img.RGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Fatal("stamp drew nothing in the corner region")
	}
}
