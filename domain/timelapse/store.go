package timelapse

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FramePattern is the printf pattern for stored frame file names. The
// encoder consumes the same pattern, so the two must not drift apart.
const FramePattern = "frame_%06d.jpg"

const frameJPEGQuality = 90

// Store writes numbered JPEG frames into one run folder. The sequence is
// owned by the store: numbers are assigned on successful writes only, so
// the files on disk are always contiguous starting at zero.
type Store struct {
	dir   string
	count int
	stamp bool
}

// NewRunStore creates a fresh timestamped run folder under baseDir and
// returns a store writing into it.
func NewRunStore(baseDir string, now time.Time, stamp bool) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("empty output base dir")
	}
	dir := filepath.Join(baseDir, now.Format("timelapse_20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run folder: %w", err)
	}
	return &Store{dir: dir, stamp: stamp}, nil
}

// OpenStore returns a store writing into an existing (or creatable) folder.
func OpenStore(dir string, stamp bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame folder: %w", err)
	}
	return &Store{dir: dir, stamp: stamp}, nil
}

// Dir returns the run folder path.
func (s *Store) Dir() string { return s.dir }

// Count returns the number of frames written so far.
func (s *Store) Count() int { return s.count }

// WriteFrame persists img as the next numbered frame. The counter only
// advances when the file lands on disk.
func (s *Store) WriteFrame(img image.Image, ts time.Time) error {
	if img == nil {
		return fmt.Errorf("nil frame image")
	}
	if s.stamp {
		if stamped, err := StampTimestamp(img, ts); err == nil {
			img = stamped
		}
	}
	name := fmt.Sprintf(FramePattern, s.count)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: frameJPEGQuality}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	s.count++
	return nil
}

// Frames lists the stored frame files in sequence order.
func (s *Store) Frames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "frame_") && strings.HasSuffix(e.Name(), ".jpg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
