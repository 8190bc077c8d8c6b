package camera

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrDeviceUnavailable is returned when a device cannot be opened or disappears.
var ErrDeviceUnavailable = errors.New("camera: device unavailable")

// ErrReadTimeout is returned when no fresh frame is available from the device.
var ErrReadTimeout = errors.New("camera: frame read timed out")

// Descriptor identifies an enumerable camera device.
type Descriptor struct {
	ID    int
	Label string
}

func (d Descriptor) String() string {
	if d.Label != "" {
		return d.Label
	}
	return fmt.Sprintf("Camera %d", d.ID)
}

// Snapshot carries the latest captured frame and metadata.
// The zero value means no frame has been published yet.
type Snapshot struct {
	Image      image.Image
	CapturedAt time.Time
	Sequence   uint64
}

// Fresh reports whether the snapshot holds a frame captured within maxAge of now.
// Consumers treat a stale or empty snapshot as a read timeout for that tick.
func (s Snapshot) Fresh(now time.Time, maxAge time.Duration) bool {
	if s.Image == nil || s.CapturedAt.IsZero() {
		return false
	}
	return now.Sub(s.CapturedAt) <= maxAge
}

// Stats summarises reader loop behaviour for instrumentation.
type Stats struct {
	Reads          uint64
	Skipped        uint64
	LastRead       time.Time
	LatestFrameAge time.Duration
	Sequence       uint64
}

// FrameSource provides read-only access to the freshest camera frame.
// LatestFrame never blocks; it returns whatever was published last.
type FrameSource interface {
	LatestFrame() Snapshot
	Running() bool
}

// Service owns the single open device handle. Open closes any previous
// handle before acquiring the new one, so at most one handle exists.
type Service interface {
	FrameSource
	Open(Descriptor) error
	Close()
	Current() (Descriptor, bool)
	Stats() Stats
}
