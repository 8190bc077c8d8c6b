package camera

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"
)

const (
	readerPeriod     = 33 * time.Millisecond
	readRetryBackoff = 50 * time.Millisecond
	statsLogInterval = 5 * time.Second
)

// service reads the open device in a background goroutine and publishes the
// most recent frame through an atomic pointer. Consumers (preview tick,
// capture tick) pull the last published frame and never touch the driver
// directly, so the two read paths cannot contend on a blocking read.
type service struct {
	logger *slog.Logger

	mu      sync.Mutex // guards handle lifecycle
	cam     *gocv.VideoCapture
	current Descriptor
	stop    chan struct{}
	done    chan struct{}

	running  atomic.Bool
	latest   atomic.Pointer[Snapshot]
	reads    atomic.Uint64
	skipped  atomic.Uint64
	sequence atomic.Uint64
}

// NewService constructs an idle camera service. Call Open to attach a device.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger}
}

func (s *service) Open(d Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Exclusive ownership: release the previous handle first.
	s.closeLocked()

	cam, err := gocv.OpenVideoCapture(d.ID)
	if err != nil {
		return fmt.Errorf("%w: open device %d: %v", ErrDeviceUnavailable, d.ID, err)
	}
	if !cam.IsOpened() {
		_ = cam.Close()
		return fmt.Errorf("%w: device %d did not open", ErrDeviceUnavailable, d.ID)
	}

	s.cam = cam
	s.current = d
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(cam, s.stop, s.done)

	if s.logger != nil {
		s.logger.Info("camera opened", "device", d.ID, "label", d.String())
	}
	return nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// closeLocked stops the reader and releases the handle. Idempotent.
func (s *service) closeLocked() {
	if s.cam == nil {
		return
	}
	s.running.Store(false)
	close(s.stop)
	// The reader must be out of Read before the handle is released.
	<-s.done
	_ = s.cam.Close()
	s.cam = nil
	s.latest.Store(nil)
	if s.logger != nil {
		s.logger.Info("camera closed", "device", s.current.ID)
	}
	s.current = Descriptor{}
}

func (s *service) Current() (Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.cam != nil
}

func (s *service) Running() bool { return s.running.Load() }

func (s *service) LatestFrame() Snapshot {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}
	}
	return *snap
}

func (s *service) Stats() Stats {
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return Stats{
		Reads:          s.reads.Load(),
		Skipped:        s.skipped.Load(),
		LastRead:       snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

// loop reads frames until stop is closed. Driver faults are recoverable:
// a failed read only bumps the skipped counter and the previous snapshot
// stays valid for consumers.
func (s *service) loop(cam *gocv.VideoCapture, stop, done chan struct{}) {
	defer close(done)
	mat := gocv.NewMat()
	defer mat.Close()

	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		if !cam.Read(&mat) || mat.Empty() {
			s.skipped.Add(1)
			time.Sleep(readRetryBackoff)
			continue
		}
		img, err := mat.ToImage()
		if err != nil {
			s.skipped.Add(1)
			if s.logger != nil {
				s.logger.Debug("frame convert failed", "error", err)
			}
			time.Sleep(readRetryBackoff)
			continue
		}

		seq := s.sequence.Add(1)
		s.reads.Add(1)
		s.latest.Store(&Snapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		time.Sleep(readerPeriod)
	}
}

func (s *service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("camera.stats",
		"reads", stats.Reads,
		"skipped", stats.Skipped,
		"age", stats.LatestFrameAge,
		"sequence", stats.Sequence,
	)
}
