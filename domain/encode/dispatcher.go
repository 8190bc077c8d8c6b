package encode

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/fennrik/lapsecam-go/domain/timelapse"
)

// OutputFileName is the deterministic video name inside the run folder, so
// re-runs of the same session are discoverable.
const OutputFileName = "timelapse.mp4"

// stderrTailLimit bounds how much encoder diagnostic output is kept.
const stderrTailLimit = 2048

// ErrNoFrames is returned when a job has nothing to encode. The external
// process is never launched in that case.
var ErrNoFrames = errors.New("encode: no frames to encode")

// ErrJobActive is returned when a job is already running; only one encode
// may be in flight.
var ErrJobActive = errors.New("encode: job already active")

// Error reports a failed encoder run with its exit code and the tail of its
// diagnostic output. Encoding failures are configuration problems (missing
// ffmpeg, bad codec build), so the dispatcher never retries.
type Error struct {
	ExitCode   int
	StderrTail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("encode: ffmpeg exited with code %d", e.ExitCode)
}

// Job describes one encoder invocation over a stored frame sequence.
type Job struct {
	Dir        string
	FPS        int
	FrameCount int
}

// OutputPath returns where the finished video lands.
func (j Job) OutputPath() string { return filepath.Join(j.Dir, OutputFileName) }

// Result is delivered to the completion callback. Err is nil on success.
type Result struct {
	Job Job
	Err error
}

// Runner executes the encoder command in dir and returns its stderr tail
// and exit code. Injectable for tests.
type Runner func(dir string, args []string) (stderrTail string, exitCode int, err error)

// Dispatcher launches the external encoder asynchronously and reports
// completion through a callback, never blocking the caller.
type Dispatcher struct {
	logger *slog.Logger
	run    Runner
	active atomic.Bool
}

// NewDispatcher returns a dispatcher backed by ffmpeg on the search path.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger, run: runFFmpeg}
}

// NewDispatcherWithRunner returns a dispatcher using a custom runner.
func NewDispatcherWithRunner(logger *slog.Logger, run Runner) *Dispatcher {
	return &Dispatcher{logger: logger, run: run}
}

// Active reports whether a job is currently running.
func (d *Dispatcher) Active() bool { return d.active.Load() }

// Start validates the job and launches the encoder in a goroutine. done is
// invoked exactly once with the outcome; the callback runs off the caller's
// thread, so callers must marshal it back to their own loop.
func (d *Dispatcher) Start(job Job, done func(Result)) error {
	if job.FrameCount <= 0 {
		return fmt.Errorf("%w: %s", ErrNoFrames, job.Dir)
	}
	if job.FPS <= 0 {
		return fmt.Errorf("encode: invalid fps %d", job.FPS)
	}
	if !d.active.CompareAndSwap(false, true) {
		return ErrJobActive
	}

	args := []string{
		"-y",
		"-framerate", strconv.Itoa(job.FPS),
		"-i", timelapse.FramePattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		OutputFileName,
	}
	if d.logger != nil {
		d.logger.Info("encode started", "dir", job.Dir, "fps", job.FPS, "frames", job.FrameCount)
	}

	go func() {
		defer d.active.Store(false)
		tail, code, err := d.run(job.Dir, args)
		res := Result{Job: job}
		if err != nil {
			res.Err = &Error{ExitCode: code, StderrTail: tail}
			if d.logger != nil {
				d.logger.Error("encode failed", "exit_code", code, "error", err, "stderr_tail", tail)
			}
		} else if d.logger != nil {
			d.logger.Info("encode finished", "output", job.OutputPath())
		}
		if done != nil {
			done(res)
		}
	}()
	return nil
}

// runFFmpeg resolves ffmpeg on PATH and executes it in dir.
func runFFmpeg(dir string, args []string) (string, int, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "ffmpeg not found on PATH", -1, err
	}
	cmd := exec.Command(path, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err = cmd.Run()
	tail := tailOf(stderr.Bytes(), stderrTailLimit)
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return tail, code, err
	}
	return tail, 0, nil
}

func tailOf(b []byte, limit int) string {
	if len(b) > limit {
		b = b[len(b)-limit:]
	}
	return string(b)
}
