package encode

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

var testLogger = slog.New(slog.NewTextHandler(discard{}, nil))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func waitResult(t *testing.T, ch chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for encode result")
		return Result{}
	}
}

func TestZeroFramesFailsFastWithoutRunner(t *testing.T) {
	invoked := false
	d := NewDispatcherWithRunner(testLogger, func(string, []string) (string, int, error) {
		invoked = true
		return "", 0, nil
	})
	err := d.Start(Job{Dir: "/tmp/run", FPS: 10, FrameCount: 0}, nil)
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("want ErrNoFrames, got %v", err)
	}
	if invoked {
		t.Fatal("runner invoked for an empty job")
	}
	if d.Active() {
		t.Fatal("dispatcher marked active after rejected job")
	}
}

func TestSuccessDeliversResultWithOutputPath(t *testing.T) {
	var gotDir string
	var gotArgs []string
	d := NewDispatcherWithRunner(testLogger, func(dir string, args []string) (string, int, error) {
		gotDir = dir
		gotArgs = args
		return "", 0, nil
	})
	ch := make(chan Result, 1)
	job := Job{Dir: "/tmp/run", FPS: 10, FrameCount: 4}
	if err := d.Start(job, func(r Result) { ch <- r }); err != nil {
		t.Fatalf("start: %v", err)
	}
	r := waitResult(t, ch)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if gotDir != "/tmp/run" {
		t.Fatalf("runner dir = %q", gotDir)
	}
	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{"-framerate 10", "-i frame_%06d.jpg", "libx264", "yuv420p", OutputFileName} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if want := "/tmp/run/" + OutputFileName; r.Job.OutputPath() != want {
		t.Fatalf("output path %q, want %q", r.Job.OutputPath(), want)
	}
	if d.Active() {
		t.Fatal("dispatcher still active after completion")
	}
}

func TestFailureSurfacesExitCodeAndStderrTail(t *testing.T) {
	d := NewDispatcherWithRunner(testLogger, func(string, []string) (string, int, error) {
		return "Unknown encoder 'libx264'", 1, fmt.Errorf("exit status 1")
	})
	ch := make(chan Result, 1)
	if err := d.Start(Job{Dir: "/tmp/run", FPS: 24, FrameCount: 2}, func(r Result) { ch <- r }); err != nil {
		t.Fatalf("start: %v", err)
	}
	r := waitResult(t, ch)
	var encErr *Error
	if !errors.As(r.Err, &encErr) {
		t.Fatalf("want *encode.Error, got %v", r.Err)
	}
	if encErr.ExitCode != 1 || !strings.Contains(encErr.StderrTail, "libx264") {
		t.Fatalf("unexpected error detail: %+v", encErr)
	}
}

func TestSecondJobRejectedWhileActive(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcherWithRunner(testLogger, func(string, []string) (string, int, error) {
		<-release
		return "", 0, nil
	})
	ch := make(chan Result, 1)
	job := Job{Dir: "/tmp/run", FPS: 10, FrameCount: 1}
	if err := d.Start(job, func(r Result) { ch <- r }); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := d.Start(job, nil); !errors.Is(err, ErrJobActive) {
		t.Fatalf("want ErrJobActive, got %v", err)
	}
	close(release)
	waitResult(t, ch)
	if err := d.Start(job, func(r Result) { ch <- r }); err != nil {
		t.Fatalf("start after completion: %v", err)
	}
	waitResult(t, ch)
}

func TestTailOfBoundsOutput(t *testing.T) {
	long := strings.Repeat("x", stderrTailLimit*2) + "END"
	got := tailOf([]byte(long), stderrTailLimit)
	if len(got) != stderrTailLimit {
		t.Fatalf("tail length %d, want %d", len(got), stderrTailLimit)
	}
	if !strings.HasSuffix(got, "END") {
		t.Fatal("tail lost the end of the output")
	}
}
