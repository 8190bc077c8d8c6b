package model

import (
	"strings"
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{90 * time.Second, "01:30"},
		{-5 * time.Second, "00:00"},
		{3661 * time.Second, "01:01:01"},
	}
	for _, c := range cases {
		if got := FormatClock(c.d); got != c.want {
			t.Errorf("FormatClock(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestPredictVideoLength(t *testing.T) {
	if got := PredictVideoLength(4, 10); got != 400*time.Millisecond {
		t.Fatalf("4 frames at 10fps = %v, want 400ms", got)
	}
	if got := PredictVideoLength(0, 10); got != 0 {
		t.Fatalf("zero frames = %v", got)
	}
	if got := PredictVideoLength(10, 0); got != 0 {
		t.Fatalf("zero fps = %v", got)
	}
}

func TestStatusLineCapturing(t *testing.T) {
	m := NewStatusModel()
	m.SetProgress(3, 10, 35*time.Second)
	line := m.Line(30)
	for _, want := range []string{"3/10", "30%", "00:35"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestStatusLineIdleShowsPrediction(t *testing.T) {
	m := NewStatusModel()
	m.SetPlanned(12)
	m.SetIdle()
	line := m.Line(6)
	if !strings.Contains(line, "Planned: 12 frames") {
		t.Errorf("idle line %q missing prediction", line)
	}
	if !strings.Contains(line, "00:02") {
		t.Errorf("idle line %q missing video length", line)
	}
}

func TestStatusMessageOverrides(t *testing.T) {
	m := NewStatusModel()
	m.SetProgress(1, 4, time.Second)
	m.SetMessage("Encode failed: exit 1")
	if got := m.Line(30); got != "Encode failed: exit 1" {
		t.Fatalf("line = %q", got)
	}
	m.SetMessage("")
	if got := m.Line(30); !strings.Contains(got, "1/4") {
		t.Fatalf("line after clear = %q", got)
	}
}
