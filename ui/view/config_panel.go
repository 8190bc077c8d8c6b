package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fennrik/lapsecam-go/config"
	"github.com/fennrik/lapsecam-go/domain/timelapse"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists

	// Session builds a capture session from the current field text.
	Session() (timelapse.SessionConfig, error)
	// Plan predicts frame count and fps from the current field text.
	Plan() (frames, fps int)
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(*config.Config)
	applyBtn  *ButtonWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// Fields that stay editable while a capture runs. Fps only shapes the later
// encode and live preview is a display toggle; everything else is pinned to
// the session that is already in flight.
var captureEditableFields = map[string]bool{
	"videoFPS":    true,
	"livePreview": true,
}

// NewConfigPanel creates the view bound to cfg. onApplied fires after a
// successful apply so display settings take effect immediately.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(20))
		Grid(w, Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("interval", "Interval Seconds", fmt.Sprintf("%d", c.IntervalSeconds))
	makeRow("total", "Total Seconds", fmt.Sprintf("%d", c.TotalSeconds))
	makeRow("videoFPS", "Video FPS", fmt.Sprintf("%d", c.VideoFPS))
	makeRow("outputDir", "Output Dir (empty = home)", c.OutputDir)
	makeRow("livePreview", "Live Preview (true/false)", fmt.Sprintf("%t", c.LivePreview))
	makeRow("stamp", "Stamp Frames (true/false)", fmt.Sprintf("%t", c.StampFrames))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	for id, w := range v.widgets {
		if w == nil {
			continue
		}
		state := "disabled"
		if enabled || captureEditableFields[id] {
			state = "normal"
		}
		w.Configure(State(state))
	}
}

func (v *configPanel) text(id string) string {
	w := v.widgets[id]
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.TrimSpace(strings.Join(parts, ""))
}

// Session parses the capture fields into a validated session config.
func (v *configPanel) Session() (timelapse.SessionConfig, error) {
	cfg := timelapse.SessionConfig{}
	interval, ok := parseIntField(v.text("interval"))
	if !ok {
		return cfg, fmt.Errorf("interval seconds: %w", timelapse.ErrInvalidConfig)
	}
	total, ok := parseIntField(v.text("total"))
	if !ok {
		return cfg, fmt.Errorf("total seconds: %w", timelapse.ErrInvalidConfig)
	}
	fps, ok := parseIntField(v.text("videoFPS"))
	if !ok {
		return cfg, fmt.Errorf("video fps: %w", timelapse.ErrInvalidConfig)
	}
	stamp, ok := parseBoolLoose(v.text("stamp"))
	if !ok {
		stamp = v.cfg.StampFrames
	}
	cfg.Interval = time.Duration(interval) * time.Second
	cfg.Total = time.Duration(total) * time.Second
	cfg.FPS = fps
	cfg.Stamp = stamp
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Plan reports the predicted frame count and fps for the footer. Falls back
// to the saved config while a field holds unparseable text.
func (v *configPanel) Plan() (frames, fps int) {
	cfg, err := v.Session()
	if err != nil {
		fallback := timelapse.SessionConfig{
			Interval: time.Duration(v.cfg.IntervalSeconds) * time.Second,
			Total:    time.Duration(v.cfg.TotalSeconds) * time.Second,
			FPS:      v.cfg.VideoFPS,
		}
		return fallback.FramesPlanned(), fallback.FPS
	}
	return cfg.FramesPlanned(), cfg.FPS
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	if i, ok := parseIntField(v.text("interval")); ok {
		cfg.IntervalSeconds = i
	}
	if i, ok := parseIntField(v.text("total")); ok {
		cfg.TotalSeconds = i
	}
	if i, ok := parseIntField(v.text("videoFPS")); ok {
		cfg.VideoFPS = i
	}
	if b, ok := parseBoolLoose(v.text("livePreview")); ok {
		cfg.LivePreview = b
	}
	if b, ok := parseBoolLoose(v.text("stamp")); ok {
		cfg.StampFrames = b
	}
	cfg.OutputDir = v.text("outputDir")
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
