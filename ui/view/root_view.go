package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/fennrik/lapsecam-go/config"
	"github.com/fennrik/lapsecam-go/domain/camera"
	"github.com/fennrik/lapsecam-go/domain/timelapse"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	ConfigPanel ConfigPanel
	Preview     PreviewView
	Status      StatusBar

	// Widgets
	StateLabel   *LabelWidget
	DeviceSelect *TComboboxWidget
	toggleBtn    *ButtonWidget

	// flash pins transient messages (set by the container, may be nil)
	flash func(string)
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetStatus(text string)
	SetCounts(captured, planned int)
	SetToggleText(text string)
	ConfigEditable(enabled bool)
	ShowStatus(text string)
	UpdatePreview(img image.Image)
	PreviewOff()
	PreviewReset()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// SetFlashFunc routes transient status messages through the given function
// instead of writing the footer directly, so they survive the next tick.
func (rv *RootView) SetFlashFunc(f func(string)) {
	if rv != nil {
		rv.flash = f
	}
}

// Build constructs the layout. devices lists the probed cameras for the
// dropdown; handlers are invoked on user actions.
func (rv *RootView) Build(devices []camera.Descriptor, onToggleCapture func(), onExit func(), onDeviceChanged func(id int), onApplied func(*config.Config)) {
	if rv == nil {
		return
	}
	// Row 0: state label, device dropdown, buttons frame
	rv.StateLabel = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	labels := make([]string, 0, len(devices))
	for _, d := range devices {
		labels = append(labels, d.String())
	}
	if len(labels) == 0 {
		labels = []string{"<no camera>"}
	}
	rv.DeviceSelect = TCombobox(Values(labels), Width(24))
	Grid(rv.DeviceSelect, Row(0), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.DeviceSelect.Current(rv.initialDeviceIndex(devices))
	Bind(rv.DeviceSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.DeviceSelect == nil {
			return
		}
		idxStr := rv.DeviceSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err == nil && idx >= 0 && idx < len(devices) {
			onDeviceChanged(devices[idx].ID)
		} else if rv.logger != nil {
			rv.logger.Error("device selection parse error", "error", err)
		}
	}))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.toggleBtn = Button(Txt("Start timelapse"), Command(onToggleCapture))
	Grid(rv.toggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, onApplied)
	endRow := rv.ConfigPanel.Build(1)

	// Preview and footer
	rv.Preview = NewPreviewView(endRow)
	rv.Status = NewStatusBar(endRow + 1)
}

// initialDeviceIndex locates the configured device in the probed list.
func (rv *RootView) initialDeviceIndex(devices []camera.Descriptor) int {
	for i, d := range devices {
		if d.ID == rv.cfg.DeviceID {
			return i
		}
	}
	return 0
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetStatus updates the footer progress line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

// SetCounts updates the footer frame counter.
func (rv *RootView) SetCounts(captured, planned int) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetCounts(captured, planned)
	}
}

// SetToggleText relabels the start/stop button.
func (rv *RootView) SetToggleText(text string) {
	if rv != nil && rv.toggleBtn != nil {
		rv.toggleBtn.Configure(Txt(text))
	}
}

// ConfigEditable toggles config panel editability.
func (rv *RootView) ConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// ShowStatus surfaces a transient message on the footer. Routed through the
// flash hook when set so the next tick does not overwrite it.
func (rv *RootView) ShowStatus(text string) {
	if rv == nil {
		return
	}
	if rv.flash != nil {
		rv.flash(text)
		return
	}
	rv.SetStatus(text)
}

// UpdatePreview proxies to the preview subview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// PreviewOff shows the placeholder while live preview is disabled.
func (rv *RootView) PreviewOff() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.PreviewOff()
	}
}

// PreviewReset clears the preview after a device switch.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.PreviewReset()
	}
}

// Session proxies the config panel session builder for the capture presenter.
func (rv *RootView) Session() (timelapse.SessionConfig, error) {
	if rv == nil || rv.ConfigPanel == nil {
		return timelapse.SessionConfig{}, timelapse.ErrInvalidConfig
	}
	return rv.ConfigPanel.Session()
}

// Plan proxies the config panel frame prediction for the status presenter.
func (rv *RootView) Plan() (frames, fps int) {
	if rv == nil || rv.ConfigPanel == nil {
		return 0, 0
	}
	return rv.ConfigPanel.Plan()
}
