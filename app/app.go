package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/fennrik/lapsecam-go/config"
	"github.com/fennrik/lapsecam-go/debug"
	"github.com/fennrik/lapsecam-go/domain/camera"
	"github.com/fennrik/lapsecam-go/ui/theme"
)

const (
	tick = 100 * time.Millisecond

	debugLogInterval = 2 * time.Second
)

type app struct {
	config    *config.Config
	cfgPath   string
	logger    *slog.Logger
	container *AppContainer
	devices   []camera.Descriptor
	afterID   string
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{config: cfg, cfgPath: cfgPath, logger: logger}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

func (a *app) Start() {
	theme.InitStyles()

	a.devices = camera.Probe(a.config.MaxProbedDevices)
	a.logger.Info("camera probe finished", "found", len(a.devices))

	a.container = BuildContainer(a.config, a.logger, a.cfgPath)
	c := a.container

	c.RootView.Build(a.devices,
		func() { c.CapturePresenter.Toggle(time.Now()) },
		a.exitHandler,
		a.deviceChanged,
		func(cfg *config.Config) { c.PreviewPresenter.SetEnabled(cfg.LivePreview) },
	)
	c.WirePresenters(a.scheduleUpdate)

	if a.config.Debug {
		debug.StartMemLogger(debugLogInterval, a.logger)
		debug.StartGoroutineLogger(debugLogInterval, a.logger)
	}

	if d, ok := a.initialDevice(); ok {
		if err := c.Controller.StartPreview(d); err != nil {
			a.logger.Error("initial preview failed", "device", d.ID, "error", err)
			c.RootView.ShowStatus(fmt.Sprintf("Camera unavailable: %v", err))
		}
	} else {
		c.RootView.ShowStatus("No camera found")
	}
	if !a.config.LivePreview {
		c.PreviewPresenter.SetEnabled(false)
	}

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

// initialDevice prefers the configured device id, falling back to the first
// probed camera.
func (a *app) initialDevice() (camera.Descriptor, bool) {
	for _, d := range a.devices {
		if d.ID == a.config.DeviceID {
			return d, true
		}
	}
	if len(a.devices) > 0 {
		return a.devices[0], true
	}
	return camera.Descriptor{}, false
}

// deviceChanged handles a dropdown selection. Switching while capturing is
// rejected by the controller; the message lands on the footer.
func (a *app) deviceChanged(id int) {
	c := a.container
	d := camera.Descriptor{ID: id}
	for _, probed := range a.devices {
		if probed.ID == id {
			d = probed
			break
		}
	}
	if err := c.Controller.SwitchDevice(d); err != nil {
		a.logger.Warn("device switch rejected", "device", id, "error", err)
		c.RootView.ShowStatus(err.Error())
		return
	}
	a.config.DeviceID = id
	if err := a.config.Save(a.cfgPath); err != nil {
		a.logger.Error("config save failed", "error", err)
	}
	c.PreviewPresenter.OnDeviceSwitched()
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.container != nil {
		a.container.Controller.Shutdown()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.container.Loop.Tick() })
}
