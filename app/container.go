package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fennrik/lapsecam-go/config"
	"github.com/fennrik/lapsecam-go/domain/camera"
	"github.com/fennrik/lapsecam-go/domain/encode"
	"github.com/fennrik/lapsecam-go/domain/run"
	"github.com/fennrik/lapsecam-go/domain/timelapse"
	"github.com/fennrik/lapsecam-go/ui/model"
	"github.com/fennrik/lapsecam-go/ui/presenter"
	"github.com/fennrik/lapsecam-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Camera     camera.Service
	Scheduler  *timelapse.Scheduler
	Dispatcher *encode.Dispatcher
	Controller *run.Controller
	RootView   *view.RootView
	UI         view.UI

	// Models
	Preview *model.PreviewModel
	Status  *model.StatusModel

	// Presenters
	PreviewPresenter *presenter.PreviewPresenter
	CapturePresenter *presenter.CapturePresenter
	StatusPresenter  *presenter.StatusPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Presenter wiring that depends on
// the built window (device list, callbacks) happens in the app wrapper.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Camera = camera.NewService(logger)
	c.Scheduler = timelapse.NewScheduler(logger, c.Camera)
	c.Dispatcher = encode.NewDispatcher(logger)
	c.Controller = run.NewController(logger, c.Camera, c.Scheduler, c.Dispatcher, func(now time.Time, stamp bool) (timelapse.FrameWriter, error) {
		return timelapse.NewRunStore(outputBase(cfg), now, stamp)
	})

	c.Preview = model.NewPreviewModel(cfg.LivePreview)
	c.Status = model.NewStatusModel()

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	return c
}

// WirePresenters connects presenters to the built view and registers the
// controller hooks. Must run after RootView.Build.
func (c *AppContainer) WirePresenters(scheduleNext func()) {
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Preview, c.Camera, c.RootView)
	c.CapturePresenter = presenter.NewCapturePresenter(c.Controller, c.RootView, c.RootView)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Scheduler, c.Controller, c.RootView, c.Status, c.RootView)
	c.Loop = presenter.NewLoop(c.Controller, c.PreviewPresenter, c.StatusPresenter, scheduleNext)

	c.RootView.SetFlashFunc(c.StatusPresenter.Flash)
	c.Controller.AddListener(c.CapturePresenter.OnRunState)
	c.Controller.AddListener(c.StatusPresenter.OnRunState)

	c.Controller.OnSessionEnd = func(r timelapse.Result) {
		c.Logger.Info("session ended",
			"state", r.State.String(),
			"frames", r.FramesCaptured,
			"skipped", r.SkippedReads,
			"dir", r.Dir,
		)
	}
	c.Controller.OnEncodeEnd = func(r encode.Result) {
		if r.Err != nil {
			c.Logger.Error("encode failed", "dir", r.Job.Dir, "error", r.Err)
			c.StatusPresenter.Flash(fmt.Sprintf("Encode failed: %v", r.Err))
			return
		}
		out := r.Job.OutputPath()
		c.Logger.Info("video ready", "path", out)
		c.StatusPresenter.Flash("Video ready: " + out)
		RevealDir(c.Logger, r.Job.Dir)
	}
}

// outputBase resolves the frame output root: the configured directory, or a
// LapseCam folder under the user home when unset.
func outputBase(cfg *config.Config) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "LapseCam"
	}
	return filepath.Join(home, "LapseCam")
}
