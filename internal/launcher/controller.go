package launcher

import (
	"context"
	"fmt"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/progress"
	"github.com/AvengeMedia/danklauncher/internal/task"
)

// Starter is the part of task.Runner the controller depends on.
type Starter interface {
	Start(kind task.Kind, label string, job task.Job) *task.Handle
}

type Options struct {
	Reporter   progress.Reporter
	Runner     Starter
	Store      *artifact.Store
	Installer  Installer
	Downloader Downloader
	Spawner    Spawner
	Settings   Settings
}

// Controller sequences install, download and launch. It is not safe for
// concurrent use: every method, including HandleEvent, must be called from
// the goroutine that owns UI state.
type Controller struct {
	reporter   progress.Reporter
	runner     Starter
	store      *artifact.Store
	installer  Installer
	downloader Downloader
	spawner    Spawner
	settings   Settings

	state       InstallationState
	lastFailure error

	active        *task.Handle
	pendingLaunch *Selection
}

func NewController(opts Options) *Controller {
	settings := opts.Settings
	if settings.MemoryMB == 0 {
		settings.MemoryMB = DefaultMemoryMB
	}
	spawner := opts.Spawner
	if spawner == nil {
		spawner = ExecSpawner{}
	}

	return &Controller{
		reporter:   opts.Reporter,
		runner:     opts.Runner,
		store:      opts.Store,
		installer:  opts.Installer,
		downloader: opts.Downloader,
		spawner:    spawner,
		settings:   settings,
		state:      NotInstalled,
	}
}

func (c *Controller) State() InstallationState { return c.state }

// Status is State, except that a failed install shows as Failed until the
// next install request.
func (c *Controller) Status() InstallationState {
	if c.state == NotInstalled && c.lastFailure != nil {
		return Failed
	}
	return c.state
}

// Busy reports whether a task is outstanding. Install and launch actions
// are refused while it is true.
func (c *Controller) Busy() bool { return c.active != nil }

func (c *Controller) Settings() Settings { return c.settings }

func (c *Controller) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return c.reject(err)
	}
	c.settings = s
	log.Info("settings applied", "auto_update", s.AutoUpdate, "memory_mb", s.MemoryMB, "java", s.JavaPath)
	return nil
}

func (c *Controller) RequestInstall(sel Selection) error {
	if err := sel.Validate(); err != nil {
		return c.reject(err)
	}
	if c.active != nil {
		return c.reject(errdefs.ErrBusy)
	}

	c.lastFailure = nil
	c.reporter.Clear()
	c.reporter.AppendLog(fmt.Sprintf("Installing %s...", sel.ModLoader))

	// Installed never goes back; a repeat install runs without leaving it.
	if c.state != Installed {
		c.state = Installing
	}

	installer := c.installer
	c.active = c.runner.Start(task.KindInstall, "Installation", func(ctx context.Context, report func(int)) error {
		return installer.Install(ctx, sel, report)
	})
	log.Info("install requested", "loader", sel.ModLoader, "version", sel.Version)
	return nil
}

func (c *Controller) RequestLaunch(sel Selection) error {
	if err := sel.Validate(); err != nil {
		return c.reject(err)
	}
	if c.state != Installed {
		return c.reject(errdefs.ErrNotInstalled)
	}
	if c.active != nil {
		return c.reject(errdefs.ErrBusy)
	}

	c.reporter.AppendLog(fmt.Sprintf("Launching Minecraft %s with %s...", sel.Version, sel.ModLoader))

	rec, err := c.store.Lookup(sel.Version)
	if err != nil {
		return c.reject(errdefs.Wrap(errdefs.ErrTypeLaunchSpawn, "failed to inspect local game files", err))
	}
	if rec.Present {
		return c.launch(sel)
	}

	c.reporter.AppendLog(fmt.Sprintf("Minecraft %s not found locally. Downloading...", sel.Version))
	pending := sel
	c.pendingLaunch = &pending

	downloader := c.downloader
	version := sel.Version
	c.active = c.runner.Start(task.KindDownload, "Download", func(ctx context.Context, report func(int)) error {
		return downloader.Download(ctx, version, report)
	})
	return nil
}

// HandleEvent applies one event drained from the task queue. Events from
// tasks other than the active one are dropped. The returned error is the
// workflow failure the event concluded with, if any; it has already been
// reported.
func (c *Controller) HandleEvent(ev task.Event) error {
	if c.active == nil || ev.TaskID() != c.active.ID() {
		log.Debug("dropping event from inactive task", "id", ev.TaskID())
		return nil
	}

	switch ev := ev.(type) {
	case task.ProgressEvent:
		c.reporter.SetProgress(ev.Percent)
		c.reporter.AppendLog(ev.Message)
	case task.DoneEvent:
		c.active = nil
		switch ev.Kind {
		case task.KindInstall:
			return c.finishInstall(ev.Err)
		case task.KindDownload:
			return c.finishDownload(ev.Err)
		}
	}
	return nil
}

// Close aborts the outstanding task, if any. Used on shutdown.
func (c *Controller) Close() {
	if c.active == nil {
		return
	}
	c.active.Abort()
	c.active = nil
	c.pendingLaunch = nil
	if c.state == Installing {
		c.state = NotInstalled
	}
}

func (c *Controller) finishInstall(taskErr error) error {
	if taskErr != nil {
		err := errdefs.Wrap(errdefs.ErrTypeInstallationFailed, "installation failed", taskErr)
		if c.state == Installing {
			c.state = NotInstalled
			c.lastFailure = err
		}
		log.Error("install failed", "err", taskErr)
		c.reporter.Notice(err)
		return err
	}

	if c.state == Installing {
		c.state = Installed
	}
	c.reporter.AppendLog(MsgInstallComplete)
	log.Info("install complete")
	return nil
}

func (c *Controller) finishDownload(taskErr error) error {
	pending := c.pendingLaunch
	c.pendingLaunch = nil

	if taskErr != nil {
		err := errdefs.Wrap(errdefs.ErrTypeDownloadFailed, "download failed", taskErr)
		log.Error("download failed", "err", taskErr)
		c.reporter.Notice(err)
		return err
	}

	c.reporter.AppendLog(MsgDownloadComplete)
	if pending == nil {
		return nil
	}
	return c.launch(*pending)
}

func (c *Controller) launch(sel Selection) error {
	req := LaunchRequest{
		Artifact:  artifact.Name(sel.Version),
		Version:   sel.Version,
		ModLoader: sel.ModLoader,
		Dir:       c.store.Root(),
		Java:      c.settings.JavaPath,
		MemoryMB:  c.settings.MemoryMB,
	}

	if err := c.spawner.Spawn(req); err != nil {
		err = errdefs.Wrap(errdefs.ErrTypeLaunchSpawn, "error launching Minecraft", err)
		log.Error("launch failed", "err", err)
		c.reporter.AppendLog(MsgLaunchError)
		c.reporter.Notice(err)
		return err
	}

	c.reporter.AppendLog(MsgLaunched)
	return nil
}

func (c *Controller) reject(err error) error {
	log.Warn("request rejected", "reason", err)
	c.reporter.Notice(err)
	return err
}
