package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/task"
	"github.com/jonboulle/clockwork"
)

type Installer interface {
	Install(ctx context.Context, sel Selection, report func(percent int)) error
}

type Downloader interface {
	// Download must leave the artifact for version present on success.
	Download(ctx context.Context, version string, report func(percent int)) error
}

// SimulatedInstaller pretends to install a mod loader by ticking through
// its cadence.
type SimulatedInstaller struct {
	Clock   clockwork.Clock
	Cadence task.Cadence
}

func (i SimulatedInstaller) Install(ctx context.Context, sel Selection, report func(int)) error {
	log.Debug("simulating mod loader install", "loader", sel.ModLoader, "version", sel.Version)
	return task.Simulate(i.Clock, i.Cadence)(ctx, report)
}

// SimulatedDownloader ticks through its cadence and then writes a
// placeholder artifact.
type SimulatedDownloader struct {
	Clock   clockwork.Clock
	Cadence task.Cadence
	Store   *artifact.Store
}

func (d SimulatedDownloader) Download(ctx context.Context, version string, report func(int)) error {
	log.Debug("simulating download", "version", version)
	if err := task.Simulate(d.Clock, d.Cadence)(ctx, report); err != nil {
		return err
	}
	rec, err := d.Store.Create(version)
	if err != nil {
		return err
	}
	log.Debug("placeholder artifact ready", "path", rec.Path)
	return nil
}

// LaunchRequest carries everything the game process needs. Arguments are
// passed as named flags so their order carries no meaning.
type LaunchRequest struct {
	Artifact  string
	Version   string
	ModLoader ModLoader
	Dir       string
	Java      string
	MemoryMB  int
}

func (r LaunchRequest) Args() []string {
	var args []string
	if r.MemoryMB > 0 {
		args = append(args, fmt.Sprintf("-Xmx%dM", r.MemoryMB))
	}
	return append(args,
		"-jar", r.Artifact,
		"--version", r.Version,
		"--modloader", r.ModLoader.String(),
	)
}

func (r LaunchRequest) Binary() string {
	if r.Java == "" {
		return "java"
	}
	return r.Java
}

type Spawner interface {
	// Spawn starts the process and returns without waiting for it.
	Spawn(req LaunchRequest) error
}

// ExecSpawner starts the game in its own session. The exit status is only
// logged; a background Wait reaps the child so no zombie is left behind.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(req LaunchRequest) error {
	cmd := exec.Command(req.Binary(), req.Args()...)
	cmd.Dir = req.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", req.Binary(), err)
	}

	pid := cmd.Process.Pid
	log.Info("game process started", "pid", pid, "version", req.Version, "loader", req.ModLoader)
	go func() {
		err := cmd.Wait()
		log.Debug("game process exited", "pid", pid, "err", err)
	}()
	return nil
}
