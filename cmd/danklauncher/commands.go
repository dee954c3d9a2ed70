package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/config"
	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/AvengeMedia/danklauncher/internal/fade"
	"github.com/AvengeMedia/danklauncher/internal/launcher"
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/nav"
	"github.com/AvengeMedia/danklauncher/internal/notify"
	"github.com/AvengeMedia/danklauncher/internal/progress"
	"github.com/AvengeMedia/danklauncher/internal/task"
	"github.com/AvengeMedia/danklauncher/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "danklauncher",
	Short: "DankLauncher",
	Long:  "DankLauncher\n\nInstall a mod loader for a Minecraft version and launch the game.\nRun without a subcommand for the interactive launcher.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInteractiveMode(cmd); err != nil {
			fmt.Printf("Error running program: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   runVersion,
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show storage and config locations",
	Run:   runPaths,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a mod loader without the interactive UI",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHeadless(cmd, false); err != nil {
			os.Exit(1)
		}
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Install a mod loader and launch Minecraft without the interactive UI",
	Long:  "Install a mod loader and launch Minecraft without the interactive UI.\nInstall state is not kept between runs, so the loader is installed first.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHeadless(cmd, true); err != nil {
			os.Exit(1)
		}
	},
}

// runInteractiveMode returns instead of exiting so its deferred cleanup runs.
func runInteractiveMode(cmd *cobra.Command) error {
	cfg, fs := mustLoadConfig(cmd)

	logFile, err := fs.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warnf("Cannot open log file %s: %v", cfg.LogPath(), err)
	} else {
		log.Redirect(logFile)
		defer logFile.Close()
	}

	events := make(chan task.Event, 64)
	frames := make(chan fade.Frame, 16)
	statusLog := progress.NewLog()

	reporter, closeNotifier := withNotifier(cmd, statusLog)
	defer closeNotifier()

	controller := newController(cfg, fs, reporter, events)
	defer controller.Close()
	animator := fade.New(clockwork.NewRealClock(), frames, cfg.Fade)
	defer animator.Close()

	model := tui.NewModel(tui.Options{
		Config:     cfg,
		Controller: controller,
		Nav:        nav.NewMachine(animator),
		Animator:   animator,
		Log:        statusLog,
		Fs:         fs,
		TaskEvents: events,
		Frames:     frames,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("DankLauncher v%s\n", Version)
}

func runPaths(cmd *cobra.Command, args []string) {
	cfg, _ := mustLoadConfig(cmd)

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	fmt.Printf("Storage root: %s\n", cfg.Root)
	fmt.Printf("Mods folder:  %s\n", cfg.ModsDir)
	fmt.Printf("Log file:     %s\n", cfg.LogPath())
	fmt.Printf("Config file:  %s\n", configPath)
}

// runHeadless reports failures through the reporter and returns them, so
// the notifier and the active task are closed before the process exits.
func runHeadless(cmd *cobra.Command, launch bool) error {
	cfg, fs := mustLoadConfig(cmd)

	sel, err := selectionFromFlags(cmd, cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan task.Event, 64)
	reporter, closeNotifier := withNotifier(cmd, progress.NewWriter(os.Stdout))
	defer closeNotifier()

	controller := newController(cfg, fs, reporter, events)
	defer controller.Close()

	return runWorkflow(ctx, controller, events, sel, launch)
}

// runWorkflow installs sel and, when launch is set, launches it.
func runWorkflow(ctx context.Context, controller *launcher.Controller, events <-chan task.Event, sel launcher.Selection, launch bool) error {
	if err := controller.RequestInstall(sel); err != nil {
		return err
	}
	if err := drive(ctx, controller, events); err != nil {
		return err
	}
	if !launch {
		return nil
	}

	if err := controller.RequestLaunch(sel); err != nil {
		return err
	}
	return drive(ctx, controller, events)
}

// drive applies task events until the controller has no active task.
func drive(ctx context.Context, controller *launcher.Controller, events <-chan task.Event) error {
	for controller.Busy() {
		select {
		case <-ctx.Done():
			controller.Close()
			return ctx.Err()
		case ev := <-events:
			if err := controller.HandleEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectionFromFlags(cmd *cobra.Command, cfg *config.Config) (launcher.Selection, error) {
	loaderFlag, _ := cmd.Flags().GetString("loader")
	versionFlag, _ := cmd.Flags().GetString("version")

	loader, err := launcher.ParseModLoader(loaderFlag)
	if err != nil {
		return launcher.Selection{}, errdefs.Wrap(errdefs.ErrTypeInvalidSelection, "invalid --loader", err)
	}

	version := versionFlag
	if version == "" {
		version = cfg.Versions[len(cfg.Versions)-1]
	}
	if !cfg.HasVersion(version) {
		return launcher.Selection{}, errdefs.NewCustomError(errdefs.ErrTypeInvalidSelection,
			fmt.Sprintf("unknown version %s (available: %v)", version, cfg.Versions))
	}

	return launcher.Selection{ModLoader: loader, Version: version}, nil
}

func mustLoadConfig(cmd *cobra.Command) (*config.Config, afero.Fs) {
	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		log.SetDebug(true)
	}

	fs := afero.NewOsFs()
	cfg, err := config.Resolve(config.ResolveOptions{Root: root, ConfigPath: configPath, Fs: fs})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug {
		log.SetDebug(true)
	}

	if err := config.EnsureDirectories(fs, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, fs
}

func newController(cfg *config.Config, fs afero.Fs, reporter progress.Reporter, events chan<- task.Event) *launcher.Controller {
	clock := clockwork.NewRealClock()
	store := artifact.NewStore(fs, cfg.Root)

	settings := launcher.DefaultSettings()
	settings.JavaPath = cfg.JavaPath

	return launcher.NewController(launcher.Options{
		Reporter:   reporter,
		Runner:     task.NewRunner(events),
		Store:      store,
		Installer:  launcher.SimulatedInstaller{Clock: clock, Cadence: cfg.Install},
		Downloader: launcher.SimulatedDownloader{Clock: clock, Cadence: cfg.Download, Store: store},
		Settings:   settings,
	})
}

func withNotifier(cmd *cobra.Command, base progress.Reporter) (progress.Reporter, func()) {
	enabled, _ := cmd.Flags().GetBool("notify")
	if !enabled {
		return base, func() {}
	}

	n, err := notify.New(config.AppName)
	if err != nil {
		log.Debugf("Desktop notifications disabled: %v", err)
		return base, func() {}
	}
	return progress.Tee{base, notify.NewReporter(n, config.AppName, launcher.Milestones)}, func() { _ = n.Close() }
}
