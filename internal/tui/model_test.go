package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/config"
	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/AvengeMedia/danklauncher/internal/fade"
	"github.com/AvengeMedia/danklauncher/internal/launcher"
	"github.com/AvengeMedia/danklauncher/internal/nav"
	"github.com/AvengeMedia/danklauncher/internal/progress"
	"github.com/AvengeMedia/danklauncher/internal/task"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instantInstaller struct{ err error }

func (i instantInstaller) Install(context.Context, launcher.Selection, func(int)) error {
	return i.err
}

type instantDownloader struct{ store *artifact.Store }

func (d instantDownloader) Download(_ context.Context, version string, _ func(int)) error {
	_, err := d.store.Create(version)
	return err
}

type recordingSpawner struct{ reqs []launcher.LaunchRequest }

func (s *recordingSpawner) Spawn(req launcher.LaunchRequest) error {
	s.reqs = append(s.reqs, req)
	return nil
}

type harness struct {
	model   Model
	fs      afero.Fs
	clock   *clockwork.FakeClock
	events  chan task.Event
	frames  chan fade.Frame
	log     *progress.Log
	spawner *recordingSpawner
	ctrl    *launcher.Controller
	anim    *fade.Animator
}

func newHarness(t *testing.T, installErr error) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	cfg := config.Defaults()
	cfg.Root = "/data/DankLauncher"
	cfg.ModsDir = cfg.Root + "/mods"
	require.NoError(t, config.EnsureDirectories(fs, cfg))

	h := &harness{
		fs:      fs,
		clock:   clockwork.NewFakeClock(),
		events:  make(chan task.Event, 256),
		frames:  make(chan fade.Frame, 64),
		log:     progress.NewLog(),
		spawner: &recordingSpawner{},
	}

	store := artifact.NewStore(fs, cfg.Root)
	h.ctrl = launcher.NewController(launcher.Options{
		Reporter:   h.log,
		Runner:     task.NewRunner(h.events),
		Store:      store,
		Installer:  instantInstaller{err: installErr},
		Downloader: instantDownloader{store: store},
		Spawner:    h.spawner,
		Settings:   launcher.DefaultSettings(),
	})
	h.anim = fade.New(h.clock, h.frames, cfg.Fade)
	t.Cleanup(func() {
		h.ctrl.Close()
		h.anim.Close()
	})

	h.model = NewModel(Options{
		Config:     cfg,
		Controller: h.ctrl,
		Nav:        nav.NewMachine(h.anim),
		Animator:   h.anim,
		Log:        h.log,
		Fs:         fs,
		TaskEvents: h.events,
		Frames:     h.frames,
	})
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := h.model.Update(msg)
	m, ok := updated.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

func (h *harness) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(t, keyMsg(k))
	}
	return cmd
}

// drain feeds queued task events to the model until the active task ends.
func (h *harness) drain(t *testing.T) {
	t.Helper()
	for h.ctrl.Busy() {
		select {
		case ev := <-h.events:
			h.send(t, taskEventMsg{event: ev})
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for task events")
		}
	}
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	h.press(t, "enter", "enter", "enter")
	require.Equal(t, nav.ScreenLauncher, h.model.nav.Screen())
}

func TestSignInLater(t *testing.T) {
	h := newHarness(t, nil)
	assert.Contains(t, h.model.View(), "Sign In Later")

	h.press(t, "s", "t", "e", "v", "e")
	assert.Equal(t, "steve", h.model.usernameInput.Value())

	h.press(t, "enter", "h", "u", "n", "t", "e", "r", "2")
	assert.Equal(t, "hunter2", h.model.passwordInput.Value())
	assert.Equal(t, nav.ScreenLogin, h.model.nav.Screen())

	h.press(t, "enter", "enter")
	assert.Equal(t, nav.ScreenLauncher, h.model.nav.Screen())
	assert.Empty(t, h.model.passwordInput.Value())
	assert.Equal(t, nav.TabHome, h.model.nav.Tab())
	assert.False(t, h.anim.Running(nav.TabHome.Key()), "screen switches do not animate")
}

func TestTabSwitchingStartsFade(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)

	h.press(t, "2")
	assert.Equal(t, nav.TabVersion, h.model.nav.Tab())
	assert.True(t, h.anim.Running(nav.TabVersion.Key()))
	assert.Equal(t, 0.0, h.anim.Opacity(nav.TabVersion.Key()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
	h.clock.Advance(fade.DefaultOptions.Interval)

	frame := <-h.frames
	h.send(t, fadeFrameMsg{frame: frame})
	assert.InDelta(t, 0.05, h.anim.Opacity(nav.TabVersion.Key()), 1e-9)

	h.press(t, "tab")
	assert.Equal(t, nav.TabMods, h.model.nav.Tab())
	h.press(t, "shift+tab", "shift+tab", "shift+tab")
	assert.Equal(t, nav.TabSettings, h.model.nav.Tab())
}

func TestInstallWithoutLoaderShowsNotice(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)

	h.press(t, "i")
	assert.False(t, h.ctrl.Busy())
	assert.ErrorIs(t, h.log.PendingNotice(), errdefs.ErrInvalidSelection)
	assert.Contains(t, h.model.View(), "Press Enter to dismiss")

	h.press(t, "enter")
	assert.NoError(t, h.log.PendingNotice())
	assert.NotContains(t, h.model.View(), "Press Enter to dismiss")
}

func TestInstallThenPlay(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)

	h.press(t, "right", "down")
	sel := h.model.selection()
	assert.Equal(t, launcher.ModLoaderForge, sel.ModLoader)
	assert.Equal(t, launcher.DefaultVersions[1], sel.Version)

	h.press(t, "i")
	require.True(t, h.ctrl.Busy())
	h.drain(t)

	assert.Equal(t, launcher.Installed, h.ctrl.State())
	assert.Equal(t, 100, h.log.Percent())
	assert.Contains(t, h.log.Lines(), launcher.MsgInstallComplete)

	h.press(t, "p")
	h.drain(t)

	require.Len(t, h.spawner.reqs, 1)
	assert.Equal(t, "minecraft-1.17.1.jar", h.spawner.reqs[0].Artifact)
	assert.Equal(t, launcher.ModLoaderForge, h.spawner.reqs[0].ModLoader)
	assert.Contains(t, h.log.Lines(), launcher.MsgDownloadComplete)
	assert.Contains(t, h.log.Lines(), launcher.MsgLaunched)
	assert.Contains(t, h.model.View(), launcher.MsgLaunched)
}

func TestInstallFailureShowsFailedStatus(t *testing.T) {
	h := newHarness(t, errors.New("disk full"))
	h.signIn(t)

	h.press(t, "left", "i")
	assert.Equal(t, launcher.ModLoaderFabric, h.model.selection().ModLoader)
	h.drain(t)

	assert.Equal(t, launcher.Failed, h.ctrl.Status())
	assert.ErrorIs(t, h.log.PendingNotice(), errdefs.ErrInstallationFailed)
	assert.Contains(t, h.model.View(), "failed")
}

func TestSettingsSave(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)

	h.press(t, "4")
	assert.Equal(t, fieldAutoUpdate, h.model.settingsField)

	h.press(t, " ")
	h.press(t, "down", "right", "right")
	assert.Equal(t, launcher.DefaultMemoryMB+2*launcher.MemoryStepMB, h.model.draft.MemoryMB)

	h.press(t, "down")
	require.True(t, h.model.editingJava())
	h.press(t, "/", "j", "q")
	assert.Equal(t, "/jq", h.model.javaInput.Value(), "letters go to the input while editing")

	h.press(t, "enter", "enter")
	got := h.ctrl.Settings()
	assert.True(t, got.AutoUpdate)
	assert.Equal(t, launcher.DefaultMemoryMB+2*launcher.MemoryStepMB, got.MemoryMB)
	assert.Equal(t, "/jq", got.JavaPath)
	assert.Contains(t, h.log.Lines(), "Settings saved.")
}

func TestMemoryIsClamped(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)

	h.press(t, "4", "down")
	for i := 0; i < 40; i++ {
		h.press(t, "left")
	}
	assert.Equal(t, launcher.MinMemoryMB, h.model.draft.MemoryMB)
}

func TestModsTabListsFolder(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)
	require.NoError(t, afero.WriteFile(h.fs, "/data/DankLauncher/mods/sodium.jar", nil, 0o644))

	cmd := h.press(t, "3")
	require.NotNil(t, cmd)
	h.send(t, cmd())

	assert.Equal(t, []string{"sodium.jar"}, h.model.mods)
	assert.Contains(t, h.model.View(), "sodium.jar")
}

func TestQuitStopsBackgroundWork(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)
	h.press(t, "2")
	require.True(t, h.anim.Running(nav.TabVersion.Key()))

	cmd := h.press(t, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, h.anim.Running(nav.TabVersion.Key()))
	assert.Empty(t, h.model.View())
}

func TestListenForTaskEvents(t *testing.T) {
	h := newHarness(t, nil)
	ev := task.DoneEvent{Kind: task.KindInstall}
	h.events <- ev

	msg := h.model.listenForTaskEvents()()
	assert.Equal(t, taskEventMsg{event: ev}, msg)

	close(h.events)
	assert.Nil(t, h.model.listenForTaskEvents()())
}

func TestStatusAndLogLineStyles(t *testing.T) {
	h := newHarness(t, nil)
	h.signIn(t)
	h.press(t, "right")

	view := h.model.View()
	assert.Contains(t, view, "not installed · Forge "+launcher.DefaultVersions[0])
	assert.Contains(t, view, "Switch tab")

	theme := PurpleTheme()
	tests := []struct {
		line string
		want string
	}{
		{launcher.MsgInstallComplete, theme.Success},
		{launcher.MsgDownloadComplete, theme.Success},
		{launcher.MsgLaunched, theme.Success},
		{launcher.MsgLaunchError, theme.Error},
		{"Error: installation failed", theme.Error},
		{"Installation progress: 40%", theme.Subtle},
	}
	for _, tt := range tests {
		assert.Equal(t, lipgloss.Color(tt.want), h.model.logLineStyle(tt.line).GetForeground(), tt.line)
	}
}
