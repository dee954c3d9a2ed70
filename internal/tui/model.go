package tui

import (
	"github.com/AvengeMedia/danklauncher/internal/config"
	"github.com/AvengeMedia/danklauncher/internal/fade"
	"github.com/AvengeMedia/danklauncher/internal/launcher"
	"github.com/AvengeMedia/danklauncher/internal/nav"
	"github.com/AvengeMedia/danklauncher/internal/progress"
	"github.com/AvengeMedia/danklauncher/internal/task"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

const logTailLines = 8

// loaderChoices starts with None so that nothing is selected until the user
// picks a loader.
var loaderChoices = append([]launcher.ModLoader{launcher.ModLoaderNone}, launcher.ModLoaders...)

type Options struct {
	Config     *config.Config
	Controller *launcher.Controller
	Nav        *nav.Machine
	Animator   *fade.Animator
	Log        *progress.Log
	Fs         afero.Fs
	TaskEvents <-chan task.Event
	Frames     <-chan fade.Frame
}

// Model owns all UI state. Task and fade goroutines only reach it through
// the channels drained by listenForTaskEvents and listenForFrames.
type Model struct {
	cfg        *config.Config
	controller *launcher.Controller
	nav        *nav.Machine
	animator   *fade.Animator
	log        *progress.Log
	fs         afero.Fs
	taskEvents <-chan task.Event
	frames     <-chan fade.Frame

	styles      Styles
	spinner     spinner.Model
	progressBar bprogress.Model
	width       int
	height      int

	usernameInput textinput.Model
	passwordInput textinput.Model
	loginField    loginField

	loaderIdx  int
	versionIdx int

	draft         launcher.Settings
	javaInput     textinput.Model
	settingsField settingsField

	mods    []string
	modsErr error

	quitting bool
}

func NewModel(opts Options) Model {
	styles := NewStyles(PurpleTheme())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Width = 30
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 30

	settings := opts.Controller.Settings()
	java := textinput.New()
	java.Placeholder = "java (from PATH)"
	java.Width = 40
	java.SetValue(settings.JavaPath)

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return Model{
		cfg:           opts.Config,
		controller:    opts.Controller,
		nav:           opts.Nav,
		animator:      opts.Animator,
		log:           opts.Log,
		fs:            fs,
		taskEvents:    opts.TaskEvents,
		frames:        opts.Frames,
		styles:        styles,
		spinner:       s,
		progressBar:   styles.NewThemedProgress(50),
		usernameInput: username,
		passwordInput: password,
		draft:         settings,
		javaInput:     java,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.listenForTaskEvents(),
		m.listenForFrames(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(msg.Width-4, 60)
		return m, nil
	case taskEventMsg:
		// Failures have already gone through the reporter.
		_ = m.controller.HandleEvent(msg.event)
		return m, m.listenForTaskEvents()
	case fadeFrameMsg:
		m.animator.Apply(msg.frame)
		return m, m.listenForFrames()
	case modsListedMsg:
		m.mods = msg.names
		m.modsErr = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
	}

	if m.nav.Screen() == nav.ScreenLogin {
		return m.updateLogin(msg)
	}
	return m.updateLauncher(msg)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.nav.Screen() == nav.ScreenLogin {
		return m.viewLogin()
	}
	return m.viewLauncher()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.controller.Close()
	m.animator.Close()
	return m, tea.Quit
}

func (m Model) listenForTaskEvents() tea.Cmd {
	if m.taskEvents == nil {
		return nil
	}
	events := m.taskEvents
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return taskEventMsg{event: ev}
	}
}

func (m Model) listenForFrames() tea.Cmd {
	if m.frames == nil {
		return nil
	}
	frames := m.frames
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return nil
		}
		return fadeFrameMsg{frame: frame}
	}
}

func (m Model) selection() launcher.Selection {
	sel := launcher.Selection{ModLoader: loaderChoices[m.loaderIdx]}
	if m.versionIdx < len(m.cfg.Versions) {
		sel.Version = m.cfg.Versions[m.versionIdx]
	}
	return sel
}
