package nav

import (
	"errors"
	"fmt"
)

type Screen int

const (
	ScreenLogin Screen = iota
	ScreenLauncher
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenLauncher:
		return "launcher"
	default:
		return "unknown"
	}
}

type Tab int

const (
	TabHome Tab = iota
	TabVersion
	TabMods
	TabSettings
)

// Tabs in display order.
var Tabs = []Tab{TabHome, TabVersion, TabMods, TabSettings}

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabVersion:
		return "Version"
	case TabMods:
		return "Mods"
	case TabSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Key identifies the tab's content surface for the fade animator.
func (t Tab) Key() string { return "tab/" + t.String() }

var (
	ErrScreenLocked  = errors.New("the login screen cannot be re-entered")
	ErrNotOnLauncher = errors.New("tabs are only available on the launcher screen")
	ErrUnknownTab    = errors.New("unknown tab")
	ErrUnknownScreen = errors.New("unknown screen")
)

// Fader restarts the entry animation of a content surface.
type Fader interface {
	Start(key string)
}

// Machine tracks the active screen and tab. Screen changes are immediate;
// every tab activation restarts that tab's fade.
type Machine struct {
	screen Screen
	tab    Tab
	fader  Fader
}

func NewMachine(fader Fader) *Machine {
	return &Machine{screen: ScreenLogin, tab: TabHome, fader: fader}
}

func (m *Machine) Screen() Screen { return m.screen }

func (m *Machine) Tab() Tab { return m.tab }

func (m *Machine) SwitchScreen(s Screen) error {
	switch s {
	case ScreenLogin:
		if m.screen != ScreenLogin {
			return ErrScreenLocked
		}
		return nil
	case ScreenLauncher:
		m.screen = ScreenLauncher
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownScreen, s)
	}
}

func (m *Machine) SelectTab(t Tab) error {
	if m.screen != ScreenLauncher {
		return ErrNotOnLauncher
	}
	if t < TabHome || t > TabSettings {
		return fmt.Errorf("%w: %d", ErrUnknownTab, t)
	}
	m.tab = t
	if m.fader != nil {
		m.fader.Start(t.Key())
	}
	return nil
}

func (m *Machine) NextTab() error {
	return m.SelectTab(Tab((int(m.tab) + 1) % len(Tabs)))
}

func (m *Machine) PrevTab() error {
	return m.SelectTab(Tab((int(m.tab) + len(Tabs) - 1) % len(Tabs)))
}
