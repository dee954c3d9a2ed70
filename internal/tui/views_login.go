package tui

import (
	"strings"

	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Sign In")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.usernameInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")

	if m.loginField == fieldSignInLater {
		b.WriteString(m.styles.HighlightButton.Render("Sign In Later"))
	} else {
		b.WriteString(m.styles.Subtle.Render("  Sign In Later"))
	}
	b.WriteString("\n\n")

	help := m.styles.Help("Tab/↑/↓", "Move", "Enter", "Next", "Ctrl+C", "Quit")
	b.WriteString(help)

	return b.String()
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return m.focusLogin(m.loginField + 1)
		case "shift+tab", "up":
			return m.focusLogin(m.loginField - 1)
		case "enter":
			if m.loginField == fieldSignInLater {
				return m.signInLater()
			}
			return m.focusLogin(m.loginField + 1)
		}
	}

	var cmd tea.Cmd
	switch m.loginField {
	case fieldUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case fieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) focusLogin(f loginField) (tea.Model, tea.Cmd) {
	if f < fieldUsername {
		f = fieldSignInLater
	}
	if f > fieldSignInLater {
		f = fieldUsername
	}
	m.loginField = f

	m.usernameInput.Blur()
	m.passwordInput.Blur()
	switch f {
	case fieldUsername:
		return m, m.usernameInput.Focus()
	case fieldPassword:
		return m, m.passwordInput.Focus()
	}
	return m, nil
}

// signInLater enters the launcher without an account. The login screen
// cannot be shown again afterwards.
func (m Model) signInLater() (tea.Model, tea.Cmd) {
	if err := m.nav.SwitchScreen(nav.ScreenLauncher); err != nil {
		log.Warnf("Cannot leave login screen: %v", err)
		return m, nil
	}
	if m.usernameInput.Value() != "" {
		log.Debug("account sign-in is not available, continuing offline", "user", m.usernameInput.Value())
	}
	m.usernameInput.Blur()
	m.passwordInput.Blur()
	m.passwordInput.SetValue("")
	return m, nil
}
