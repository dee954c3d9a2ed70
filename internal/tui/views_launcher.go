package tui

import (
	"fmt"
	"strings"

	"github.com/AvengeMedia/danklauncher/internal/launcher"
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/AvengeMedia/danklauncher/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
)

type contentStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	subtle   lipgloss.Style
}

func (m Model) contentStyles(opacity float64) contentStyles {
	if opacity >= 1 {
		return contentStyles{normal: m.styles.Normal, selected: m.styles.SelectedOption, subtle: m.styles.Subtle}
	}
	faded := m.styles.Faded(opacity)
	return contentStyles{normal: faded, selected: faded.Bold(true), subtle: faded}
}

func (m Model) viewLauncher() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	tab := m.nav.Tab()
	st := m.contentStyles(m.animator.Opacity(tab.Key()))
	switch tab {
	case nav.TabHome:
		b.WriteString(m.renderHome(st))
	case nav.TabVersion:
		b.WriteString(m.renderVersions(st))
	case nav.TabMods:
		b.WriteString(m.renderMods(st))
	case nav.TabSettings:
		b.WriteString(m.renderSettings(st))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())

	if err := m.log.PendingNotice(); err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render("✗ " + err.Error() + "\n\nPress Enter to dismiss"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.styles.Help("Tab/1-4", "Switch tab", "i", "Install", "p", "Play", "q", "Quit")
	b.WriteString(help)

	return b.String()
}

func (m Model) renderTabBar() string {
	tabs := make([]string, 0, len(nav.Tabs))
	for i, t := range nav.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.nav.Tab() {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderHome(st contentStyles) string {
	var b strings.Builder
	sel := m.selection()

	loader := "Select a mod loader"
	if sel.ModLoader != launcher.ModLoaderNone {
		loader = sel.ModLoader.String()
	}
	b.WriteString(st.normal.Render("Mod loader:  "))
	b.WriteString(st.selected.Render("◀ " + loader + " ▶"))
	b.WriteString("\n")
	b.WriteString(st.normal.Render("Version:     "))
	b.WriteString(st.selected.Render(sel.Version))
	b.WriteString("\n")
	b.WriteString(st.normal.Render("Status:      " + m.controller.Status().String()))
	b.WriteString("\n\n")
	b.WriteString(st.subtle.Render("←/→: Mod loader, ↑/↓: Version"))

	return b.String()
}

func (m Model) renderVersions(st contentStyles) string {
	var b strings.Builder
	for i, v := range m.cfg.Versions {
		if i == m.versionIdx {
			b.WriteString(st.selected.Render("▶ " + v))
		} else {
			b.WriteString(st.normal.Render("  " + v))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.subtle.Render("↑/↓: Select version"))
	return b.String()
}

func (m Model) renderMods(st contentStyles) string {
	var b strings.Builder
	b.WriteString(st.subtle.Render("Mods folder: " + m.cfg.ModsDir))
	b.WriteString("\n\n")

	switch {
	case m.modsErr != nil:
		b.WriteString(m.styles.Error.Render("Cannot read mods folder: " + m.modsErr.Error()))
	case len(m.mods) == 0:
		b.WriteString(st.normal.Render("No mods installed."))
	default:
		for _, name := range m.mods {
			b.WriteString(st.normal.Render("• " + name))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(st.subtle.Render("r: Refresh"))
	return b.String()
}

func (m Model) renderSettings(st contentStyles) string {
	var b strings.Builder

	row := func(f settingsField, label, value string) {
		cursor := "  "
		style := st.normal
		if f == m.settingsField {
			cursor = "▶ "
			style = st.selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-14s", cursor, label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	autoUpdate := "[ ]"
	if m.draft.AutoUpdate {
		autoUpdate = "[x]"
	}
	row(fieldAutoUpdate, "Auto-update", st.normal.Render(autoUpdate))
	row(fieldMemory, "Memory", st.normal.Render(fmt.Sprintf("◀ %d MB ▶", m.draft.MemoryMB)))
	row(fieldJavaPath, "Java", m.javaInput.View())
	b.WriteString("\n")

	if m.settingsField == fieldSave {
		b.WriteString(m.styles.HighlightButton.Render("Save"))
	} else {
		b.WriteString(st.subtle.Render("  Save"))
	}
	b.WriteString("\n\n")
	b.WriteString(st.subtle.Render("↑/↓: Move, ←/→: Adjust, Space: Toggle, Enter: Save"))
	return b.String()
}

func (m Model) renderStatus() string {
	var b strings.Builder

	sel := m.selection()
	status := fmt.Sprintf("%s · %s %s", m.controller.Status(), sel.ModLoader, sel.Version)
	b.WriteString(m.styles.StatusBar.Render(status))
	b.WriteString("\n")

	if m.controller.Busy() {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.progressBar.ViewAs(float64(m.log.Percent()) / 100))
	b.WriteString("\n")

	for _, line := range m.log.Tail(logTailLines) {
		b.WriteString(m.logLineStyle(line).Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) logLineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "Error: "), line == launcher.MsgLaunchError:
		return m.styles.Error
	case line == launcher.MsgInstallComplete, line == launcher.MsgDownloadComplete, line == launcher.MsgLaunched:
		return m.styles.Success
	default:
		return m.styles.Subtle
	}
}

func (m Model) updateLauncher(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editingJava() {
			var cmd tea.Cmd
			m.javaInput, cmd = m.javaInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	key := keyMsg.String()
	if m.log.PendingNotice() != nil && (key == "enter" || key == "esc") {
		m.log.DismissNotice()
		return m, nil
	}

	switch key {
	case "tab":
		return m.afterTabChange(m.nav.NextTab())
	case "shift+tab":
		return m.afterTabChange(m.nav.PrevTab())
	}

	if m.editingJava() {
		return m.updateJavaInput(keyMsg)
	}

	switch key {
	case "q":
		return m.quit()
	case "1", "2", "3", "4":
		return m.afterTabChange(m.nav.SelectTab(nav.Tabs[key[0]-'1']))
	case "i":
		// Rejections are already reported as notices.
		_ = m.controller.RequestInstall(m.selection())
		return m, nil
	case "p":
		_ = m.controller.RequestLaunch(m.selection())
		return m, nil
	}

	switch m.nav.Tab() {
	case nav.TabHome, nav.TabVersion:
		m.updateSelection(key)
	case nav.TabMods:
		if key == "r" {
			return m, m.listMods()
		}
	case nav.TabSettings:
		return m.updateSettings(key)
	}
	return m, nil
}

func (m Model) afterTabChange(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		log.Warnf("Tab switch refused: %v", err)
		return m, nil
	}

	switch m.nav.Tab() {
	case nav.TabMods:
		return m, m.listMods()
	case nav.TabSettings:
		m.draft = m.controller.Settings()
		m.javaInput.SetValue(m.draft.JavaPath)
		return m.focusSettings(fieldAutoUpdate)
	}
	m.javaInput.Blur()
	return m, nil
}

func (m *Model) updateSelection(key string) {
	switch key {
	case "left", "h":
		m.loaderIdx = (m.loaderIdx + len(loaderChoices) - 1) % len(loaderChoices)
	case "right", "l":
		m.loaderIdx = (m.loaderIdx + 1) % len(loaderChoices)
	case "up", "k":
		if m.versionIdx > 0 {
			m.versionIdx--
		}
	case "down", "j":
		if m.versionIdx < len(m.cfg.Versions)-1 {
			m.versionIdx++
		}
	}
}

func (m Model) editingJava() bool {
	return m.nav.Screen() == nav.ScreenLauncher &&
		m.nav.Tab() == nav.TabSettings &&
		m.settingsField == fieldJavaPath
}

func (m Model) focusSettings(f settingsField) (tea.Model, tea.Cmd) {
	if f < fieldAutoUpdate {
		f = fieldAutoUpdate
	}
	if int(f) >= len(settingsFields) {
		f = settingsFields[len(settingsFields)-1]
	}
	m.settingsField = f
	if f == fieldJavaPath {
		return m, m.javaInput.Focus()
	}
	m.javaInput.Blur()
	return m, nil
}

func (m Model) updateJavaInput(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "up":
		return m.focusSettings(fieldMemory)
	case "down", "enter", "esc":
		return m.focusSettings(fieldSave)
	}

	var cmd tea.Cmd
	m.javaInput, cmd = m.javaInput.Update(keyMsg)
	return m, cmd
}

func (m Model) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		return m.focusSettings(m.settingsField - 1)
	case "down", "j":
		return m.focusSettings(m.settingsField + 1)
	}

	switch m.settingsField {
	case fieldAutoUpdate:
		switch key {
		case " ", "enter", "left", "right":
			m.draft.AutoUpdate = !m.draft.AutoUpdate
		}
	case fieldMemory:
		switch key {
		case "left", "h":
			m.draft = m.draft.StepMemory(-1)
		case "right", "l":
			m.draft = m.draft.StepMemory(1)
		}
	case fieldSave:
		if key == "enter" {
			m.draft.JavaPath = strings.TrimSpace(m.javaInput.Value())
			if err := m.controller.ApplySettings(m.draft); err == nil {
				m.log.AppendLog("Settings saved.")
			}
		}
	}
	return m, nil
}

func (m Model) listMods() tea.Cmd {
	fs, dir := m.fs, m.cfg.ModsDir
	return func() tea.Msg {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			return modsListedMsg{err: err}
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		return modsListedMsg{names: names}
	}
}
