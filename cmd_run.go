package main

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) enterCommandMode(cmd Command) {
	m.ui.command = CommandInput{cmd: cmd}
	m.ui.mode = modeCommand
}

func (m *model) runCommand() {
	switch m.ui.command.cmd {
	case CmdJump:
		if n, err := strconv.Atoi(m.ui.command.buf); err == nil {
			m.jumpToLine(n)
			return
		}
		m.startNotice("Invalid row number", "warn", noticeDuration)

	case CmdSearch:
		m.searchOnce(m.ui.command.buf)

	case CmdFilter:
		if err := m.setFilterPattern(m.ui.command.buf); err != nil {
			m.startNotice("Bad pattern: "+err.Error(), "error", noticeDuration)
		}
	}
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// universal cancel
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		return m, nil
	}

	// commit
	if msg.Type == tea.KeyEnter {
		m.runCommand()
		m.exitCommandMode()
		m.refreshView()
		return m, nil
	}

	// editing
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil
	}

	// append printable runes, pastes included
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.ui.command.buf += string(msg.Runes)
	}
	return m, nil
}
