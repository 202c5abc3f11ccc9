// Package ui renders short-lived notifications at the bottom of the TUI.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// NotificationMsg shows Text until a newer notification or its expiry.
type NotificationMsg struct {
	Text    string
	Warning bool
}

type expiredMsg struct {
	id int
}

// Model holds the current notification.
type Model struct {
	current NotificationMsg
	id      int
}

func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

func Warn(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text, Warning: true}
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.id++
		m.current = msg
		id := m.id
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return expiredMsg{id: id}
		})
	case expiredMsg:
		// a newer notification keeps its own timer
		if msg.id == m.id {
			m.current = NotificationMsg{}
		}
	}
	return nil
}

// Text returns the notification on screen, if any.
func (m *Model) Text() string {
	return m.current.Text
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.current.Text == "" {
		return content
	}

	var notification string
	if m.current.Warning {
		notification = style.Fg(style.ErrorColor)(icon.Get(icon.Warn) + " " + m.current.Text)
	} else {
		notification = style.Faint(m.current.Text)
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + notification
	return strings.Join(lines, "\n")
}
