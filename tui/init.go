package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the catalog load and the listeners for session notifications.
func (b *statefulBubble) Init() tea.Cmd {
	b.status = "Loading catalog..."
	return tea.Batch(b.startLoading(), b.loadVideos(), b.waitForSnapshot(), b.waitForEnd())
}
