package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

// listItem implements list.Item over a catalog video.
type listItem struct {
	video    *catalog.Video
	featured bool
}

func newListItems(videos []*catalog.Video, featured []*catalog.Video) []*listItem {
	items := make([]*listItem, len(videos))
	for i, v := range videos {
		items[i] = &listItem{video: v}
		for _, f := range featured {
			if f.ID == v.ID {
				items[i].featured = true
				break
			}
		}
	}
	return items
}

func (t *listItem) Title() string {
	if t.featured {
		return fmt.Sprintf("%s %s", t.video.Title, lipgloss.NewStyle().Foreground(style.Yellow).Render("★"))
	}
	return t.video.Title
}

func (t *listItem) Description() string {
	var parts []string

	if t.video.Category != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(t.video.Category))
	}

	parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(
		fmt.Sprintf("%s %s", icon.Get(icon.Clock), util.FormatClock(t.video.Duration)),
	))

	if t.video.Rating != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(t.video.Rating))
	}

	if t.video.Year > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprint(t.video.Year)))
	}

	return strings.Join(parts, " • ")
}

func (t *listItem) FilterValue() string {
	return t.video.Title
}
