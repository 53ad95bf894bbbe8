package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/schemaview/internal/compose"
	"github.com/five82/schemaview/internal/refresh"
)

// Viewer statuses, used for the header badge and its theme color.
const (
	statusReady   = "ready"
	statusLoading = "loading"
	statusStale   = "stale"
	statusError   = "error"
	statusEmpty   = "empty"
)

// viewerStatus combines the store's load status with the controller state.
func (m Model) viewerStatus() string {
	switch {
	case !m.status.HasBase() && m.status.LastError != nil:
		return statusError
	case !m.status.HasBase():
		return statusEmpty
	case m.status.IsStale():
		return statusStale
	case m.result.State == refresh.Loading:
		return statusLoading
	default:
		return statusReady
	}
}

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarStyle(m.theme.Surface)

	content := m.buildStatusContent(styles, bg)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg barStyle) string {
	compact := m.width < LayoutCompactWidth

	var parts []string

	// Logo
	parts = append(parts, bg.Render("schemaview", styles.Logo))

	// Status badge
	status := m.viewerStatus()
	parts = append(parts, styles.StatusStyle(status).Render(strings.ToUpper(status)))

	// Selection
	b := m.status.Base
	if b != nil {
		tableID, _ := m.cursor.Selection()
		position := "-"
		for i := range b.Tables {
			if b.Tables[i].ID == tableID {
				position = fmt.Sprintf("%d/%d", i+1, len(b.Tables))
				break
			}
		}
		parts = append(parts, bg.Field("Table:", position, styles.MutedText, styles.Text))
		if !compact && b.Name != "" {
			parts = append(parts, bg.Field("Base:", truncate(b.Name, 30), styles.MutedText, styles.Text))
		}
	}
	if snap := m.result.Snapshot; snap != nil {
		parts = append(parts, bg.Field("Fields:", fmt.Sprintf("%d", len(snap.Fields)), styles.MutedText, styles.Text))
	}

	// Source path
	if !compact && m.status.Source != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.status.Source, 40), styles.FaintText))
	}

	// Timestamp with relative time
	if timeStr := formatTimestamp(m.status.LastLoaded, time.Now()); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	if m.reloading {
		parts = append(parts, bg.Render("Reloading...", styles.WarningText.Bold(true)))
	}

	// Error indicator
	if m.status.LastError != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(m.status.LastError.Error(), maxErr)
		label := "ERROR"
		if m.status.ConsecutiveFailures > 1 {
			label = fmt.Sprintf("ERROR x%d", m.status.ConsecutiveFailures)
		}
		parts = append(parts, bg.Field(label, errText, styles.DangerText.Bold(true), styles.DangerText))
	} else if m.errorMsg != "" {
		parts = append(parts, bg.Field("!", m.errorMsg, styles.WarningText.Bold(true), styles.WarningText))
	}

	return bg.Join(parts, 2)
}

// formatTimestamp formats the last load time with a relative indicator.
func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}

	since := now.Sub(at)
	timeStr := at.Format("15:04:05")

	switch {
	case since < time.Minute:
		timeStr += " (now)"
	case since < time.Hour:
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return timeStr
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"]/[", "Table"},
		{"v/V", "View"},
		{"j/k", "Scroll"},
		{"r", "Reload"},
		{"?", "More"},
		{"q", "Quit"},
	}

	segments := make([]string, 0, len(commands)+2)

	// Current heading, so the selection is visible even when scrolled.
	if snap := m.result.Snapshot; snap != nil {
		segments = append(segments, bg.Render(truncate(compose.Heading(*snap), 40), styles.AccentText.Bold(true)))
	}

	for _, c := range commands {
		segments = append(segments, bg.Hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments, bg.Hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, 2))
}
