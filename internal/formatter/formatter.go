// package formatter renders client command output for the terminal
package formatter

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"musichub/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
)

// Account renders the signed-in identity.
func Account(account models.PublicAccount) string {
	return fmt.Sprintf("%s %s\n", titleStyle.Render(account.DisplayName), dimStyle.Render("<"+account.EmailAddress+">"))
}

// Message renders a success message.
func Message(message string) string {
	return okStyle.Render(message) + "\n"
}

// Collections renders a collection listing without tracks.
func Collections(collections []*models.Collection) string {
	if len(collections) == 0 {
		return dimStyle.Render("No collections yet.") + "\n"
	}

	var buf bytes.Buffer
	for _, c := range collections {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&buf, "%s  %s\n", titleStyle.Render(title), dimStyle.Render(c.ID))
		if c.Description != "" {
			fmt.Fprintf(&buf, "  %s\n", c.Description)
		}
		fmt.Fprintf(&buf, "  %s\n", dimStyle.Render(fmt.Sprintf("%d tracks", len(c.Tracks))))
	}
	return buf.String()
}

// Collection renders one collection with its track listing in order.
func Collection(c *models.Collection) string {
	var buf bytes.Buffer

	title := c.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&buf, "%s  %s\n", titleStyle.Render(title), dimStyle.Render(c.ID))
	if c.Description != "" {
		fmt.Fprintf(&buf, "%s\n", c.Description)
	}

	if len(c.Tracks) == 0 {
		fmt.Fprintf(&buf, "%s\n", dimStyle.Render("No tracks."))
		return buf.String()
	}

	for i, t := range c.Tracks {
		fmt.Fprintf(&buf, "%2d. %s - %s (%s)  %s\n", i+1, t.Performer, t.TrackName, t.RecordTitle, dimStyle.Render(t.ID))
	}
	return buf.String()
}

// Descriptors renders catalog search results.
func Descriptors(descriptors []models.TrackDescriptor) string {
	if len(descriptors) == 0 {
		return dimStyle.Render("No results.") + "\n"
	}

	var buf bytes.Buffer
	for i, d := range descriptors {
		fmt.Fprintf(&buf, "%2d. %s - %s (%s)", i+1, d.Performer, d.TrackName, d.RecordTitle)
		if d.Duration > 0 {
			fmt.Fprintf(&buf, " [%s]", Duration(d.Duration))
		}
		fmt.Fprintf(&buf, "  %s\n", dimStyle.Render(d.SpotifyTrackID))
	}
	return buf.String()
}

// Duration formats a millisecond duration as m:ss.
func Duration(ms int) string {
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
