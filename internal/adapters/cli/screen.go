// Package cli provides thin CLI adapters that translate between CLI concerns
// and the mission store. Adapters handle input parsing and output formatting,
// but every read goes through a store snapshot and every write through AddMission.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/secondary"
)

// DefaultRecentLimit is the number of missions the overview lists.
const DefaultRecentLimit = 5

// DefaultDueSoon is the analytics "due soon" window.
const DefaultDueSoon = 7 * 24 * time.Hour

// ScreenContext carries the session facts every screen renders against.
type ScreenContext struct {
	Fleet       []coremission.Vessel
	StartedAt   time.Time
	Clock       secondary.Clock
	RecentLimit int
	DueSoon     time.Duration
}

func (sc ScreenContext) now() time.Time {
	if sc.Clock == nil {
		return sc.StartedAt
	}
	return sc.Clock.Now()
}

func (sc ScreenContext) recentLimit() int {
	if sc.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return sc.RecentLimit
}

func (sc ScreenContext) dueSoon() time.Duration {
	if sc.DueSoon <= 0 {
		return DefaultDueSoon
	}
	return sc.DueSoon
}

func (sc ScreenContext) knownVessel(name string) bool {
	for _, v := range sc.Fleet {
		if v.Name == name {
			return true
		}
	}
	return false
}

const rule = "────────────────────────────────────────────────────────────────────────────"

// writeMissionTable renders the standard mission table.
func writeMissionTable(out io.Writer, missions []coremission.Mission, now time.Time) {
	fmt.Fprintf(out, "%-15s %-13s %-20s %-17s %s\n", "ID", "STATUS", "VESSEL", "DUE", "TITLE")
	fmt.Fprintln(out, rule)
	for _, m := range missions {
		fmt.Fprintf(out, "%-15s %s %-20s %s %s\n",
			m.ID,
			colorizeStatus(m.Status, 13),
			truncate(m.Vessel, 20),
			colorizeDue(m, now, 17),
			m.Title)
	}
}

// writeMissionLine renders one compact line, for narrow terminals.
func writeMissionLine(out io.Writer, m coremission.Mission, now time.Time) {
	fmt.Fprintf(out, "%s %s  %s\n", colorizeID(m.ID), strings.TrimSpace(colorizeStatus(m.Status, 0)), m.Title)
	detail := m.Vessel
	if !m.DueAt.IsZero() {
		detail = fmt.Sprintf("%s · due %s", detail, formatDue(m.DueAt))
	}
	if coremission.IsOverdue(m, now) {
		detail += " " + color.New(color.FgRed).Sprint("(overdue)")
	}
	fmt.Fprintf(out, "  %s\n", detail)
}

// colorizeStatus formats status with semantic color, padded to width before colouring.
func colorizeStatus(status string, width int) string {
	label := fmt.Sprintf("%-*s", width, coremission.StatusLabel(status))

	switch status {
	case coremission.StatusPending:
		return color.New(color.FgYellow).Sprint(label)
	case coremission.StatusInProgress:
		return color.New(color.FgHiBlue).Sprint(label)
	case coremission.StatusCompleted:
		return color.New(color.FgHiGreen).Sprint(label)
	case coremission.StatusCancelled:
		return color.New(color.FgHiBlack).Sprint(label)
	default:
		return color.New(color.FgWhite).Sprint(label)
	}
}

// colorizeDue renders the due date, red when the mission is overdue.
func colorizeDue(m coremission.Mission, now time.Time, width int) string {
	label := "-"
	if !m.DueAt.IsZero() {
		label = formatDue(m.DueAt)
	}
	label = fmt.Sprintf("%-*s", width, label)
	if coremission.IsOverdue(m, now) {
		return color.New(color.FgRed).Sprint(label)
	}
	return label
}

func colorizeID(id string) string {
	return color.New(color.FgCyan, color.Bold).Sprint(id)
}

func formatDue(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
