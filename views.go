//go:build !gui

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/tabs"
)

var (
	orpStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	wordBeforeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	wordAfterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#005577")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AADD"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	tocCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AADD"))
)

const tabLabelWidth = 18

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewNewTab:
		return m.newTab.view()
	case viewTOC:
		return m.renderTOC()
	}

	t := m.eng.mgr.Active()
	if t == nil || t.Session == nil {
		return m.homeView()
	}
	return m.readerView(t)
}

func (m appModel) readerView(t *tabs.Tab) string {
	s := t.Session

	footer := m.progressLine(s) + "\n" + m.help.View(m.keys)
	footerLines := lipgloss.Height(footer)

	// Tab bar and status occupy the top two lines.
	avail := m.height - 2 - footerLines
	if avail < 1 {
		avail = 1
	}
	vPad := avail / 2

	var sb strings.Builder
	sb.WriteString(m.tabBar())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine(t))
	sb.WriteString("\n")

	for i := 0; i < vPad; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(m.wordLine(s))

	for i := 0; i < avail-vPad; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(footer)
	return sb.String()
}

func (m appModel) wordLine(s *reader.Session) string {
	if s.AtEnd() && s.State() == reader.Idle {
		return centerLine(completeStyle.Render("Reading complete! SPACE to read it again"), m.width)
	}
	return anchorFrame(s.Frame(), m.width)
}

// anchorFrame pads the styled word so its focus rune lands on the
// center column no matter how long the word is.
func anchorFrame(f reader.Frame, width int) string {
	anchor := width / 2
	pad := anchor - f.BeforeWidth
	if pad < 0 {
		pad = 0
	}
	styled := wordBeforeStyle.Render(f.Before) +
		orpStyle.Render(f.Focus) +
		wordAfterStyle.Render(f.After)
	return strings.Repeat(" ", pad) + styled
}

func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func (m appModel) statusLine(t *tabs.Tab) string {
	s := t.Session
	current, total := s.Progress()

	state := ""
	switch s.State() {
	case reader.Playing:
		state = " | playing"
	case reader.Paused:
		state = " | " + pausedStyle.Render("paused")
	}

	line := fmt.Sprintf("Word %d/%d | %d WPM | %s %.0f%s",
		current, total, s.WPM(), t.Font.Name, t.Font.Size, state)
	if m.notice != "" {
		line += "  " + noticeStyle.Render(m.notice)
	}
	return statusStyle.Render(line)
}

func (m appModel) tabBar() string {
	mgr := m.eng.mgr
	var parts []string
	for _, id := range mgr.Order().IDs() {
		t, ok := mgr.Get(id)
		if !ok {
			continue
		}
		label := truncate.StringWithTail(t.Name, tabLabelWidth, "…")
		if id == mgr.ActiveID() {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return truncate.String(strings.Join(parts, " "), uint(m.width))
}

func (m appModel) progressLine(s *reader.Session) string {
	return centerLine(m.bar.ViewAs(s.Fraction()), m.width)
}

func (m appModel) homeView() string {
	mgr := m.eng.mgr
	d := mgr.Defaults()

	open := 0
	for _, t := range mgr.Tabs() {
		if !t.Home {
			open++
		}
	}

	var sb strings.Builder
	sb.WriteString(m.tabBar())
	sb.WriteString("\n\n")
	sb.WriteString("  " + titleStyle.Render("blink") + "  " + statusStyle.Render(version))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  Defaults: %d WPM | %s %.0f\n", d.WPM, d.Font.Name, d.Font.Size))
	sb.WriteString(fmt.Sprintf("  Fonts: %s\n", strings.Join(m.eng.catalog.Names(), ", ")))
	sb.WriteString(fmt.Sprintf("  Open texts: %d\n", open))
	sb.WriteString("\n")

	hint := "ctrl+n: new tab  tab: switch  ↑/↓: default speed  </>: default size  f: default font  a: apply to all  q: quit"
	wrapAt := m.width - 4
	if wrapAt < 20 {
		wrapAt = 20
	}
	sb.WriteString(controlsStyle.PaddingLeft(2).Render(wordwrap.String(hint, wrapAt)))
	if m.notice != "" {
		sb.WriteString("\n\n  " + noticeStyle.Render(m.notice))
	}
	return sb.String()
}

func (m appModel) renderTOC() string {
	var sb strings.Builder
	sb.WriteString("\n  " + titleStyle.Render("Table of contents"))
	sb.WriteString("\n\n")

	// Keep the cursor on screen for long lists.
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	start := 0
	if m.toc.cursor >= rows {
		start = m.toc.cursor - rows + 1
	}
	end := start + rows
	if end > len(m.toc.entries) {
		end = len(m.toc.entries)
	}

	lineWidth := m.width - 4
	if lineWidth < 10 {
		lineWidth = 10
	}

	for i := start; i < end; i++ {
		e := m.toc.entries[i]
		line := truncate.StringWithTail(strings.Repeat("  ", e.Level)+e.Title, uint(lineWidth), "…")
		if i == m.toc.cursor {
			sb.WriteString("  " + tocCursorStyle.Render("> "+line))
		} else {
			sb.WriteString("    " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  " + controlsStyle.Render("enter: jump  ↑/↓: move  esc: back"))
	return sb.String()
}
