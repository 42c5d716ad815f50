package selector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/debmole/internal/ui"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	clrDim     = ui.ColorMuted
	clrPath    = ui.ColorText
	clrChecked = ui.ColorSuccess
	clrCursor  = ui.ColorPrimary
)

// View delegates to the phase renderers. bubbletea owns the redraw: every
// frame fully replaces the previous one.
func (m Model) View() string {
	if m.phase == phaseCancelled || m.phase == phaseConfirmed {
		return ""
	}

	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderBody(w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter(w))
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("  " + ui.IconDiamond + " Large Files")

	statsLine := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render(fmt.Sprintf("  %d files    %s total", len(m.items), strings.TrimSpace(ui.FormatSize(m.total))))

	selLine := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render(fmt.Sprintf("  %d selected    %s", m.SelectedCount(), strings.TrimSpace(ui.FormatSize(m.SelectedSize()))))

	inner := lipgloss.JoinVertical(lipgloss.Left, title, statsLine, selLine)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(inner)
}

// ─── Body ────────────────────────────────────────────────────────────────────

func (m Model) renderBody(w int) string {
	vh := m.viewportHeight()
	barWidth := 14
	if w > 100 {
		barWidth = 20
	}

	var lines []string
	for i := m.offset; i < len(m.items) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderEntry(m.items[i], barWidth, i))
	}

	if len(m.items) > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d files ──", min(m.offset+vh, len(m.items)), len(m.items))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(it Candidate, barWidth, i int) string {
	// Share of the biggest candidate keeps the first bar full-width.
	var pct float64
	if len(m.items) > 0 && m.items[0].Size > 0 {
		pct = float64(it.Size) / float64(m.items[0].Size) * 100
	}
	bar := ui.GradientBar(pct, barWidth)

	box := "[ ]"
	boxColor := clrDim
	if m.selected[i] {
		box = "[" + ui.IconCheck + "]"
		boxColor = clrChecked
	}
	boxStr := lipgloss.NewStyle().Foreground(boxColor).Render(box)

	maxPath := m.width - barWidth - 22
	if maxPath < 16 {
		maxPath = 16
	}
	path := it.Path
	if len(path) > maxPath {
		path = "…" + path[len(path)-maxPath+1:]
	}
	pathStr := lipgloss.NewStyle().Foreground(clrPath).Render(path)

	line := fmt.Sprintf("  %s %s  %s  %s", boxStr, ui.FormatSize(it.Size), bar, pathStr)

	if i == m.cursor {
		cursor := lipgloss.NewStyle().Foreground(clrCursor).Bold(true).Render(ui.IconBlock)
		line = " " + cursor + line[2:]
	}

	return line
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter(w int) string {
	var parts []string

	if m.phase == phaseConfirm {
		warning := lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Bold(true).
			Render(fmt.Sprintf("  %s Delete %d file(s), %s. This cannot be undone.",
				ui.IconWarning, m.SelectedCount(), strings.TrimSpace(ui.FormatSize(m.SelectedSize()))))
		prompt := lipgloss.NewStyle().
			Foreground(ui.ColorText).
			Render("  Type 'yes' to confirm: ") + m.input.View()
		parts = append(parts, warning, prompt)
		return strings.Join(parts, "\n")
	}

	if m.notice != "" {
		parts = append(parts,
			"  "+ui.TagWarningStyle().Render(" "+m.notice+" "))
	}

	hints := []string{
		"↑↓ nav",
		"space select",
		"a all",
		"Enter delete",
		"q quit",
	}
	parts = append(parts, ui.HintBarStyle().Render("  "+strings.Join(hints, " "+ui.IconPipe+" ")))

	return strings.Join(parts, "\n")
}
