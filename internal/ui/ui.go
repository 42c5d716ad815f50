package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

// Adaptive colors keep output readable on both light and dark terminals.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorCoral   = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconDiamond = "◆"
	IconChevron = "›"
	IconBullet  = "·"
	IconFolder  = "▸"
	IconBlock   = "▌"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconWarning = "!"
	IconError   = "✗"
	IconPipe    = "│"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

// HintBarStyle renders the keybinding hint line at the bottom of a view.
func HintBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// TagWarningStyle renders a small inverse warning tag.
func TagWarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"}).
		Background(ColorWarning).
		Bold(true)
}

// TitleStyle renders a bold section title in the primary color.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
}

// Success, Warn and Fail print a styled one-line status message.
func Success(format string, a ...any) {
	fmt.Println(lipgloss.NewStyle().Foreground(ColorSuccess).
		Render("  " + IconCheck + " " + fmt.Sprintf(format, a...)))
}

func Warn(format string, a ...any) {
	fmt.Println(lipgloss.NewStyle().Foreground(ColorWarning).
		Render("  " + IconWarning + " " + fmt.Sprintf(format, a...)))
}

func Fail(format string, a ...any) {
	fmt.Println(lipgloss.NewStyle().Foreground(ColorError).
		Render("  " + IconError + " " + fmt.Sprintf(format, a...)))
}

// ─── Size formatting ─────────────────────────────────────────────────────────

// FormatSize renders a byte count in binary units, right-padded to a stable
// column width so size columns line up.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%5d B  ", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%5.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ─── Gradient bar ────────────────────────────────────────────────────────────

// gradientRamp is the fill color for each third of a usage bar.
var gradientRamp = []lipgloss.AdaptiveColor{
	{Light: "#16a34a", Dark: "#4ade80"},
	{Light: "#ca8a04", Dark: "#facc15"},
	{Light: "#dc2626", Dark: "#f87171"},
}

// GradientBar renders a horizontal bar filled to pct percent, colored green
// through red by fill level.
func GradientBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	if filled == 0 && pct > 0 {
		filled = 1
	}

	color := gradientRamp[0]
	switch {
	case pct >= 80:
		color = gradientRamp[2]
	case pct >= 50:
		color = gradientRamp[1]
	}

	bar := lipgloss.NewStyle().Foreground(color).
		Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorMuted).
		Render(strings.Repeat("░", width-filled))
	return bar + rest
}
