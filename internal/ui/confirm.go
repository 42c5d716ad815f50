package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confirmToken is the only input that authorizes a destructive run.
// Matched with a single equality check; "Yes", "y" and "yesno" all cancel.
const confirmToken = "yes"

// ConfirmTyped prints the prompt and reads one line from r. It returns true
// only when the line is exactly "yes". Any other input, including EOF,
// cancels.
func ConfirmTyped(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).
		Render("  "+IconWarning+" "+prompt)+" ")
	fmt.Fprint(w, lipgloss.NewStyle().Foreground(ColorMuted).
		Render("(type 'yes' to continue)")+" ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	line = strings.TrimRight(line, "\r\n")
	return line == confirmToken
}

// ReadLine reads a single trimmed line from r, returning "" on EOF.
func ReadLine(r io.Reader) string {
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
