package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/debmole/internal/core"
	"github.com/lakshaymaurya-felt/debmole/internal/scan"
	"github.com/lakshaymaurya-felt/debmole/internal/selector"
	"github.com/lakshaymaurya-felt/debmole/internal/ui"
)

var (
	filesRoot    string
	filesMinSize string
	filesTop     int
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Find and delete large files",
	Long: `Scan for large files and pick the ones to delete in an interactive
checkbox menu. Deletion requires --apply and a typed confirmation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles()
	},
}

func init() {
	filesCmd.Flags().StringVar(&filesRoot, "root", "/", "Directory to scan")
	filesCmd.Flags().StringVar(&filesMinSize, "min-size", "500MB", "Minimum file size to list")
	filesCmd.Flags().IntVar(&filesTop, "top", 40, "Maximum number of files to list")
	filesCmd.Flags().BoolVar(&apply, "apply", false, "Delete instead of only reporting")
}

func runFiles() error {
	minSize, err := core.ParseSize(filesMinSize)
	if err != nil {
		return err
	}

	fmt.Printf("  Scanning %s for files ≥ %s…\n", filesRoot, strings.TrimSpace(ui.FormatSize(minSize)))

	scanner := scan.NewScanner(8, minSize, nil)
	found, err := scanner.LargeFiles(filesRoot, filesTop)
	if err != nil {
		return err
	}
	for _, w := range scanner.Warnings() {
		log.Debug("scan warning", "msg", w)
	}

	if len(found) == 0 {
		fmt.Printf("  No files ≥ %s under %s.\n", strings.TrimSpace(ui.FormatSize(minSize)), filesRoot)
		return nil
	}

	candidates := make([]selector.Candidate, len(found))
	for i, f := range found {
		candidates[i] = selector.Candidate{Size: f.Size, Path: f.Path}
	}

	// Without a terminal there is no menu; print the listing and stop.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, c := range candidates {
			fmt.Printf("  %s  %s\n", ui.FormatSize(c.Size), c.Path)
		}
		return nil
	}

	final, err := tea.NewProgram(selector.New(candidates)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(selector.Model)
	if !ok || !m.Confirmed() {
		ui.Warn("cancelled, nothing deleted")
		return nil
	}

	res := selector.Execute(m.Selected(), func(path string) (int64, error) {
		return core.SafeDelete(path, !apply)
	})

	for _, o := range res.Outcomes {
		if o.Err != nil {
			ui.Fail("%s: %v", o.Path, o.Err)
		} else {
			ui.Success("%s  %s", ui.FormatSize(o.Freed), o.Path)
		}
	}

	fmt.Println()
	if !apply {
		fmt.Println(lipgloss.NewStyle().Foreground(ui.ColorMuted).
			Render(fmt.Sprintf("  Report mode: %s would be freed. Re-run with --apply to delete.",
				strings.TrimSpace(ui.FormatSize(res.Freed)))))
		return nil
	}

	ui.Success("Freed %s (%d deleted, %d errors)",
		strings.TrimSpace(ui.FormatSize(res.Freed)), res.Deleted, res.Errors)
	return nil
}
