package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/debmole/internal/report"
	"github.com/lakshaymaurya-felt/debmole/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage per filesystem",
	Long:  "One-shot usage overview of every real mounted filesystem.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func runStatus() error {
	mounts, err := report.DiskOverview()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.TitleStyle().Render("  " + ui.IconDiamond + " Disk usage"))
	fmt.Println()

	for _, m := range mounts {
		bar := ui.GradientBar(m.UsedPercent, 24)
		mount := lipgloss.NewStyle().Foreground(ui.ColorText).Bold(true).
			Render(fmt.Sprintf("%-18s", m.Mountpoint))
		detail := lipgloss.NewStyle().Foreground(ui.ColorTextDim).
			Render(fmt.Sprintf("%s free of %s (%s)",
				strings.TrimSpace(ui.FormatSize(int64(m.Free))),
				strings.TrimSpace(ui.FormatSize(int64(m.Total))),
				m.Fstype))

		fmt.Printf("  %s %s %5.1f%%  %s\n", mount, bar, m.UsedPercent, detail)
	}

	fmt.Println()
	return nil
}
