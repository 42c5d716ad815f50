package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/debmole/internal/clean"
	"github.com/lakshaymaurya-felt/debmole/internal/core"
	"github.com/lakshaymaurya-felt/debmole/internal/report"
	"github.com/lakshaymaurya-felt/debmole/internal/ui"
)

var (
	cleanJournalKeep time.Duration
	cleanUser        bool
	cleanSystem      bool
	cleanDocker      bool
	cleanAll         bool
	cleanDryRun      bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long: `Survey reclaimable categories (apt cache, orphaned packages, temp
files, user caches, rotated logs, journal, thumbnails, trash, container
engine resources) and delete them with --apply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(cmd.Context())
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&apply, "apply", false, "Delete instead of only reporting")
	cleanCmd.Flags().DurationVar(&cleanJournalKeep, "journal-keep", 7*24*time.Hour, "Journal retention window")
	cleanCmd.Flags().BoolVar(&cleanUser, "user", false, "User categories only (caches, thumbnails, trash, temp)")
	cleanCmd.Flags().BoolVar(&cleanSystem, "system", false, "System categories only (apt, orphans, logs, journal)")
	cleanCmd.Flags().BoolVar(&cleanDocker, "docker", false, "Container engine category only")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "All categories (default when no toggle is given)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Force report mode even with --apply")
}

// categoryRun pairs a survey result with the executor that reclaims it.
type categoryRun struct {
	cat report.Category
	run func(ctx context.Context) (clean.Summary, error)
}

func runClean(ctx context.Context) error {
	// No toggle means everything.
	if !cleanUser && !cleanSystem && !cleanDocker {
		cleanAll = true
	}
	if cleanDryRun {
		apply = false
	}

	fmt.Println()
	fmt.Println(ui.TitleStyle().Render("  " + ui.IconDiamond + " Cleanup survey"))
	fmt.Println()

	var runs []categoryRun

	if cleanAll || cleanSystem {
		aptCat := report.AptCache()
		runs = append(runs, categoryRun{aptCat, func(ctx context.Context) (clean.Summary, error) {
			return clean.AptClean(ctx, false)
		}})

		orphans := report.Orphans(ctx)
		runs = append(runs, categoryRun{orphans, func(ctx context.Context) (clean.Summary, error) {
			return clean.AptAutoremove(ctx, orphans.Size, false)
		}})

		logsCat := report.RotatedLogs()
		runs = append(runs, categoryRun{logsCat, func(ctx context.Context) (clean.Summary, error) {
			return clean.RemoveItems(logsCat.Items, false), nil
		}})

		journalCat := report.Journal(ctx)
		runs = append(runs, categoryRun{journalCat, func(ctx context.Context) (clean.Summary, error) {
			return clean.JournalVacuum(ctx, cleanJournalKeep, false)
		}})
	}

	if cleanAll || cleanUser {
		for _, cat := range []report.Category{
			report.TempFiles(),
			report.UserCaches(),
			report.Thumbnails(),
			report.Trash(),
		} {
			cat := cat
			runs = append(runs, categoryRun{cat, func(ctx context.Context) (clean.Summary, error) {
				return clean.RemoveItems(cat.Items, false), nil
			}})
		}
	}

	if cleanAll || cleanDocker {
		dockerCat := report.DockerUsage(ctx)
		runs = append(runs, categoryRun{dockerCat, func(ctx context.Context) (clean.Summary, error) {
			return clean.DockerPrune(ctx, false)
		}})
	}

	var totalSize int64
	for _, r := range runs {
		printCategory(r.cat)
		totalSize += r.cat.Size
	}

	fmt.Println()
	fmt.Printf("  Total reclaimable: %s\n", strings.TrimSpace(ui.FormatSize(totalSize)))
	fmt.Println()

	if !apply {
		fmt.Println(lipgloss.NewStyle().Foreground(ui.ColorMuted).
			Render("  Report mode: nothing was deleted. Re-run with --apply to clean."))
		return nil
	}

	if (cleanAll || cleanSystem) && !core.IsRoot() {
		ui.Warn("not running as root: apt, journal and log cleanup will likely fail")
	}

	if !ui.ConfirmTyped(os.Stdin, os.Stdout, fmt.Sprintf("Delete the categories above (%s)?",
		strings.TrimSpace(ui.FormatSize(totalSize)))) {
		fmt.Println()
		ui.Warn("cancelled, nothing deleted")
		return nil
	}
	fmt.Println()

	var sum clean.Summary
	for _, r := range runs {
		if r.cat.Err != nil || r.cat.Size == 0 {
			continue
		}
		s, err := r.run(ctx)
		if err != nil {
			log.Warn("cleanup failed", "category", r.cat.Name, "err", err)
			ui.Fail("%s: %v", r.cat.Name, err)
		} else {
			ui.Success("%-12s freed %s", r.cat.Name, strings.TrimSpace(ui.FormatSize(s.Freed)))
		}
		sum.Add(s)
	}

	fmt.Println()
	ui.Success("Freed %s (%d deleted, %d errors)",
		strings.TrimSpace(ui.FormatSize(sum.Freed)), sum.Deleted, sum.Errors)
	return nil
}

// printCategory renders one survey line: name, total, detail.
func printCategory(cat report.Category) {
	name := lipgloss.NewStyle().Foreground(ui.ColorText).Bold(true).
		Render(fmt.Sprintf("%-12s", cat.Name))

	if cat.Err != nil {
		fmt.Printf("  %s %s\n", name, lipgloss.NewStyle().Foreground(ui.ColorMuted).
			Render("unavailable: "+cat.Err.Error()))
		return
	}

	detail := cat.Description
	if n := len(cat.Items); n > 0 {
		detail = fmt.Sprintf("%s (%d items)", cat.Description, n)
	}

	fmt.Printf("  %s %s  %s\n",
		name,
		ui.FormatSize(cat.Size),
		lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(detail))
}
