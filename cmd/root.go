package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug bool
	apply bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dm",
	Short: "Reclaim disk space on Debian-family systems",
	Long: `DebMole - Reclaim disk space on Debian-family systems.

Surveys reclaimable storage (apt cache, orphaned packages, temp files,
user caches, logs and journal, thumbnails, trash, container engine
resources) and deletes what you confirm. Report mode is the default;
nothing is removed without --apply and a typed confirmation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("DebMole - Reclaim disk space on Debian-family systems")
		fmt.Println("Run 'dm --help' for available commands.")
		fmt.Println()
		fmt.Printf("Version %s (%s) built %s\n", appVersion, appCommit, appDate)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
