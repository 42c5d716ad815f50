package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/debmole/internal/registry"
	"github.com/lakshaymaurya-felt/debmole/internal/ui"
)

var (
	registryURL      string
	registryUser     string
	registryPassword string
	registryRepos    string
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Prune a remote container registry",
	Long: `Enumerate a private registry's repositories, resolve every tag to its
manifest digest and delete by digest. Report mode resolves digests without
deleting anything. Actual disk space on the registry host is only released
by the registry's own garbage collection afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegistry(cmd.Context())
	},
}

func init() {
	registryCmd.Flags().StringVar(&registryURL, "url", "", "Registry base URL (e.g. https://registry.example.com)")
	registryCmd.Flags().StringVar(&registryUser, "user", "", "Registry username")
	registryCmd.Flags().StringVar(&registryPassword, "password", "", "Registry password (or DM_REGISTRY_PASSWORD)")
	registryCmd.Flags().StringVar(&registryRepos, "repos", "", "Repository selection (all, or e.g. 1,3-5); prompts when empty")
	registryCmd.Flags().BoolVar(&apply, "apply", false, "Delete instead of only reporting")
	_ = registryCmd.MarkFlagRequired("url")
}

func runRegistry(ctx context.Context) error {
	password := registryPassword
	if password == "" {
		password = os.Getenv("DM_REGISTRY_PASSWORD")
	}

	client, err := registry.NewClient(registry.Endpoint{
		BaseURL:  registryURL,
		Username: registryUser,
		Password: password,
	})
	if err != nil {
		return err
	}

	if err := client.Ping(ctx); err != nil {
		switch {
		case errors.Is(err, registry.ErrAuth):
			return fmt.Errorf("registry rejected the credentials, check --user/--password")
		case errors.Is(err, registry.ErrUnreachable):
			return fmt.Errorf("cannot reach %s: %w", registryURL, err)
		default:
			return err
		}
	}

	repos, err := client.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("repository enumeration failed: %w", err)
	}
	if len(repos) == 0 {
		fmt.Println("  The registry has no repositories.")
		return nil
	}

	fmt.Println()
	fmt.Println(ui.TitleStyle().Render("  " + ui.IconDiamond + " Repositories"))
	for i, name := range repos {
		fmt.Printf("  %3d. %s\n", i+1, name)
	}
	fmt.Println()

	expr := registryRepos
	if expr == "" {
		fmt.Print(lipgloss.NewStyle().Foreground(ui.ColorText).
			Render("  Repositories to prune (all, or e.g. 1,3-5): "))
		expr = ui.ReadLine(os.Stdin)
	}

	indices := registry.ParseSelection(expr, len(repos))
	if len(indices) == 0 {
		ui.Warn("no repositories selected, nothing to do")
		return nil
	}

	picked := make([]string, len(indices))
	for i, idx := range indices {
		picked[i] = repos[idx]
	}

	if apply {
		if !ui.ConfirmTyped(os.Stdin, os.Stdout,
			fmt.Sprintf("Delete ALL tags of %d repository(ies)?", len(picked))) {
			fmt.Println()
			ui.Warn("cancelled, nothing deleted")
			return nil
		}
		fmt.Println()
	}

	outcomes, sum := registry.NewPruner(client, apply).Run(ctx, picked)

	for _, o := range outcomes {
		ref := o.Repository
		if o.Tag != "" {
			ref += ":" + o.Tag
		}
		if o.Err != nil {
			ui.Fail("%s: %v", ref, o.Err)
		} else if apply {
			ui.Success("deleted %s (%s)", ref, shortDigest(o.Digest))
		} else {
			ui.Success("would delete %s (%s)", ref, shortDigest(o.Digest))
		}
	}

	fmt.Println()
	verb := "would be deleted"
	if apply {
		verb = "deleted"
	}
	fmt.Printf("  %d tag(s) %s, %d error(s), %d empty repository(ies) skipped\n",
		sum.Deleted, verb, sum.Errors, sum.Skipped)

	if apply && sum.Deleted > 0 {
		fmt.Println()
		ui.Warn("manifests are deleted, but registry disk space is only released by" +
			" garbage collection; run 'registry garbage-collect' on the registry host")
	}
	return nil
}

// shortDigest trims a sha256 digest for display.
func shortDigest(digest string) string {
	if rest, ok := strings.CutPrefix(digest, "sha256:"); ok && len(rest) > 12 {
		return "sha256:" + rest[:12]
	}
	return digest
}
