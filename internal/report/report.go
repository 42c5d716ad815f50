package report

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lakshaymaurya-felt/debmole/internal/core"
)

// Item is one reclaimable path discovered by a survey.
type Item struct {
	Path        string
	Size        int64
	Category    string
	Description string
}

// Category groups the items of one cleanup target with their total size.
// Err is set when the survey itself failed (tool missing, daemon down);
// the category is then reported as unavailable, not as empty.
type Category struct {
	Name        string
	Description string
	Items       []Item
	Size        int64
	Err         error
}

// commandTimeout bounds every external survey command.
const commandTimeout = 60 * time.Second

// runCommand executes an external tool with a C locale so output parsing
// is stable across systems.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// scanDirectory lists the immediate children of dir as items. Directory
// children are sized recursively; unreadable entries are skipped.
func scanDirectory(dir, category, description string) []Item {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("survey skip", "dir", dir, "err", err)
		return nil
	}

	var items []Item
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		var size int64
		if e.IsDir() {
			size = core.DirSize(path)
		} else if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		if size == 0 {
			continue
		}

		items = append(items, Item{
			Path:        path,
			Size:        size,
			Category:    category,
			Description: description,
		})
	}
	return items
}

// total sums item sizes into the category and returns it.
func total(c Category) Category {
	for _, it := range c.Items {
		c.Size += it.Size
	}
	return c
}

// expandHome replaces a leading ~ with the invoking user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(core.HomeDir(), strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
