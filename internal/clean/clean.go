package clean

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/lakshaymaurya-felt/debmole/internal/core"
	"github.com/lakshaymaurya-felt/debmole/internal/report"
)

// commandTimeout is the maximum time to wait for an external cleanup tool.
const commandTimeout = 10 * time.Minute

// Summary accumulates the result of one cleanup operation. Every executor
// returns its own Summary; the command layer adds them together, so no
// package-level counter exists anywhere.
type Summary struct {
	Freed   int64
	Deleted int
	Errors  int
}

// Add merges another summary into s.
func (s *Summary) Add(other Summary) {
	s.Freed += other.Freed
	s.Deleted += other.Deleted
	s.Errors += other.Errors
}

// RemoveItems deletes each surveyed item in order. One failed deletion is
// counted and logged, never aborts the rest. In dryRun mode sizes are
// accumulated without touching the filesystem.
func RemoveItems(items []report.Item, dryRun bool) Summary {
	var s Summary
	for _, it := range items {
		freed, err := core.SafeDelete(it.Path, dryRun)
		if err != nil {
			log.Warn("delete failed", "path", it.Path, "err", err)
			s.Errors++
			continue
		}
		s.Freed += freed
		s.Deleted++
	}
	return s
}

// run executes an external cleanup command with a bounded context and a
// C locale.
func run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err != nil {
		return out.String(), translateExitError(name, err, out.Bytes())
	}
	return out.String(), nil
}

// translateExitError wraps an exec error with trimmed command output so the
// operator sees what the tool said, not just an exit code.
func translateExitError(name string, err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s", name, commandTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outStr := strings.TrimSpace(string(output))
		if len(outStr) > 200 {
			// Truncate at a valid UTF-8 boundary.
			outStr = outStr[:200]
			for len(outStr) > 0 && !utf8.ValidString(outStr) {
				outStr = outStr[:len(outStr)-1]
			}
			outStr += "..."
		}
		if outStr != "" {
			return fmt.Errorf("%s failed (exit code %d): %s", name, exitErr.ExitCode(), outStr)
		}
		return fmt.Errorf("%s failed (exit code %d)", name, exitErr.ExitCode())
	}

	return fmt.Errorf("%s: %w", name, err)
}

// AptClean clears the apt package cache. The freed estimate is measured
// before the call since apt-get clean reports nothing.
func AptClean(ctx context.Context, dryRun bool) (Summary, error) {
	size := core.DirSize("/var/cache/apt/archives")

	if dryRun {
		return Summary{Freed: size}, nil
	}
	if _, err := run(ctx, "apt-get", "clean"); err != nil {
		return Summary{Errors: 1}, err
	}
	return Summary{Freed: size, Deleted: 1}, nil
}

// AptAutoremove removes orphaned packages.
func AptAutoremove(ctx context.Context, freedEstimate int64, dryRun bool) (Summary, error) {
	if dryRun {
		return Summary{Freed: freedEstimate}, nil
	}
	if _, err := run(ctx, "apt-get", "-y", "autoremove", "--purge"); err != nil {
		return Summary{Errors: 1}, err
	}
	return Summary{Freed: freedEstimate, Deleted: 1}, nil
}

// JournalVacuum shrinks the systemd journal to the given retention window.
func JournalVacuum(ctx context.Context, keep time.Duration, dryRun bool) (Summary, error) {
	before := report.Journal(ctx)
	if before.Err != nil {
		return Summary{Errors: 1}, before.Err
	}

	if dryRun {
		return Summary{Freed: before.Size}, nil
	}

	days := int(keep.Hours() / 24)
	if days < 1 {
		days = 1
	}
	if _, err := run(ctx, "journalctl", fmt.Sprintf("--vacuum-time=%dd", days)); err != nil {
		return Summary{Errors: 1}, err
	}

	after := report.Journal(ctx)
	freed := before.Size - after.Size
	if freed < 0 {
		freed = 0
	}
	return Summary{Freed: freed, Deleted: 1}, nil
}
