package report

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// aptArchivesDir holds downloaded .deb packages; safe to clear at any time.
const aptArchivesDir = "/var/cache/apt/archives"

// AptCache surveys the apt package cache.
func AptCache() Category {
	c := Category{Name: "apt", Description: "APT package cache"}

	for _, it := range scanDirectory(aptArchivesDir, c.Name, c.Description) {
		// lock and partial bookkeeping files are apt's, not ours.
		base := filepath.Base(it.Path)
		if base == "lock" {
			continue
		}
		c.Items = append(c.Items, it)
	}
	return total(c)
}

// remvPattern matches the simulated-removal lines of apt-get --just-print.
var remvPattern = regexp.MustCompile(`(?m)^Remv (\S+)`)

// freedPattern extracts the freed-space estimate, e.g.
// "After this operation, 154 MB disk space will be freed."
var freedPattern = regexp.MustCompile(`After this operation, ([\d.,]+ ?[kMGT]?B) (?:of additional )?disk space will be freed`)

// Orphans surveys packages apt would autoremove, without removing anything.
func Orphans(ctx context.Context) Category {
	c := Category{Name: "orphans", Description: "Orphaned packages (autoremove)"}

	out, err := runCommand(ctx, "apt-get", "--just-print", "autoremove")
	if err != nil {
		c.Err = err
		return c
	}

	for _, m := range remvPattern.FindAllStringSubmatch(out, -1) {
		c.Items = append(c.Items, Item{
			Path:        m[1],
			Category:    c.Name,
			Description: "Orphaned package",
		})
	}

	if m := freedPattern.FindStringSubmatch(out); m != nil {
		if n, err := humanize.ParseBytes(strings.ReplaceAll(m[1], ",", "")); err == nil {
			c.Size = int64(n)
		}
	}
	return c
}

// rotatedLogSuffixes identify log files already rotated out of use.
var rotatedLogSuffixes = []string{".gz", ".xz", ".old", ".1"}

// RotatedLogs surveys /var/log for rotated and compressed log files.
// Active logs are left alone; truncating them is logrotate's job.
func RotatedLogs() Category {
	c := Category{Name: "logs", Description: "Rotated log files"}

	_ = filepath.WalkDir("/var/log", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		rotated := false
		for _, suf := range rotatedLogSuffixes {
			if strings.HasSuffix(name, suf) {
				rotated = true
				break
			}
		}
		if !rotated {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}
		c.Items = append(c.Items, Item{
			Path:        path,
			Size:        info.Size(),
			Category:    c.Name,
			Description: c.Description,
		})
		return nil
	})
	return total(c)
}

// journalPattern extracts the size from journalctl --disk-usage, e.g.
// "Archived and active journals take up 1.5G in the file system."
var journalPattern = regexp.MustCompile(`take up ([\d.]+[KMGT]?i?B?)`)

// Journal surveys systemd journal disk usage.
func Journal(ctx context.Context) Category {
	c := Category{Name: "journal", Description: "Systemd journal"}

	out, err := runCommand(ctx, "journalctl", "--disk-usage")
	if err != nil {
		c.Err = err
		return c
	}
	m := journalPattern.FindStringSubmatch(out)
	if m == nil {
		return c
	}
	if n, err := humanize.ParseBytes(m[1]); err == nil {
		c.Size = int64(n)
	}
	return c
}
