package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lakshaymaurya-felt/debmole/internal/core"
)

// tempMaxAge keeps recent temp files out of the survey; a file touched in
// the last two days may belong to a running process.
const tempMaxAge = 48 * time.Hour

// TempFiles surveys /tmp and /var/tmp for entries untouched for two days.
func TempFiles() Category {
	c := Category{Name: "temp", Description: "Temporary files (>2 days old)"}

	for _, dir := range []string{"/tmp", "/var/tmp"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) < tempMaxAge {
				continue
			}
			path := filepath.Join(dir, e.Name())
			size := info.Size()
			if e.IsDir() {
				size = core.DirSize(path)
			}
			if size == 0 {
				continue
			}
			c.Items = append(c.Items, Item{
				Path:        path,
				Size:        size,
				Category:    c.Name,
				Description: c.Description,
			})
		}
	}
	return total(c)
}

// UserCaches surveys ~/.cache, excluding the thumbnail store which gets
// its own category.
func UserCaches() Category {
	c := Category{Name: "cache", Description: "User application caches"}

	cacheDir := expandHome("~/.cache")
	for _, it := range scanDirectory(cacheDir, c.Name, c.Description) {
		if filepath.Base(it.Path) == "thumbnails" {
			continue
		}
		c.Items = append(c.Items, it)
	}
	return total(c)
}

// Thumbnails surveys the freedesktop thumbnail cache.
func Thumbnails() Category {
	c := Category{Name: "thumbnails", Description: "Thumbnail cache"}
	c.Items = scanDirectory(expandHome("~/.cache/thumbnails"), c.Name, c.Description)
	return total(c)
}

// Trash surveys the freedesktop trash directory (files and metadata).
func Trash() Category {
	c := Category{Name: "trash", Description: "Trash"}

	trashDir := expandHome("~/.local/share/Trash")
	for _, sub := range []string{"files", "info"} {
		c.Items = append(c.Items, scanDirectory(filepath.Join(trashDir, sub), c.Name, c.Description)...)
	}
	return total(c)
}
