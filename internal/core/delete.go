package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// protectedPaths are roots that must never be removed, whatever the caller
// asks for. Matched after cleaning, exact or as a prefix of one element.
var protectedPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/home",
	"/lib",
	"/proc",
	"/root",
	"/run",
	"/sys",
	"/usr",
	"/var",
}

// IsProtected reports whether path is one of the roots SafeDelete refuses
// to touch. Children of protected roots are fine; the roots themselves are
// not.
func IsProtected(path string) bool {
	cleaned := filepath.Clean(path)
	for _, p := range protectedPaths {
		if cleaned == p {
			return true
		}
	}
	return false
}

// SafeDelete measures the size of path and removes it. Directories are
// removed recursively. In dryRun mode only the measurement happens.
// Returns the number of bytes that were (or would be) reclaimed.
func SafeDelete(path string, dryRun bool) (int64, error) {
	if IsProtected(path) {
		return 0, fmt.Errorf("refusing to delete protected path %q", path)
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Already gone, repeating a delete is a benign no-op.
			return 0, nil
		}
		return 0, err
	}

	var size int64
	if info.IsDir() {
		size = DirSize(path)
	} else {
		size = info.Size()
	}

	if dryRun {
		log.Debug("dry-run delete", "path", path, "size", size)
		return size, nil
	}

	if err := os.RemoveAll(path); err != nil {
		return 0, fmt.Errorf("delete %s: %w", path, err)
	}
	log.Debug("deleted", "path", path, "size", size)
	return size, nil
}

// DirSize sums file sizes under dir, skipping entries it cannot stat.
// Symlinks are counted by their own size, never followed.
func DirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// HomeDir returns the invoking user's home directory, preferring $SUDO_USER
// so that "sudo dm clean" cleans the real user's caches, not /root.
func HomeDir() string {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		candidate := filepath.Join("/home", sudoUser)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/root"
}

// IsRoot reports whether the process runs with effective uid 0.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// Hostname returns the short hostname, "" on failure.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	if i := strings.IndexByte(h, '.'); i > 0 {
		h = h[:i]
	}
	return h
}
