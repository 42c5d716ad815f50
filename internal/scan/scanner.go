package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// Candidate is a file eligible for interactive deletion.
type Candidate struct {
	Size int64  `json:"size"`
	Path string `json:"path"`
}

// Pseudo and memory-backed filesystem magics that never hold reclaimable
// user data. Checked on the scan root so "dm files --root /proc" fails
// fast instead of producing nonsense.
var pseudoFsMagic = map[int64]string{
	unix.PROC_SUPER_MAGIC:    "proc",
	unix.SYSFS_MAGIC:         "sysfs",
	unix.DEVPTS_SUPER_MAGIC:  "devpts",
	unix.CGROUP2_SUPER_MAGIC: "cgroup2",
}

// defaultExcludes are directory names skipped at any depth.
var defaultExcludes = []string{
	"proc",
	"sys",
	"dev",
	"run",
	"lost+found",
	".snapshots",
}

// Scanner walks a directory tree with bounded concurrency, collecting
// regular files at or above a size threshold.
type Scanner struct {
	sem     chan struct{}
	minSize int64
	exclude map[string]bool

	mu       sync.Mutex
	found    []Candidate
	warnings []string

	scannedCount atomic.Int64
	rootDev      uint64
}

// NewScanner creates a scanner with bounded concurrency. Files smaller than
// minSize are ignored. exclude extends the built-in skip list with extra
// directory names (case-insensitive).
func NewScanner(maxConcurrency int, minSize int64, exclude []string) *Scanner {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	excMap := make(map[string]bool, len(exclude)+len(defaultExcludes))
	for _, e := range defaultExcludes {
		excMap[e] = true
	}
	for _, e := range exclude {
		excMap[strings.ToLower(e)] = true
	}
	return &Scanner{
		sem:     make(chan struct{}, maxConcurrency),
		minSize: minSize,
		exclude: excMap,
	}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// ScannedCount returns the number of entries visited so far.
func (s *Scanner) ScannedCount() int64 {
	return s.scannedCount.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

// LargeFiles scans root and returns up to top candidates, largest first.
// The walk stays on the root's filesystem: crossing into another mount
// (which is how /proc, /sys and friends appear under /) is skipped.
func (s *Scanner) LargeFiles(root string, top int) ([]Candidate, error) {
	root = filepath.Clean(root)

	info, err := os.Lstat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var statfs unix.Statfs_t
	if err := unix.Statfs(root, &statfs); err == nil {
		if name, ok := pseudoFsMagic[int64(statfs.Type)]; ok {
			return nil, fmt.Errorf("%s is a %s filesystem, nothing to reclaim there", root, name)
		}
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		s.rootDev = uint64(st.Dev)
	}

	s.scanDir(root)

	s.mu.Lock()
	out := s.found
	s.found = nil
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out, nil
}

// scanDir recursively scans a directory, holding the semaphore only during
// the ReadDir I/O so nested goroutines cannot deadlock on it.
func (s *Scanner) scanDir(dir string) {
	s.sem <- struct{}{}
	entries, err := os.ReadDir(dir)
	<-s.sem

	if err != nil {
		s.addWarning("cannot read " + dir + ": " + err.Error())
		return
	}

	var wg sync.WaitGroup

	for _, e := range entries {
		childPath := filepath.Join(dir, e.Name())
		s.scannedCount.Add(1)

		if e.IsDir() && s.exclude[strings.ToLower(e.Name())] {
			continue
		}

		// Never follow symlinks, cycle and double-count risk.
		if e.Type()&os.ModeSymlink != 0 {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// Permission denied or raced removal, skip it.
			s.addWarning("cannot stat " + childPath + ": " + err.Error())
			continue
		}

		if e.IsDir() {
			// Stay on the root's device; other mounts are separate surveys.
			if st, ok := info.Sys().(*syscall.Stat_t); ok && s.rootDev != 0 && uint64(st.Dev) != s.rootDev {
				continue
			}
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				s.scanDir(p)
			}(childPath)
			continue
		}

		if info.Mode().IsRegular() && info.Size() >= s.minSize {
			s.mu.Lock()
			s.found = append(s.found, Candidate{Size: info.Size(), Path: childPath})
			s.mu.Unlock()
		}
	}

	wg.Wait()
}
