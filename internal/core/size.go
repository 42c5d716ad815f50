package core

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ParseSize converts a human size string ("500MB", "1.5G", "200MiB") to
// bytes. An empty string yields zero.
func ParseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}
