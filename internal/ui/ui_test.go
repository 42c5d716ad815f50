package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "    0 B  "},
		{512, "  512 B  "},
		{1024, "  1.0 KiB"},
		{1536, "  1.5 KiB"},
		{5 << 20, "  5.0 MiB"},
		{1 << 30, "  1.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in), "bytes=%d", tt.in)
	}
}

func TestGradientBarWidthIsStable(t *testing.T) {
	for _, pct := range []float64{0, 1, 49.9, 50, 99, 100, 120, -5} {
		bar := GradientBar(pct, 20)
		cells := strings.Count(bar, "█") + strings.Count(bar, "░")
		assert.Equal(t, 20, cells, "pct=%v", pct)
	}
}

func TestGradientBarTinyUsageStillVisible(t *testing.T) {
	bar := GradientBar(0.5, 20)
	assert.Contains(t, bar, "█")
}
