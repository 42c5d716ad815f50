package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"500MB", 500 * 1000 * 1000},
		{"1GiB", 1 << 30},
		{"200MiB", 200 << 20},
		{"42", 42},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	_, err := ParseSize("lots")
	assert.Error(t, err)
}
