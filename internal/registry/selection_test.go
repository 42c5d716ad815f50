package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name string
		expr string
		n    int
		want []int
	}{
		{"mixed indices and range", "1,3-5", 6, []int{0, 2, 3, 4}},
		{"out of range is skipped", "9", 6, nil},
		{"all", "all", 3, []int{0, 1, 2}},
		{"all case-insensitive", "ALL", 2, []int{0, 1}},
		{"single", "2", 6, []int{1}},
		{"duplicates collapse", "2,2,1-2", 6, []int{0, 1}},
		{"garbage tokens skipped", "x,2,foo-bar", 6, []int{1}},
		{"inverted range skipped", "5-3", 6, nil},
		{"range clipped to bounds", "4-9", 6, []int{3, 4, 5}},
		{"spaces tolerated", " 1 , 3 - 4 ", 6, []int{0, 2, 3}},
		{"empty", "", 6, nil},
		{"empty listing", "1", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSelection(tt.expr, tt.n))
		})
	}
}
