package ui

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmTyped(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact yes", "yes\n", true},
		{"yes with crlf", "yes\r\n", true},
		{"capitalized", "Yes\n", false},
		{"single letter", "y\n", false},
		{"prefix only", "yesno\n", false},
		{"leading space", " yes\n", false},
		{"empty line", "\n", false},
		{"no", "no\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfirmTyped(strings.NewReader(tt.input), io.Discard, "Delete everything?")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmTypedEOFCancels(t *testing.T) {
	assert.False(t, ConfirmTyped(strings.NewReader(""), io.Discard, "Proceed?"))
}

func TestConfirmTypedYesWithoutNewlineAtEOF(t *testing.T) {
	// A final line without a trailing newline still counts.
	assert.True(t, ConfirmTyped(strings.NewReader("yes"), io.Discard, "Proceed?"))
}
