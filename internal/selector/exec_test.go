package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteContinuesPastFailures(t *testing.T) {
	items := []Candidate{
		{Size: 300, Path: "/one"},
		{Size: 200, Path: "/two"},
		{Size: 100, Path: "/three"},
	}

	var calls []string
	res := Execute(items, func(path string) (int64, error) {
		calls = append(calls, path)
		if path == "/two" {
			return 0, errors.New("permission denied")
		}
		return 100, nil
	})

	// Every path is attempted, in original order.
	assert.Equal(t, []string{"/one", "/two", "/three"}, calls)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, int64(200), res.Freed)

	assert.Len(t, res.Outcomes, 3)
	assert.Error(t, res.Outcomes[1].Err)
	assert.NoError(t, res.Outcomes[0].Err)
}

func TestExecuteEmptySelection(t *testing.T) {
	res := Execute(nil, func(string) (int64, error) {
		t.Fatal("remove must not be called for an empty selection")
		return 0, nil
	})
	assert.Zero(t, res.Deleted)
	assert.Zero(t, res.Freed)
}
