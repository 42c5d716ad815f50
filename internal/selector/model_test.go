package selector

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// key builds a plain character key message.
func key(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// typeString feeds a string into the model one rune message at a time.
func typeString(m Model, s string) Model {
	for _, r := range s {
		m = update(m, key(r))
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func testItems() []Candidate {
	return []Candidate{
		{Size: 500, Path: "/a"},
		{Size: 200, Path: "/b"},
		{Size: 100, Path: "/c"},
	}
}

func TestToggleTwiceRestoresUnselected(t *testing.T) {
	m := New(testItems())

	m = update(m, key(' '))
	assert.Equal(t, 1, m.SelectedCount())

	m = update(m, key(' '))
	assert.Equal(t, 0, m.SelectedCount())
	assert.Empty(t, m.Selected())
}

func TestToggleIsIndependentOfCursor(t *testing.T) {
	m := New(testItems())

	m = update(m, key(' ')) // select index 0
	m = update(m, key('j'))
	m = update(m, key('j'))

	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, []Candidate{{Size: 500, Path: "/a"}}, m.Selected())
}

func TestCursorClampedAtBounds(t *testing.T) {
	m := New(testItems())

	// Up from the first index stays at the first index.
	m = update(m, key('k'))
	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	// Down past the last index stays at the last index.
	for i := 0; i < 10; i++ {
		m = update(m, key('j'))
	}
	assert.Equal(t, len(testItems())-1, m.cursor)

	// Arbitrary move script never leaves [0, n-1].
	script := "jjkkkjkjjjjjkkkkkkjjjj"
	for _, r := range script {
		m = update(m, key(r))
		assert.GreaterOrEqual(t, m.cursor, 0)
		assert.Less(t, m.cursor, len(testItems()))
	}
}

func TestSubmitWithoutSelectionStaysInMenu(t *testing.T) {
	m := New(testItems())

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Confirmed())
	assert.False(t, m.Cancelled())
	assert.Contains(t, m.View(), "nothing selected")

	// The notice clears once something is selected.
	m = update(m, key(' '))
	assert.NotContains(t, m.View(), "nothing selected")
}

func TestQuitCancels(t *testing.T) {
	m := New(testItems())
	m = update(m, key(' '))
	m = update(m, key('q'))

	assert.True(t, m.Cancelled())
	assert.False(t, m.Confirmed())
}

func TestConfirmRequiresExactYes(t *testing.T) {
	for _, input := range []string{"Yes", "y", "", "YES", "yesno", "no", " yes"} {
		t.Run("input="+input, func(t *testing.T) {
			m := New(testItems())
			m = update(m, key(' '))
			m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
			require.Equal(t, phaseConfirm, m.phase)

			m = typeString(m, input)
			m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

			assert.True(t, m.Cancelled(), "input %q must cancel", input)
			assert.False(t, m.Confirmed())
		})
	}
}

func TestConfirmYesDeletesOnlySelected(t *testing.T) {
	m := New([]Candidate{
		{Size: 500, Path: "/a"},
		{Size: 200, Path: "/b"},
	})

	m = update(m, key('j')) // cursor to /b
	m = update(m, key(' ')) // select /b
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "yes")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, m.Confirmed())

	var calls []string
	res := Execute(m.Selected(), func(path string) (int64, error) {
		calls = append(calls, path)
		return 200, nil
	})

	assert.Equal(t, []string{"/b"}, calls)
	assert.Equal(t, int64(200), res.Freed)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 0, res.Errors)
}

func TestSelectAllToggle(t *testing.T) {
	m := New(testItems())

	m = update(m, key('a'))
	assert.Equal(t, 3, m.SelectedCount())
	assert.Equal(t, int64(800), m.SelectedSize())

	m = update(m, key('a'))
	assert.Equal(t, 0, m.SelectedCount())
}

func TestViewShowsCheckboxState(t *testing.T) {
	m := New(testItems())
	m = update(m, key(' '))

	view := m.View()
	assert.Contains(t, view, "/a")
	assert.True(t, strings.Contains(view, "[✓]") || strings.Contains(view, "[x]"))
}
