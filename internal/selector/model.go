package selector

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Candidate is a file offered for deletion: size plus absolute path.
// The list order is the reporter's order (size-descending) and is never
// re-sorted here.
type Candidate struct {
	Size int64
	Path string
}

// confirmToken is the only input that moves the menu from confirming to
// executing. Compared with a single equality check.
const confirmToken = "yes"

// ─── Phases ──────────────────────────────────────────────────────────────────

type phase int

const (
	phaseBrowse phase = iota
	phaseConfirm
	phaseCancelled
	phaseConfirmed
)

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea model for the checkbox deletion menu. The caller
// must not construct it with an empty candidate list; reporting "nothing
// found" is the caller's job.
type Model struct {
	items    []Candidate
	selected []bool // one entry per candidate
	cursor   int
	total    int64

	phase  phase
	notice string
	input  textinput.Model

	width  int
	height int
	offset int // viewport scroll offset
}

// New creates a menu over the given candidates.
func New(items []Candidate) Model {
	var total int64
	for _, it := range items {
		total += it.Size
	}

	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 16
	ti.Width = 18

	return Model{
		items:    items,
		selected: make([]bool, len(items)),
		total:    total,
		input:    ti,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseConfirm {
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

// updateBrowse handles keys while the checkbox list is active.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	case "q", "esc", "ctrl+c":
		m.phase = phaseCancelled
		return m, tea.Quit

	case "up", "k":
		// Clamped, no wraparound.
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureVisible()
		}

	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
		m.notice = ""

	case "a":
		// Toggle all: select everything unless everything is selected.
		all := true
		for _, s := range m.selected {
			if !s {
				all = false
				break
			}
		}
		for i := range m.selected {
			m.selected[i] = !all
		}
		m.notice = ""

	case "enter":
		if m.SelectedCount() == 0 {
			// Submitting nothing is a no-op: stay in the menu with a notice.
			m.notice = "nothing selected, press space to mark files"
			return m, nil
		}
		m.phase = phaseConfirm
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// updateConfirm handles the typed confirmation. Enter with exactly "yes"
// confirms; Enter with anything else cancels the whole operation rather
// than re-prompting.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {

	case tea.KeyEnter:
		if m.input.Value() == confirmToken {
			m.phase = phaseConfirmed
		} else {
			m.phase = phaseCancelled
		}
		return m, tea.Quit

	case tea.KeyEsc, tea.KeyCtrlC:
		m.phase = phaseCancelled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ─── Results ─────────────────────────────────────────────────────────────────

// Confirmed reports whether the operator typed the confirmation token.
func (m Model) Confirmed() bool {
	return m.phase == phaseConfirmed
}

// Cancelled reports whether the operator quit without confirming.
func (m Model) Cancelled() bool {
	return m.phase == phaseCancelled
}

// Selected returns the checked candidates in their original order.
func (m Model) Selected() []Candidate {
	var out []Candidate
	for i, it := range m.items {
		if m.selected[i] {
			out = append(out, it)
		}
	}
	return out
}

// SelectedCount returns how many candidates are checked.
func (m Model) SelectedCount() int {
	n := 0
	for _, s := range m.selected {
		if s {
			n++
		}
	}
	return n
}

// SelectedSize returns the byte total of the checked candidates.
func (m Model) SelectedSize() int64 {
	var total int64
	for i, it := range m.items {
		if m.selected[i] {
			total += it.Size
		}
	}
	return total
}

// ─── Viewport ────────────────────────────────────────────────────────────────

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 9 // header (5) + footer (3) + padding
	if h < 1 {
		h = 1
	}
	return h
}
