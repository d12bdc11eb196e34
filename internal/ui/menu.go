package ui

import "github.com/charmbracelet/lipgloss"

// Batch-selection menu labels. The label purely reflects the flag the menu
// was given.
const (
	labelEnterBatch = "Batch-Bearbeitung"
	labelLeaveBatch = "Auswahl beenden"
	labelVerify     = "Cover prüfen"
)

// Menu is the stateless action menu above the record list.
//
// It holds no state of its own beyond the flag and callbacks it was
// constructed with: the parent owns the batch-selection mode and rebuilds the
// menu when it changes. User actions are forwarded through the callbacks
// exactly once per invocation.
type Menu struct {
	selectMode         bool
	onSelectModeChange func(bool)
	onVerifyCovers     func()
}

// NewMenu builds a menu reflecting selectMode. onSelectModeChange receives
// the desired new mode when the user toggles batch selection; onVerifyCovers
// is invoked without arguments when the user requests cover verification.
func NewMenu(selectMode bool, onSelectModeChange func(bool), onVerifyCovers func()) Menu {
	return Menu{
		selectMode:         selectMode,
		onSelectModeChange: onSelectModeChange,
		onVerifyCovers:     onVerifyCovers,
	}
}

// SelectMode returns the flag the menu reflects.
func (m Menu) SelectMode() bool {
	return m.selectMode
}

// SelectModeLabel returns the batch-selection entry's label for the current
// flag.
func (m Menu) SelectModeLabel() string {
	if m.selectMode {
		return labelLeaveBatch
	}
	return labelEnterBatch
}

// VerifyLabel returns the cover-verification entry's label.
func (m Menu) VerifyLabel() string {
	return labelVerify
}

// ToggleSelectMode forwards the toggle intent: the callback receives the
// negation of the current flag.
func (m Menu) ToggleSelectMode() {
	if m.onSelectModeChange != nil {
		m.onSelectModeChange(!m.selectMode)
	}
}

// RequestVerifyCovers forwards the cover-verification intent.
func (m Menu) RequestVerifyCovers() {
	if m.onVerifyCovers != nil {
		m.onVerifyCovers()
	}
}

// View renders the menu as a single line. The batch entry is highlighted
// while batch selection is active.
func (m Menu) View() string {
	batchStyle := styles.warn
	if m.selectMode {
		batchStyle = styles.mark
	}
	entries := []string{
		batchStyle.Render("[b] " + m.SelectModeLabel()),
		styles.warn.Render("[v] " + m.VerifyLabel()),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, entries[0], "   ", entries[1])
}
