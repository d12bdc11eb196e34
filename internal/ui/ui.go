package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrick-utz/sonorium/internal/models"
	"github.com/patrick-utz/sonorium/internal/records"
	"github.com/patrick-utz/sonorium/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecordListView ViewState = iota
	VerifyView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	coll         *records.Collection
	verifier     *tasks.Verifier
	width        int
	height       int
	recordList   list.Model
	selectMode   bool
	marked       map[string]bool
	menu         Menu
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	report       *tasks.CoverReport
	err          error
	help         help.Model
	keys         keyMap

	// pendingIntent carries a menu callback result out of the key handler;
	// set by the menu callbacks, consumed synchronously in the same update.
	pendingIntent *menuIntentMsg
}

type recordsLoadedMsg struct {
	err error
}

type mutationDoneMsg struct {
	err error
}

type progressUpdateMsg tasks.ProgressUpdate

type verifyCompleteMsg struct {
	report *tasks.CoverReport
	err    error
}

type menuIntentMsg struct {
	selectMode *bool
	verify     bool
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, coll *records.Collection, verifier *tasks.Verifier) *Model {
	m := &Model{
		ctx:      ctx,
		view:     RecordListView,
		coll:     coll,
		verifier: verifier,
		marked:   map[string]bool{},
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.rebuildMenu()
	return m
}

// rebuildMenu reconstructs the stateless menu around the current mode flag.
// The callbacks translate menu intent into messages the update loop consumes.
func (m *Model) rebuildMenu() {
	m.menu = NewMenu(m.selectMode,
		func(next bool) { m.pendingIntent = &menuIntentMsg{selectMode: &next} },
		func() { m.pendingIntent = &menuIntentMsg{verify: true} },
	)
}

// Init initializes the TUI by loading the collection.
func (m *Model) Init() tea.Cmd {
	return m.loadRecords()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.recordList.Width() == 0 {
			m.recordList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RecordListView:
			return m.handleRecordListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rebuildList()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		m.rebuildList()
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case verifyCompleteMsg:
		m.report = msg.report
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RecordListView:
		return m.renderRecordList()
	case VerifyView:
		return m.renderVerify()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleRecordListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.batch):
		m.menu.ToggleSelectMode()
		return m.consumeIntent()

	case key.Matches(msg, m.keys.verify):
		m.menu.RequestVerifyCovers()
		return m.consumeIntent()

	case key.Matches(msg, m.keys.mark):
		if m.selectMode {
			if rec, ok := m.selectedRecord(); ok {
				m.marked[rec.ID] = !m.marked[rec.ID]
				m.rebuildList()
			}
			return m, nil
		}

	case key.Matches(msg, m.keys.favorite):
		if rec, ok := m.selectedRecord(); ok {
			return m, m.toggleFavorite(rec.ID)
		}

	case key.Matches(msg, m.keys.ordered):
		if rec, ok := m.selectedRecord(); ok {
			return m, m.toggleOrdered(rec.ID)
		}

	case key.Matches(msg, m.keys.delete):
		return m, m.deleteTargets()
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = RecordListView
		m.report = nil
		m.err = nil
		m.rebuildList()
		return m, nil
	}
	return m, nil
}

// consumeIntent applies the message produced by a menu callback.
func (m *Model) consumeIntent() (tea.Model, tea.Cmd) {
	intent := m.pendingIntent
	m.pendingIntent = nil
	if intent == nil {
		return m, nil
	}

	if intent.selectMode != nil {
		m.selectMode = *intent.selectMode
		if !m.selectMode {
			m.marked = map[string]bool{}
		}
		m.rebuildMenu()
		m.rebuildList()
		return m, nil
	}

	if intent.verify {
		m.view = VerifyView
		return m, m.startVerify()
	}

	return m, nil
}

// selectedRecord returns the record under the cursor.
func (m *Model) selectedRecord() (models.Record, bool) {
	selected := m.recordList.SelectedItem()
	if selected == nil {
		return models.Record{}, false
	}
	item, ok := selected.(recordItem)
	if !ok {
		return models.Record{}, false
	}
	return item.record, true
}

// verifyTargets returns the records a verification run covers: the marked
// ones in batch mode, otherwise the whole collection.
func (m *Model) verifyTargets() []models.Record {
	all := m.coll.All()
	if !m.selectMode || len(m.marked) == 0 {
		return all
	}

	var targets []models.Record
	for _, rec := range all {
		if m.marked[rec.ID] {
			targets = append(targets, rec)
		}
	}
	return targets
}

func (m *Model) rebuildList() {
	all := m.coll.All()
	items := make([]list.Item, len(all))
	for i, rec := range all {
		items[i] = recordItem{record: rec, marked: m.marked[rec.ID]}
	}

	m.recordList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.recordList.Title = fmt.Sprintf("Collection (%d records)", len(all))
	m.recordList.SetSize(m.width-4, m.height-8)
}

func (m *Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg{err: m.coll.Refresh(m.ctx)}
	}
}

func (m *Model) toggleFavorite(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.coll.ToggleFavorite(m.ctx, id)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) toggleOrdered(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.coll.ToggleOrdered(m.ctx, id)
		return mutationDoneMsg{err: err}
	}
}

// deleteTargets removes the marked records in batch mode, or the record under
// the cursor otherwise.
func (m *Model) deleteTargets() tea.Cmd {
	var ids []string
	if m.selectMode {
		for id, marked := range m.marked {
			if marked {
				ids = append(ids, id)
			}
		}
	} else if rec, ok := m.selectedRecord(); ok {
		ids = append(ids, rec.ID)
	}

	if len(ids) == 0 {
		return nil
	}

	return func() tea.Msg {
		for _, id := range ids {
			if err := m.coll.Delete(m.ctx, id); err != nil {
				return mutationDoneMsg{err: err}
			}
			delete(m.marked, id)
		}
		return mutationDoneMsg{}
	}
}

func (m *Model) startVerify() tea.Cmd {
	targets := m.verifyTargets()
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	progress := m.progressChan
	go func() {
		report, err := m.verifier.Verify(m.ctx, targets, progress)
		m.report = report
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return verifyCompleteMsg{report: m.report, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return verifyCompleteMsg{report: m.report, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderRecordList() string {
	status := ""
	if m.coll.Syncing() {
		status = styles.warn.Render("syncing…")
	} else if m.coll.Loading() {
		status = styles.warn.Render("loading…")
	}

	helpKeys := []key.Binding{m.keys.batch, m.keys.verify, m.keys.quit}
	if m.selectMode {
		helpKeys = []key.Binding{m.keys.mark, m.keys.batch, m.keys.delete, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s %s\n\n%s", m.menu.View(), m.recordList.View(), status, helpView)
}

func (m *Model) renderVerify() string {
	title := styles.title.Render("Verifying Covers")

	var phase string
	switch m.progress.Phase {
	case tasks.ScanRecords:
		phase = "Scanning collection..."
	case tasks.CheckCover:
		phase = fmt.Sprintf("Checking covers (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Summarize:
		phase = "Summarizing..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Verification failed: %v\n\nPress esc to go back, q to quit", m.err))
	}

	if m.report == nil {
		return styles.err.Render("No report available\n\nPress esc to go back, q to quit")
	}

	title := styles.ok.Render("✓ Cover Verification Complete")
	info := fmt.Sprintf(
		"\nRecords checked: %d\nOK: %d\nMissing cover: %d\nFailed: %d",
		m.report.Total,
		m.report.OKCount,
		m.report.MissingCount,
		m.report.FailedCount,
	)

	var failed string
	if m.report.FailedCount+m.report.MissingCount > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render("Problems:"))
		for _, check := range m.report.Checks {
			if check.Status != tasks.CoverOK {
				failed += fmt.Sprintf("\n  • %s (%s)", check.Record.Label(), check.Status)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
