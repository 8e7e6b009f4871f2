// Package tui implements the interactive terminal view of a todo list.
// The view owns no durable state: every mutation goes through the store
// and the visible list is rebuilt from store.View on each change.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/store"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

// ReloadMsg asks the model to re-read the store from disk.
type ReloadMsg struct{}

// screen represents the current screen state.
type screen int

const (
	screenList screen = iota
	screenForm
	screenConfirmDelete
)

const (
	keyEsc      = "esc"
	listChrome  = 5 // header, filter line, blank, help, status
	maxListRows = 500
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	checkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	priorityMarks = map[task.Priority]string{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("!"),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("·"),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Render(" "),
	}
)

// Model is the top-level bubbletea model.
type Model struct {
	cfg    *config.Config
	st     *store.Store
	tasks  []*task.Task
	cursor int
	screen screen
	width  int
	height int
	err    error

	// Filter/sort cycling positions.
	categoryIdx int
	statusIdx   int
	sortIdx     int

	// Create/edit form; editID is empty for a new task.
	form   form
	editID string

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// New creates the list model on top of an opened store.
func New(cfg *config.Config, st *store.Store) *Model {
	m := &Model{cfg: cfg, st: st}
	for i, k := range query.SortKeys {
		if k == cfg.DefaultSortKey() {
			m.sortIdx = i
		}
	}
	m.applyViewState()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case ReloadMsg:
		if err := m.st.Reload(); err != nil {
			m.err = err
		}
		m.applyViewState()
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.screen {
	case screenForm:
		return m.form.view(m.width)
	case screenConfirmDelete:
		return m.viewDeleteConfirm()
	default:
		return m.viewList()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenForm:
		return m.handleFormKey(msg)
	case screenConfirmDelete:
		return m.handleDeleteKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "x":
		m.toggleSelected()
	case "d":
		if t := m.selectedTask(); t != nil {
			m.deleteID = t.ID
			m.deleteTitle = t.Title
			m.screen = screenConfirmDelete
		}
	case "a":
		m.editID = ""
		m.form = newForm(m.cfg.ApplyTaskDefaults(task.Fields{}), "New task")
		m.screen = screenForm
		return m, m.form.focusCmd()
	case "e":
		if t := m.selectedTask(); t != nil {
			m.editID = t.ID
			m.form = newForm(t.FieldsOf(), "Edit task")
			m.screen = screenForm
			return m, m.form.focusCmd()
		}
	case "c":
		m.cycleCategory()
	case "f":
		m.cycleStatus()
	case "s":
		m.cycleSort()
	}
	return m, nil
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, err := m.st.Delete(m.deleteID); err != nil {
			m.err = err
		}
		m.screen = screenList
		m.applyViewState()
	case "n", "N", keyEsc, "q":
		m.screen = screenList
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.screen = screenList
		return m, nil
	case "enter":
		fields, err := m.form.fields()
		if err != nil {
			m.form.err = err
			return m, nil
		}
		if m.editID == "" {
			_, err = m.st.Add(fields)
		} else {
			_, err = m.st.Update(m.editID, fields)
		}
		if err != nil {
			m.form.err = err
			return m, nil
		}
		m.screen = screenList
		m.applyViewState()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// toggleSelected flips completion on the task under the cursor.
func (m *Model) toggleSelected() {
	t := m.selectedTask()
	if t == nil {
		return
	}
	if _, err := m.st.ToggleComplete(t.ID); err != nil {
		m.err = err
	}
	m.applyViewState()
}

func (m *Model) cycleCategory() {
	choices := m.categoryChoices()
	m.categoryIdx = (m.categoryIdx + 1) % len(choices)
	m.applyViewState()
}

func (m *Model) cycleStatus() {
	m.statusIdx = (m.statusIdx + 1) % len(query.StatusFilters)
	m.applyViewState()
}

func (m *Model) cycleSort() {
	m.sortIdx = (m.sortIdx + 1) % len(query.SortKeys)
	m.applyViewState()
}

// categoryChoices returns the cycle of category filter values: "all"
// followed by every category currently in use.
func (m *Model) categoryChoices() []string {
	return append([]string{query.FilterAll}, m.st.Categories()...)
}

// applyViewState pushes the cycling positions into the store and pulls
// a fresh filtered view.
func (m *Model) applyViewState() {
	choices := m.categoryChoices()
	if m.categoryIdx >= len(choices) {
		m.categoryIdx = 0
	}
	m.st.SetCategoryFilter(choices[m.categoryIdx])
	m.st.SetStatusFilter(query.StatusFilters[m.statusIdx])
	m.st.SetSort(query.SortKeys[m.sortIdx])

	m.tasks = m.st.View()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectedTask() *task.Task {
	if m.cursor >= 0 && m.cursor < len(m.tasks) {
		return m.tasks[m.cursor]
	}
	return nil
}

func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.cfg.List.Name))
	b.WriteString(fmt.Sprintf("  %d/%d tasks\n", len(m.tasks), m.st.Len()))

	filter := m.st.Filter()
	b.WriteString(filterStyle.Render(fmt.Sprintf("category:%s  status:%s  sort:%s",
		filter.Category, filter.Status, m.st.SortKey())))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(helpStyle.Render("Nothing here. Press a to add a task."))
		b.WriteString("\n")
	}

	today := date.Today()
	visible := m.visibleRange()
	for i := visible[0]; i < visible[1]; i++ {
		b.WriteString(m.renderRow(m.tasks[i], i == m.cursor, today))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render(
		"j/k move · space toggle · a add · e edit · d delete · c category · f status · s sort · q quit"))
	return b.String()
}

// visibleRange keeps the cursor on screen when the list outgrows the window.
func (m *Model) visibleRange() [2]int {
	rows := m.height - listChrome
	if rows < 1 {
		rows = 1
	}
	if rows > maxListRows {
		rows = maxListRows
	}
	if len(m.tasks) <= rows {
		return [2]int{0, len(m.tasks)}
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.tasks) {
		end = len(m.tasks)
		start = end - rows
	}
	return [2]int{start, end}
}

func (m *Model) renderRow(t *task.Task, selected bool, today date.Date) string {
	check := "[ ]"
	if t.Completed {
		check = checkStyle.Render("[x]")
	}

	title := t.Title
	if title == "" {
		title = "(untitled)"
	}
	if t.Completed {
		title = doneStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s %s", check, priorityMarks[t.Priority], title,
		categoryStyle.Render("@"+t.Category))
	if t.Due != nil {
		due := " due:" + t.Due.String()
		if t.Overdue(today) {
			due = overdueStyle.Render(due)
		}
		line += due
	}

	if m.cfg.TUI.ShowDescriptions && t.Description != "" {
		line += "\n      " + helpStyle.Render(firstLine(t.Description))
	}

	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}
	return prefix + line
}

// firstLine truncates a description to a single display line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxLen = 60
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}

func (m *Model) viewDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete task?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s\n\n", m.deleteTitle))
	b.WriteString(helpStyle.Render("y delete · n cancel"))
	return b.String()
}
