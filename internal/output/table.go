package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

// shortIDLen is the number of id characters shown in listings. The full
// UUID stays available via JSON output and show.
const shortIDLen = 8

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	// Priority colors, most urgent first.
	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	priorityStyles = map[task.Priority]lipgloss.Style{}
	categoryStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// ShortID returns the truncated display form of a task id.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	today := date.Today()

	// Calculate column widths.
	const pad = 2
	idW, doneW, prioW, titleW, catW := shortIDLen+pad, 6, 10, 7, 10
	for _, t := range tasks {
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		catW = max(catW, min(len(t.Category)+pad, 24))  //nolint:mnd // max category column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", doneW, "DONE", prioW, "PRIORITY",
		titleW, "TITLE", catW, "CATEGORY", "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		done := dimStyle.Render("[ ]")
		if t.Completed {
			done = doneStyle.Render("[x]")
		}
		due := dimStyle.Render("--")
		if t.Due != nil {
			due = t.Due.String()
			if t.Overdue(today) {
				due = overdueStyle.Render(due + "!")
			}
		}

		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idW, ShortID(t.ID),
			padRight(done, doneW),
			padRight(priorityStyles[t.Priority].Render(string(t.Priority)), prioW),
			padRight(title, titleW),
			padRight(categoryStyle.Render(t.Category), catW),
			due)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. The description is
// printed separately by the caller so it can be markdown-rendered.
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := fmt.Sprintf("Task %s: %s", ShortID(t.ID), t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	status := "active"
	if t.Completed {
		status = doneStyle.Render("completed")
	}
	printField(w, "ID", t.ID)
	printField(w, "Status", status)
	printField(w, "Priority", priorityStyles[t.Priority].Render(string(t.Priority)))
	printField(w, "Category", categoryStyle.Render(t.Category))
	if t.Due != nil {
		due := t.Due.String()
		if t.Overdue(date.Today()) {
			due = overdueStyle.Render(due + " (overdue)")
		}
		printField(w, "Due", due)
	} else {
		printField(w, "Due", dimStyle.Render("--"))
	}
	printField(w, "Created", t.CreatedAt.Format("2006-01-02 15:04"))
}

// OverviewTable renders a list summary as a formatted dashboard.
func OverviewTable(w io.Writer, o query.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(o.ListName))
	fmt.Fprintf(w, "Total: %d tasks (%d active, %d completed", o.TotalTasks, o.Active, o.Completed)
	if o.Overdue > 0 {
		fmt.Fprintf(w, ", %s", overdueStyle.Render(strconv.Itoa(o.Overdue)+" overdue"))
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)

	header := fmt.Sprintf("%-16s %6s", "PRIORITY", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, pc := range o.Priorities {
		const prioColW = 16
		fmt.Fprintf(w, "%s %6d\n",
			padRight(priorityStyles[task.Priority(pc.Priority)].Render(pc.Priority), prioColW), pc.Count)
	}

	if len(o.Categories) > 0 {
		fmt.Fprintln(w)
		catHeader := fmt.Sprintf("%-16s %6s", "CATEGORY", "COUNT")
		fmt.Fprintln(w, headerStyle.Render(catHeader))
		for _, cc := range o.Categories {
			const catColW = 16
			fmt.Fprintf(w, "%s %6d\n",
				padRight(categoryStyle.Render(cc.Category), catColW), cc.Count)
		}
	}
}

// GroupedTable renders a grouped view with per-group counts.
func GroupedTable(w io.Writer, gs query.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
		fmt.Fprintf(w, "  %s %d\n", padRight("active", 12), g.Active)   //nolint:mnd // label column width
		fmt.Fprintf(w, "  %s %d\n", padRight("completed", 12), g.Completed) //nolint:mnd // label column width
	}
}

// CategoryList renders the distinct categories, one per line.
func CategoryList(w io.Writer, categories []string) {
	if len(categories) == 0 {
		fmt.Fprintln(os.Stderr, "No categories found.")
		return
	}
	for _, c := range categories {
		fmt.Fprintln(w, categoryStyle.Render(c))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
