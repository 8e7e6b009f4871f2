package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
	fmt.Fprintln(w, "  created:"+t.CreatedAt.Format("2006-01-02"))

	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// OverviewCompact renders a list summary in compact format.
func OverviewCompact(w io.Writer, o query.Overview) {
	line := fmt.Sprintf("%s (%d tasks, %d active, %d completed", o.ListName, o.TotalTasks, o.Active, o.Completed)
	if o.Overdue > 0 {
		line += ", " + strconv.Itoa(o.Overdue) + " overdue"
	}
	fmt.Fprintln(w, line+")")

	if len(o.Priorities) > 0 {
		parts := make([]string, 0, len(o.Priorities))
		for _, pc := range o.Priorities {
			parts = append(parts, pc.Priority+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
	if len(o.Categories) > 0 {
		parts := make([]string, 0, len(o.Categories))
		for _, cc := range o.Categories {
			parts = append(parts, cc.Category+"="+strconv.Itoa(cc.Count))
		}
		fmt.Fprintln(w, "Category: "+strings.Join(parts, " "))
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := ShortID(t.ID) + " " + check + " (" + string(t.Priority) + ") " + t.Title

	if t.Category != "" {
		line += " @" + t.Category
	}
	if t.Due != nil {
		line += " due:" + t.Due.String()
	}

	return line
}
