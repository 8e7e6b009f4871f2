package query

import (
	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// CategoryCount holds a count for a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Overview is the aggregate list overview.
type Overview struct {
	ListName   string          `json:"list_name"`
	TotalTasks int             `json:"total_tasks"`
	Active     int             `json:"active"`
	Completed  int             `json:"completed"`
	Overdue    int             `json:"overdue"`
	Priorities []PriorityCount `json:"priorities"`
	Categories []CategoryCount `json:"categories"`
}

// Summary computes an overview of the whole collection. Overdue counts
// incomplete tasks whose due date is before today.
func Summary(listName string, tasks []*task.Task, today date.Date) Overview {
	o := Overview{
		ListName:   listName,
		TotalTasks: len(tasks),
	}

	prioCounts := make(map[task.Priority]int, len(task.Priorities))
	catCounts := make(map[string]int)
	for _, t := range tasks {
		if t.Completed {
			o.Completed++
		} else {
			o.Active++
		}
		if t.Overdue(today) {
			o.Overdue++
		}
		prioCounts[t.Priority]++
		catCounts[t.Category]++
	}

	o.Priorities = make([]PriorityCount, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		o.Priorities = append(o.Priorities, PriorityCount{Priority: string(p), Count: prioCounts[p]})
	}

	categories := Categories(tasks)
	o.Categories = make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		o.Categories = append(o.Categories, CategoryCount{Category: c, Count: catCounts[c]})
	}

	return o
}
