package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().String("category", "", "filter by category (exact match)")
	listCmd.Flags().String("status", query.FilterAll, "filter by status ("+strings.Join(query.StatusFilters, ", ")+")")
	listCmd.Flags().String("sort", "", "sort key ("+strings.Join(query.SortKeys, ", ")+")")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(query.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	status, _ := cmd.Flags().GetString("status")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if !query.ValidStatusFilter(status) {
		return clierr.Newf(clierr.InvalidFilter, "invalid --status value %q; valid: %s",
			status, strings.Join(query.StatusFilters, ", "))
	}
	if sortBy != "" && !query.ValidSortKey(sortBy) {
		return clierr.Newf(clierr.InvalidSort, "invalid --sort key %q; valid: %s",
			sortBy, strings.Join(query.SortKeys, ", "))
	}
	if groupBy != "" && !slices.Contains(query.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidGroupBy, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(query.ValidGroupByFields(), ", "))
	}

	if groupBy != "" {
		grouped := query.GroupBy(st.Tasks(), groupBy)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, grouped)
		}
		output.GroupedTable(os.Stdout, grouped)
		return nil
	}

	if category != "" {
		st.SetCategoryFilter(category)
	}
	st.SetStatusFilter(status)
	if sortBy != "" {
		st.SetSort(sortBy)
	} else {
		st.SetSort(cfg.DefaultSortKey())
	}

	tasks := st.View()
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	return outputTaskList(tasks)
}

func outputTaskList(tasks []*task.Task) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}
