package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/store"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Add a new task",
	Long: `Adds a task with the given title and optional fields.

Title can be provided as a positional argument or via --title flag.
Omitted fields get defaults: medium priority, the "uncategorized"
category, an empty description, and no due date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("desc", "", "task description")
	addCmd.Flags().String("category", "", "task category")
	addCmd.Flags().String("priority", "", "task priority (high, medium, low)")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}

	fields, err := fieldsFromFlags(cmd, title)
	if err != nil {
		return err
	}

	return withLock(func(cfg *config.Config, st *store.Store) error {
		t, err := st.Add(cfg.ApplyTaskDefaults(fields))
		if err != nil {
			return err
		}
		return outputAddResult(t)
	})
}

func outputAddResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task %s: %s", output.ShortID(t.ID), t.Title)
	output.Messagef(os.Stdout, "  Category: %s | Priority: %s", t.Category, t.Priority)
	if t.Due != nil {
		output.Messagef(os.Stdout, "  Due: %s", t.Due)
	}
	return nil
}

// resolveAddTitle returns the task title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}

// fieldsFromFlags builds the task fields from command flags, validating
// priority and due date.
func fieldsFromFlags(cmd *cobra.Command, title string) (task.Fields, error) {
	fields := task.Fields{Title: title}

	if v, _ := cmd.Flags().GetString("desc"); v != "" {
		fields.Description = v
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		fields.Category = v
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := task.ValidatePriority(v); err != nil {
			return task.Fields{}, err
		}
		fields.Priority = task.Priority(v)
	}
	if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return task.Fields{}, task.ValidateDate("due", v, err)
		}
		fields.Due = &d
	}

	return fields, nil
}
