package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/store"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit REF[,REF,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified flags are changed
from the user's point of view; internally the store replaces the full
field set. REF is a task id or unique id prefix. Multiple refs can be
provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("desc", "", "new description")
	editCmd.Flags().Bool("clear-desc", false, "clear description")
	editCmd.Flags().String("category", "", "new category")
	editCmd.Flags().String("priority", "", "new priority (high, medium, low)")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-due", false, "clear due date")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	refs := store.ParseRefs(args[0])
	if len(refs) == 0 {
		return clierr.New(clierr.InvalidInput, "no task references provided")
	}

	return withLock(func(_ *config.Config, st *store.Store) error {
		// Single ref: full output.
		if len(refs) == 1 {
			return editSingleTask(st, refs[0], cmd)
		}

		// Batch mode.
		return runBatch(refs, func(ref string) error {
			_, err := executeEdit(st, ref, cmd)
			return err
		})
	})
}

// editSingleTask handles a single task edit with full output.
func editSingleTask(st *store.Store, ref string, cmd *cobra.Command) error {
	t, err := executeEdit(st, ref, cmd)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Updated task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

// executeEdit performs the core edit: resolve, merge flags over the
// current fields, and hand the store the full replacement field set.
func executeEdit(st *store.Store, ref string, cmd *cobra.Command) (*task.Task, error) {
	t, err := st.Find(ref)
	if err != nil {
		return nil, err
	}

	fields, changed, err := applyEditFlags(cmd, t.FieldsOf())
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, clierr.New(clierr.NoChanges, "no changes specified")
	}

	updated, err := st.Update(t.ID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, task.NotFound(ref)
	}
	return updated, nil
}

// applyEditFlags overlays flag values onto the task's current fields.
func applyEditFlags(cmd *cobra.Command, fields task.Fields) (task.Fields, bool, error) {
	changed := false

	if v, _ := cmd.Flags().GetString("title"); v != "" {
		fields.Title = v
		changed = true
	}
	descSet := cmd.Flags().Changed("desc")
	clearDesc, _ := cmd.Flags().GetBool("clear-desc")
	if descSet && clearDesc {
		return task.Fields{}, false, clierr.New(clierr.InvalidInput, "cannot use --desc and --clear-desc together")
	}
	if descSet {
		v, _ := cmd.Flags().GetString("desc")
		fields.Description = v
		changed = true
	}
	if clearDesc {
		fields.Description = ""
		changed = true
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		fields.Category = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := task.ValidatePriority(v); err != nil {
			return task.Fields{}, false, err
		}
		fields.Priority = task.Priority(v)
		changed = true
	}

	dueSet := cmd.Flags().Changed("due")
	clearDue, _ := cmd.Flags().GetBool("clear-due")
	if dueSet && clearDue {
		return task.Fields{}, false, clierr.New(clierr.InvalidInput, "cannot use --due and --clear-due together")
	}
	if dueSet {
		v, _ := cmd.Flags().GetString("due")
		d, err := date.Parse(v)
		if err != nil {
			return task.Fields{}, false, task.ValidateDate("due", v, err)
		}
		fields.Due = &d
		changed = true
	}
	if clearDue {
		fields.Due = nil
		changed = true
	}

	return fields, changed, nil
}
