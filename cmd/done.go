package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/store"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var doneCmd = &cobra.Command{
	Use:     "done REF[,REF,...]",
	Aliases: []string{"toggle"},
	Short:   "Toggle task completion",
	Long: `Flips the completed state of a task. Running it twice on the same task
restores the original state. Multiple refs can be provided as a
comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	refs := store.ParseRefs(args[0])
	if len(refs) == 0 {
		return clierr.New(clierr.InvalidInput, "no task references provided")
	}

	return withLock(func(_ *config.Config, st *store.Store) error {
		if len(refs) == 1 {
			return toggleSingleTask(st, refs[0])
		}

		return runBatch(refs, func(ref string) error {
			_, err := executeToggle(st, ref)
			return err
		})
	})
}

func toggleSingleTask(st *store.Store, ref string) error {
	t, err := executeToggle(st, ref)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	state := "active"
	if t.Completed {
		state = "completed"
	}
	output.Messagef(os.Stdout, "Task %s is now %s: %s", output.ShortID(t.ID), state, t.Title)
	return nil
}

func executeToggle(st *store.Store, ref string) (*task.Task, error) {
	t, err := st.Find(ref)
	if err != nil {
		return nil, err
	}
	toggled, err := st.ToggleComplete(t.ID)
	if err != nil {
		return nil, err
	}
	if toggled == nil {
		return nil, task.NotFound(ref)
	}
	return toggled, nil
}
