package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/store"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var rmCmd = &cobra.Command{
	Use:     "rm REF[,REF,...]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long: `Permanently removes a task from the list. Prompts for confirmation in
interactive mode. Multiple refs can be provided as a comma-separated
list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	refs := store.ParseRefs(args[0])
	if len(refs) == 0 {
		return clierr.New(clierr.InvalidInput, "no task references provided")
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(refs) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
	}

	return withLock(func(_ *config.Config, st *store.Store) error {
		if len(refs) == 1 {
			return deleteSingleTask(st, refs[0], yes)
		}

		// Batch mode (yes is guaranteed true here).
		return runBatch(refs, func(ref string) error {
			return executeDelete(st, ref)
		})
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(st *store.Store, ref string, yes bool) error {
	t, err := st.Find(ref)
	if err != nil {
		return err
	}

	// Require confirmation in TTY mode unless --yes.
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", output.ShortID(t.ID), t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	removed, err := st.Delete(t.ID)
	if err != nil {
		return err
	}
	if !removed {
		return task.NotFound(ref)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "deleted",
			"id":     t.ID,
			"title":  t.Title,
		})
	}

	output.Messagef(os.Stdout, "Deleted task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

// executeDelete performs the core delete: resolve and remove.
func executeDelete(st *store.Store, ref string) error {
	t, err := st.Find(ref)
	if err != nil {
		return err
	}
	removed, err := st.Delete(t.ID)
	if err != nil {
		return err
	}
	if !removed {
		return task.NotFound(ref)
	}
	return nil
}
