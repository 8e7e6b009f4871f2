package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mertens-software-gmbh/todo/internal/output"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show REF",
	Short: "Show task details",
	Long:  `Displays full details of a single task including its description.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	t, err := st.Find(args[0])
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t)
		return nil
	}

	output.TaskDetail(os.Stdout, t)
	printDescription(t)
	return nil
}

// printDescription renders the description below the detail block,
// markdown-formatted when writing to a terminal.
func printDescription(t *task.Task) {
	if t.Description == "" {
		return
	}
	fmt.Fprintln(os.Stdout)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(t.Description, "auto"); err == nil {
			fmt.Fprint(os.Stdout, rendered)
			return
		}
	}
	fmt.Fprintln(os.Stdout, t.Description)
}
