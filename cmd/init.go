package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init [NAME]",
	Short: "Create a new todo list",
	Long: `Creates a todo directory with a config file in the current directory
(or in --dir). The list name defaults to the enclosing directory name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	dir := flagDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = filepath.Base(filepath.Dir(dir))
	}

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "created",
			"name":   cfg.List.Name,
			"dir":    cfg.Dir(),
		})
	}

	output.Messagef(os.Stdout, "Created todo list %q in %s", cfg.List.Name, cfg.Dir())
	return nil
}
