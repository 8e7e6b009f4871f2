package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mertens-software-gmbh/todo/internal/output"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List categories",
	Long:    `Lists the distinct categories in use, sorted alphabetically.`,
	RunE:    runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	categories := st.Categories()
	if outputFormat() == output.FormatJSON {
		if categories == nil {
			categories = []string{}
		}
		return output.JSON(os.Stdout, categories)
	}

	output.CategoryList(os.Stdout, categories)
	return nil
}
