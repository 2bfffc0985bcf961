package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		categories, err := client.Categories(commandContext(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(categories)
		}
		for _, c := range categories {
			fmt.Printf("%s: %s\n", c.Category, strings.Join(c.Jobs, ", "))
		}
		return nil
	},
}

var setCategoriesCmd = &cobra.Command{
	Use:   "set <category>...",
	Short: "Replace the categories on your own resume",
	Args:  cobra.RangeArgs(1, 10),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.SetOwnCategories(commandContext(cmd), args); err != nil {
			return err
		}
		fmt.Printf("Categories updated: %s\n", strings.Join(args, ", "))
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(setCategoriesCmd)
	rootCmd.AddCommand(categoriesCmd)
}
