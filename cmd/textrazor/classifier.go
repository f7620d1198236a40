package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textrazor-go/pkg/textrazor"
)

var classifierCmd = &cobra.Command{
	Use:   "classifier",
	Short: "Manage custom classifiers",
	Long: `Classifier maintains the account's custom classifiers. A classifier is a
set of categories, each defined by a query expression; documents analyzed
with the classifier selected are scored against every category.`,
}

var classifierCreateCmd = &cobra.Command{
	Use:   "create <id> <categories.yaml>",
	Short: "Create or replace a classifier from a YAML category file",
	Long: `Create reads a YAML list of categories and uploads them as the classifier.
Each category has a categoryId and a query, plus an optional label:

  - categoryId: sports
    label: Sports
    query: concept('sport')`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading categories file: %w", err)
		}
		var categories []textrazor.Category
		if err := yaml.Unmarshal(data, &categories); err != nil {
			return fmt.Errorf("parsing categories file: %w", err)
		}
		if len(categories) == 0 {
			return fmt.Errorf("categories file %s is empty", args[1])
		}

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.CreateClassifier(cmd.Context(), args[0], categories); err != nil {
			return err
		}
		fmt.Printf("Classifier %s created with %d categories.\n", args[0], len(categories))
		return nil
	},
}

var classifierDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a classifier and all its categories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.DeleteClassifier(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Classifier %s deleted.\n", args[0])
		return nil
	},
}

var classifierCategoriesCmd = &cobra.Command{
	Use:   "categories <id>",
	Short: "List a classifier's categories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		categories, err := client.ClassifierCategories(cmd.Context(), args[0], limit, offset)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			fmt.Println("No categories.")
			return nil
		}
		for _, c := range categories {
			fmt.Printf("%-20s %-20s %s\n", c.CategoryID, c.Label, c.Query)
		}
		return nil
	},
}

var classifierRemoveCategoryCmd = &cobra.Command{
	Use:   "remove-category <id> <category-id>",
	Short: "Delete one category from a classifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.DeleteClassifierCategory(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Category %s removed from %s.\n", args[1], args[0])
		return nil
	},
}

func init() {
	classifierCategoriesCmd.Flags().Int("limit", 0, "maximum categories to return (0 = service default)")
	classifierCategoriesCmd.Flags().Int("offset", 0, "number of categories to skip")

	classifierCmd.AddCommand(classifierCreateCmd, classifierDeleteCmd,
		classifierCategoriesCmd, classifierRemoveCategoryCmd)
	rootCmd.AddCommand(classifierCmd)
}
