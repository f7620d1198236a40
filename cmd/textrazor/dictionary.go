package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textrazor-go/pkg/textrazor"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Manage custom entity dictionaries",
	Long: `Dictionary maintains the account's custom entity dictionaries. Documents
analyzed with the entities extractor are matched against every dictionary on
the account; matches come back as entities carrying the entry's metadata.`,
}

var dictionaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all dictionaries on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		dicts, err := client.Dictionaries(cmd.Context())
		if err != nil {
			return err
		}
		if len(dicts) == 0 {
			fmt.Println("No dictionaries.")
			return nil
		}
		for _, d := range dicts {
			matchType := d.MatchType
			if matchType == "" {
				matchType = textrazor.MatchToken
			}
			fmt.Printf("%-30s match=%s case_insensitive=%t language=%s\n",
				d.ID, matchType, d.CaseInsensitive, d.Language)
		}
		return nil
	},
}

var dictionaryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one dictionary's settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		d, err := client.Dictionary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		matchType := d.MatchType
		if matchType == "" {
			matchType = textrazor.MatchToken
		}
		fmt.Printf("ID:               %s\n", d.ID)
		fmt.Printf("Match type:       %s\n", matchType)
		fmt.Printf("Case insensitive: %t\n", d.CaseInsensitive)
		fmt.Printf("Language:         %s\n", d.Language)
		return nil
	},
}

var dictionaryCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Create or replace a dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matchType, _ := cmd.Flags().GetString("match-type")
		caseInsensitive, _ := cmd.Flags().GetBool("case-insensitive")
		language, _ := cmd.Flags().GetString("language")

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		d := textrazor.Dictionary{
			ID:              args[0],
			MatchType:       textrazor.MatchType(matchType),
			CaseInsensitive: caseInsensitive,
			Language:        language,
		}
		if err := client.CreateDictionary(cmd.Context(), d); err != nil {
			return err
		}
		fmt.Printf("Dictionary %s created.\n", d.ID)
		return nil
	},
}

var dictionaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dictionary and all its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.DeleteDictionary(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Dictionary %s deleted.\n", args[0])
		return nil
	},
}

var dictionaryAddCmd = &cobra.Command{
	Use:   "add <id> <entries.yaml>",
	Short: "Add entries to a dictionary from a YAML file",
	Long: `Add reads a YAML list of entries and uploads them to the dictionary.
Each entry has a text field, an optional id, and optional data metadata:

  - text: Apple
    id: apple-inc
    data:
      ticker: [AAPL]`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading entries file: %w", err)
		}
		var entries []textrazor.DictionaryEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parsing entries file: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("entries file %s is empty", args[1])
		}

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.AddDictionaryEntries(cmd.Context(), args[0], entries); err != nil {
			return err
		}
		fmt.Printf("Added %d entries to %s.\n", len(entries), args[0])
		return nil
	},
}

var dictionaryEntriesCmd = &cobra.Command{
	Use:   "entries <id>",
	Short: "List a dictionary's entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		entries, err := client.DictionaryEntries(cmd.Context(), args[0], limit, offset)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-30s %q\n", e.ID, e.Text)
		}
		return nil
	},
}

var dictionaryRemoveEntryCmd = &cobra.Command{
	Use:   "remove-entry <id> <entry-id>",
	Short: "Delete one entry from a dictionary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := client.DeleteDictionaryEntry(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Entry %s removed from %s.\n", args[1], args[0])
		return nil
	},
}

func init() {
	dictionaryCreateCmd.Flags().String("match-type", "", "entry matching: token or stem (default token)")
	dictionaryCreateCmd.Flags().Bool("case-insensitive", false, "match entries regardless of case")
	dictionaryCreateCmd.Flags().String("language", "", "restrict matching to an ISO-639-2 language")

	dictionaryEntriesCmd.Flags().Int("limit", 0, "maximum entries to return (0 = service default)")
	dictionaryEntriesCmd.Flags().Int("offset", 0, "number of entries to skip")

	dictionaryCmd.AddCommand(dictionaryListCmd, dictionaryShowCmd, dictionaryCreateCmd,
		dictionaryDeleteCmd, dictionaryAddCmd, dictionaryEntriesCmd, dictionaryRemoveEntryCmd)
	rootCmd.AddCommand(dictionaryCmd)
}
