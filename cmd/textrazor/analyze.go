package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textrazor-go/internal/cache"
	"github.com/pdiddy/textrazor-go/pkg/textrazor"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze text, a file, or a URL",
	Long: `Analyze submits a document to TextRazor and prints the extracted
annotations. The document is inline text, a file (--file), or a URL the
service downloads (--url). Responses are cached locally so repeated runs of
the same request do not count against the account quota.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("url", "", "analyze the document at this URL")
	analyzeCmd.Flags().String("file", "", "analyze the contents of this file")
	analyzeCmd.Flags().StringSlice("extractors", nil, "extractors to run (default from config, else entities,topics,words)")
	analyzeCmd.Flags().StringSlice("classifiers", nil, "classifiers to match")
	analyzeCmd.Flags().String("language", "", "force analysis in an ISO-639-2 language")
	analyzeCmd.Flags().String("cleanup-mode", "", "document cleanup mode: raw, stripTags, or cleanHTML")
	analyzeCmd.Flags().String("rules", "", "file with custom annotation rules")
	analyzeCmd.Flags().Bool("json", false, "print the raw JSON response")
	analyzeCmd.Flags().Bool("no-cache", false, "bypass the local response cache")

	rootCmd.AddCommand(analyzeCmd)
}

// analysisOptions merges flags over the config file's analysis defaults.
func analysisOptions(cmd *cobra.Command) (textrazor.Options, error) {
	opts := textrazor.Options{
		Extractors:       cliCfg.Analysis.Extractors,
		Classifiers:      cliCfg.Analysis.Classifiers,
		LanguageOverride: cliCfg.Analysis.LanguageOverride,
		CleanupMode:      cliCfg.Analysis.CleanupMode,
	}

	if ex, _ := cmd.Flags().GetStringSlice("extractors"); len(ex) > 0 {
		opts.Extractors = ex
	}
	if len(opts.Extractors) == 0 {
		opts.Extractors = []string{"entities", "topics", "words"}
	}
	if cl, _ := cmd.Flags().GetStringSlice("classifiers"); len(cl) > 0 {
		opts.Classifiers = cl
	}
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		opts.LanguageOverride = lang
	}
	if mode, _ := cmd.Flags().GetString("cleanup-mode"); mode != "" {
		opts.CleanupMode = mode
	}
	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		rules, err := os.ReadFile(rulesFile)
		if err != nil {
			return opts, fmt.Errorf("reading rules file: %w", err)
		}
		opts.Rules = string(rules)
	}
	return opts, nil
}

// openCache opens the response cache unless disabled by flag or config.
func openCache(cmd *cobra.Command) (*cache.Store, error) {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return nil, nil
	}
	// A plain bool cannot tell "absent" from "false", so the explicit
	// opt-out still goes through viper.
	if viper.IsSet("cache.enabled") && !cliCfg.Cache.Enabled {
		return nil, nil
	}
	dir := cliCfg.Cache.Dir
	if dir == "" {
		dir = ".cache"
	}
	return cache.Open(dir)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	targetURL, _ := cmd.Flags().GetString("url")
	file, _ := cmd.Flags().GetString("file")

	var text string
	switch {
	case targetURL != "" && (file != "" || len(args) > 0):
		return fmt.Errorf("--url cannot be combined with text or --file")
	case file != "" && len(args) > 0:
		return fmt.Errorf("--file cannot be combined with inline text")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
		text = string(data)
	case len(args) > 0:
		text = strings.Join(args, " ")
	case targetURL == "":
		return fmt.Errorf("provide text, --file, or --url")
	}

	opts, err := analysisOptions(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	// The cache key is the full request the client would send.
	params := opts.Params()
	if targetURL != "" {
		params.Set("url", targetURL)
	} else {
		params.Set("text", text)
	}
	key := cache.Key(client.BaseURL(), params)

	resp, cached, err := analyzeWithCache(cmd, client, store, key, text, targetURL, opts)
	if err != nil {
		return err
	}
	if cached {
		fmt.Fprintln(os.Stderr, "(cached response)")
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printRawJSON(resp)
	}
	printResponse(resp)
	if !resp.OK() {
		return fmt.Errorf("analysis failed: %s", resp.ErrorMessage())
	}
	return nil
}

func analyzeWithCache(cmd *cobra.Command, client *textrazor.Client, store *cache.Store, key, text, targetURL string, opts textrazor.Options) (*textrazor.Response, bool, error) {
	if store != nil {
		if body, ok, err := store.Get(key); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache read failed: %v\n", err)
		} else if ok {
			resp, err := textrazor.ParseResponse(body)
			if err == nil {
				return resp, true, nil
			}
			fmt.Fprintf(os.Stderr, "warning: discarding bad cache entry: %v\n", err)
		}
	}

	var (
		resp *textrazor.Response
		err  error
	)
	if targetURL != "" {
		resp, err = client.AnalyzeURL(cmd.Context(), targetURL, opts)
	} else {
		resp, err = client.Analyze(cmd.Context(), text, opts)
	}
	if err != nil {
		return nil, false, err
	}

	// Only successful analyses are worth caching.
	if store != nil && resp.OK() {
		if err := store.Put(key, resp.Raw()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
		}
	}
	return resp, false, nil
}

func printRawJSON(resp *textrazor.Response) error {
	var buf map[string]any
	if err := json.Unmarshal(resp.Raw(), &buf); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(buf)
}

func printResponse(resp *textrazor.Response) {
	fmt.Println(resp.Summary())
	if lang := resp.Language(); lang != "" {
		fmt.Printf("Language: %s\n", lang)
	}

	if entities := resp.Entities(); len(entities) > 0 {
		fmt.Println("\nEntities:")
		for _, e := range entities {
			fmt.Printf("  %-30s relevance=%.2f confidence=%.2f %q\n",
				e.EntityID, e.RelevanceScore, e.ConfidenceScore, e.MatchedText)
		}
	}
	if topics := resp.Topics(); len(topics) > 0 {
		fmt.Println("\nTopics:")
		for _, t := range topics {
			fmt.Printf("  %-30s score=%.2f\n", t.Label, t.Score)
		}
	}
	if categories := resp.Categories(); len(categories) > 0 {
		fmt.Println("\nCategories:")
		for _, c := range categories {
			fmt.Printf("  %s/%-20s score=%.2f %s\n", c.ClassifierID, c.CategoryID, c.Score, c.Label)
		}
	}
	if relations := resp.Relations(); len(relations) > 0 {
		fmt.Println("\nRelations:")
		for _, rel := range relations {
			var parts []string
			for _, w := range rel.PredicateWords() {
				parts = append(parts, w.Token)
			}
			fmt.Printf("  predicate=%q params=%d\n", strings.Join(parts, " "), len(rel.Params))
		}
	}
	if rules := resp.MatchingRules(); len(rules) > 0 {
		fmt.Printf("\nMatched rules: %s\n", strings.Join(rules, ", "))
	}
}
