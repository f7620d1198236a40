package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/textrazor-go/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <job.yaml>",
	Short: "Analyze a YAML-described set of documents",
	Long: `Batch reads a YAML job file listing documents (inline text or URLs) and
analysis options, analyzes each document in order, and writes a YAML summary
of the results. Failing documents are recorded but do not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("results", "", "results file (default output/results/<job>.yaml)")
	batchCmd.Flags().Duration("delay", 0, "pause between consecutive requests (default from job file)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	job, err := batch.ReadJob(args[0])
	if err != nil {
		return err
	}

	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		job.Delay = delay
	}
	if job.Delay == 0 {
		job.Delay = cliCfg.Batch.Delay
	}
	if job.Delay == 0 {
		job.Delay = 1 * time.Second
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	out, err := batch.Run(cmd.Context(), client, job, logger)
	if err != nil {
		return err
	}

	resultsPath, _ := cmd.Flags().GetString("results")
	if resultsPath == "" {
		dir := cliCfg.Batch.ResultsDir
		if dir == "" {
			dir = filepath.Join("output", "results")
		}
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		resultsPath = filepath.Join(dir, base+".yaml")
	}
	if err := batch.WriteResults(out, resultsPath); err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", resultsPath)

	if out.Failed > 0 {
		return fmt.Errorf("%d document(s) failed analysis", out.Failed)
	}
	return nil
}
