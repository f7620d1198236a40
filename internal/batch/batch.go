// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs analysis over a YAML-described set of documents and
// writes a YAML summary of the results.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textrazor-go/pkg/textrazor"
)

// Document is one input of a batch job: either inline text or a URL for the
// service to download, never both.
type Document struct {
	// ID names the document in logs and results. Required and unique
	// within a job.
	ID   string `yaml:"id"`
	Text string `yaml:"text,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

// JobOptions mirrors the analysis options applied to every document of a
// job.
type JobOptions struct {
	Extractors       []string `yaml:"extractors,omitempty"`
	Classifiers      []string `yaml:"classifiers,omitempty"`
	LanguageOverride string   `yaml:"language_override,omitempty"`
	CleanupMode      string   `yaml:"cleanup_mode,omitempty"`
	AllowOverlap     *bool    `yaml:"allow_overlap,omitempty"`
}

// Job is a batch analysis job as described by its YAML file.
type Job struct {
	Name      string     `yaml:"name,omitempty"`
	Options   JobOptions `yaml:"options,omitempty"`
	Documents []Document `yaml:"documents"`
	// Delay is the pause between consecutive requests, honoring account
	// concurrency limits. Zero means no pause.
	Delay time.Duration `yaml:"delay,omitempty"`
}

// analysisOptions converts the job's YAML options to request options.
func (j *Job) analysisOptions() textrazor.Options {
	return textrazor.Options{
		Extractors:       j.Options.Extractors,
		Classifiers:      j.Options.Classifiers,
		LanguageOverride: j.Options.LanguageOverride,
		CleanupMode:      j.Options.CleanupMode,
		AllowOverlap:     j.Options.AllowOverlap,
	}
}

// ReadJob parses and validates a job file.
func ReadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}

	if len(job.Documents) == 0 {
		return nil, fmt.Errorf("job file %s has no documents", path)
	}
	seen := make(map[string]bool, len(job.Documents))
	for i, doc := range job.Documents {
		if doc.ID == "" {
			return nil, fmt.Errorf("document %d has no id", i)
		}
		if seen[doc.ID] {
			return nil, fmt.Errorf("duplicate document id %q", doc.ID)
		}
		seen[doc.ID] = true
		if doc.Text == "" && doc.URL == "" {
			return nil, fmt.Errorf("document %q has neither text nor url", doc.ID)
		}
		if doc.Text != "" && doc.URL != "" {
			return nil, fmt.Errorf("document %q has both text and url", doc.ID)
		}
	}
	return &job, nil
}

// Analyzer is the analysis surface Run needs. *textrazor.Client satisfies
// it; tests substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts textrazor.Options) (*textrazor.Response, error)
	AnalyzeURL(ctx context.Context, target string, opts textrazor.Options) (*textrazor.Response, error)
}

// Result summarizes the analysis of one document.
type Result struct {
	ID    string  `yaml:"id"`
	OK    bool    `yaml:"ok"`
	Error string  `yaml:"error,omitempty"`
	Time  float64 `yaml:"time,omitempty"`

	Language    string   `yaml:"language,omitempty"`
	Entities    []string `yaml:"entities,omitempty"`
	Topics      []string `yaml:"topics,omitempty"`
	Categories  []string `yaml:"categories,omitempty"`
	Sentences   int      `yaml:"sentences,omitempty"`
	NounPhrases int      `yaml:"noun_phrases,omitempty"`
}

// Output is the YAML document WriteResults produces.
type Output struct {
	Name      string    `yaml:"name,omitempty"`
	Completed time.Time `yaml:"completed"`
	Succeeded int       `yaml:"succeeded"`
	Failed    int       `yaml:"failed"`
	Results   []Result  `yaml:"results"`
}

// Run analyzes every document of the job in order, pausing Delay between
// requests. Transport failures and service rejections are recorded per
// document; a failing document does not abort the run. Cancelling ctx does.
func Run(ctx context.Context, analyzer Analyzer, job *Job, logger *log.Logger) (*Output, error) {
	if logger == nil {
		logger = log.Default()
	}

	opts := job.analysisOptions()
	out := &Output{Name: job.Name}

	for i, doc := range job.Documents {
		if i > 0 && job.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(job.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("analyzing document", "id", doc.ID)

		var (
			resp *textrazor.Response
			err  error
		)
		if doc.Text != "" {
			resp, err = analyzer.Analyze(ctx, doc.Text, opts)
		} else {
			resp, err = analyzer.AnalyzeURL(ctx, doc.URL, opts)
		}

		res := summarize(doc.ID, resp, err)
		if res.OK {
			out.Succeeded++
		} else {
			out.Failed++
			logger.Warn("document failed", "id", doc.ID, "error", res.Error)
		}
		out.Results = append(out.Results, res)
	}

	out.Completed = time.Now().UTC()
	logger.Info("batch complete", "succeeded", out.Succeeded, "failed", out.Failed)
	return out, nil
}

func summarize(id string, resp *textrazor.Response, err error) Result {
	if err != nil {
		return Result{ID: id, Error: err.Error()}
	}
	if !resp.OK() {
		return Result{ID: id, Error: resp.ErrorMessage(), Time: resp.Time()}
	}

	res := Result{
		ID:          id,
		OK:          true,
		Time:        resp.Time(),
		Language:    resp.Language(),
		Sentences:   len(resp.Sentences()),
		NounPhrases: len(resp.NounPhrases()),
	}
	for _, e := range resp.Entities() {
		res.Entities = append(res.Entities, e.EntityID)
	}
	for _, t := range resp.Topics() {
		res.Topics = append(res.Topics, t.Label)
	}
	for _, c := range resp.Categories() {
		res.Categories = append(res.Categories, c.Label)
	}
	return res
}

// WriteResults writes the output document as YAML to path, creating parent
// directories as needed.
func WriteResults(out *Output, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
