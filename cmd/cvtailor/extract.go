package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract weighted keywords from a job posting",
	Long:  "Extract a ranked, weighted keyword list from a job posting file or URL. Uses the generative model when an API key is configured, otherwise the deterministic pattern vocabularies.",
	RunE:  runExtract,
}

var (
	extractConfigPath string
	extractJob        string
	extractJobURL     string
	extractUseBrowser bool
	extractOut        string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file")
	extractCmd.Flags().StringVarP(&extractJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	extractCmd.Flags().StringVar(&extractJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted keyword summary")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(extractConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = extractJob
		cfg.JobURL = ""
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = extractJobURL
		cfg.Job = ""
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = extractUseBrowser
	}

	job, err := loadJob(ctx, cfg)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	extractor := extraction.NewExtractor(client)
	extractor.ExtractInto(ctx, job)

	if extractVerbose {
		observability.NewPrinter(os.Stdout).PrintKeywords(job)
	}

	fmt.Printf("Extracted %d keywords\n", len(job.Keywords))
	return writeJSON(extractOut, job)
}
