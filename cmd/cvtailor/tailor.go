package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a candidate profile to a job posting",
	Long:  "Select and rewrite the most relevant parts of a candidate profile for one job posting, producing a tailored CV with its relevance score.",
	RunE:  runTailor,
}

var (
	tailorConfigPath string
	tailorProfile    string
	tailorJob        string
	tailorJobURL     string
	tailorOptimize   bool
	tailorTarget     int
	tailorOut        string
	tailorVerbose    bool
)

func init() {
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file")
	tailorCmd.Flags().StringVarP(&tailorProfile, "profile", "p", "", "Path to candidate profile JSON file")
	tailorCmd.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	tailorCmd.Flags().BoolVar(&tailorOptimize, "optimize", false, "Run one improvement pass if the score lands below the target")
	tailorCmd.Flags().IntVar(&tailorTarget, "target-score", 0, "Relevance score the optimize pass aims for (default from config)")
	tailorCmd.Flags().StringVarP(&tailorOut, "out", "o", "", "Output file (default: stdout)")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print formatted keyword and CV summaries")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(tailorConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = tailorProfile
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = tailorJob
		cfg.JobURL = ""
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = tailorJobURL
		cfg.Job = ""
	}
	if cmd.Flags().Changed("target-score") {
		cfg.TargetScore = tailorTarget
	}

	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
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

	extraction.NewExtractor(client).ExtractInto(ctx, job)

	printer := observability.NewPrinter(os.Stdout)
	if tailorVerbose {
		printer.PrintKeywords(job)
	}

	tailor := tailoring.New(client)
	cv, err := tailor.TailorCV(ctx, profile, job)
	if err != nil {
		return fmt.Errorf("tailoring failed: %w", err)
	}

	if tailorOptimize {
		result := tailor.Optimize(ctx, cv, job, cfg.TargetScore)
		if result.Optimized {
			fmt.Printf("Optimized: score %d -> %d\n", result.PreviousScore, result.NewScore)
		}
		cv = result.CV
	}

	if tailorVerbose {
		printer.PrintTailored(cv)
	}

	fmt.Printf("Relevance score: %d\n", cv.RelevanceScore)
	return writeJSON(tailorOut, cv)
}
