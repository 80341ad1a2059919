package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/fetch"
	"github.com/jonathan/cv-tailor/internal/ratelimit"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/server"
	"github.com/jonathan/cv-tailor/internal/tailoring"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Serve the tailoring pipeline over REST: keyword extraction, batch extraction, URL ingestion, tailoring, rendering, template catalog, and artifact retrieval.",
	RunE:  runServe,
}

var (
	serveConfigPath string
	serveAddr       string
	serveUseBrowser bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = serveAddr
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	// A configured database shares the rate-limit window across instances;
	// otherwise each instance counts in memory.
	var store ratelimit.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := ratelimit.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pgStore.Close()
		store = pgStore
		log.Println("Rate limiting backed by Postgres")
	} else {
		store = ratelimit.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(store, ratelimit.Config{
		Enabled: cfg.RateLimit > 0,
		Limit:   cfg.RateLimit,
		Window:  cfg.RateLimitWindow,
	})

	pruneCtx, cancelPrune := context.WithCancel(ctx)
	defer cancelPrune()
	limiter.StartPruning(pruneCtx, cfg.RateLimitWindow)

	renderer := rendering.NewRenderer(&rendering.PDFLaTeX{}, rendering.Config{
		ArtifactDir: cfg.Output,
	})

	fetcher := fetch.NewClient(fetch.Options{UseBrowser: cfg.UseBrowser})

	s := server.New(server.Config{
		Addr:        cfg.ListenAddr,
		ArtifactDir: cfg.Output,
		TargetScore: cfg.TargetScore,
	}, extraction.NewExtractor(client), tailoring.New(client), renderer, fetcher, limiter)

	return s.Start()
}
