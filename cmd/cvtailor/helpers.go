package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/fetch"
	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/types"
)

// newLLMClient builds the generative client, or returns nil when no API key
// is configured. A nil client keeps the pipeline on its deterministic
// fallbacks.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		log.Println("No API key configured; using deterministic fallbacks only")
		return nil, nil
	}
	client, err := llm.NewClient(ctx, nil, nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}
	return client, nil
}

// loadProfile reads a candidate profile from a JSON file.
func loadProfile(path string) (*types.UserProfile, error) {
	if path == "" {
		return nil, fmt.Errorf("profile path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// loadJob resolves the posting from either a local file or a URL, per config.
func loadJob(ctx context.Context, cfg *config.Config) (*types.JobDescription, error) {
	switch {
	case cfg.Job != "":
		return ingestion.FromFile(cfg.Job, "", "")
	case cfg.JobURL != "":
		fetcher := fetch.NewClient(fetch.Options{UseBrowser: cfg.UseBrowser})
		return ingestion.FromURL(ctx, fetcher, cfg.JobURL, "", "")
	default:
		return nil, fmt.Errorf("either --job or --job-url is required")
	}
}

// writeJSON writes v as indented JSON to path, or stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
