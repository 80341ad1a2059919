package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a tailored CV into a PDF",
	Long:  "Populate a document template with a tailored CV and compile it with pdflatex. Unknown template or option values silently fall back to defaults.",
	RunE:  runRender,
}

var (
	renderConfigPath   string
	renderCV           string
	renderTemplate     string
	renderFontSize     string
	renderMargins      string
	renderColorScheme  string
	renderOut          string
	renderAllTemplates bool
)

func init() {
	renderCmd.Flags().StringVar(&renderConfigPath, "config", "", "Path to config.json file")
	renderCmd.Flags().StringVar(&renderCV, "cv", "", "Path to CV JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (modern, classic)")
	renderCmd.Flags().StringVar(&renderFontSize, "font-size", "", "Font size (10pt, 11pt, 12pt)")
	renderCmd.Flags().StringVar(&renderMargins, "margins", "", "Margins (narrow, normal, wide)")
	renderCmd.Flags().StringVar(&renderColorScheme, "color", "", "Color scheme (template dependent)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Artifact output directory")
	renderCmd.Flags().BoolVar(&renderAllTemplates, "all-templates", false, "Render with every catalog template")

	_ = renderCmd.MarkFlagRequired("cv")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(renderConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = renderTemplate
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = renderOut
	}

	data, err := os.ReadFile(renderCV)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}
	var cv types.RenderCV
	if err := json.Unmarshal(data, &cv); err != nil {
		return fmt.Errorf("failed to parse CV JSON: %w", err)
	}

	renderer := rendering.NewRenderer(&rendering.PDFLaTeX{}, rendering.Config{
		ArtifactDir: cfg.Output,
	})

	req := &types.RenderRequest{
		CVData:   cv,
		Template: cfg.Template,
		Options: types.RenderOptions{
			FontSize:    renderFontSize,
			Margins:     renderMargins,
			ColorScheme: renderColorScheme,
		},
	}

	if renderAllTemplates {
		var templates []string
		for _, info := range rendering.Catalog() {
			templates = append(templates, info.Name)
		}

		failures := 0
		for _, unit := range renderer.RenderAll(ctx, req, templates) {
			if unit.Err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "Template %s failed: %v\n", unit.Template, unit.Err)
				continue
			}
			fmt.Printf("Rendered %s: %s (%d bytes)\n",
				unit.Template, unit.Result.ArtifactPath, unit.Result.SizeBytes)
		}
		if failures == len(templates) {
			return fmt.Errorf("all %d templates failed", failures)
		}
		return nil
	}

	result, err := renderer.Render(ctx, req)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	fmt.Printf("Rendered %s: %s (%d bytes)\n",
		result.TemplateUsed, result.ArtifactPath, result.SizeBytes)
	return nil
}
