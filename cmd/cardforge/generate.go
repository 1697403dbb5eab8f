package main

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardforge"
	"cardforge/internal/artwork"
	"cardforge/internal/config"
	"cardforge/internal/content"
	"cardforge/internal/pipeline"
	"cardforge/internal/render"
	"cardforge/internal/templates"
)

var (
	flagTheme    string
	flagCards    int
	flagTemplate string
	flagOut      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete card game for a theme",
	Example: `  cardforge generate --theme Fantasy
  cardforge generate --theme "Deep Space" --cards 10 --template detailed --out ./games`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if flagCards == 0 {
			flagCards = cfg.Generator.DefaultCards
		}
		if flagTemplate == "" {
			flagTemplate = cfg.Generator.DefaultTemplate
		}
		if flagOut == "" {
			flagOut = cfg.Generator.OutputDir
		}

		catalog, err := newCatalog()
		if err != nil {
			return err
		}

		rasterizer := render.NewChromeRasterizer()
		defer rasterizer.Close()

		pipe := pipeline.New(
			content.NewClient(cfg.Content),
			artwork.NewClient(cfg.Artwork),
			render.New(catalog, rasterizer, cfg.Render),
			catalog,
			cardforge.PlaceholderArtwork,
		)

		req := pipeline.Request{
			Theme:      flagTheme,
			OutputDir:  flagOut,
			CardCount:  flagCards,
			TemplateID: flagTemplate,
		}

		progress := make(chan pipeline.Event, 16)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range progress {
				color.Cyan("[%d/%d] %s", ev.Step, ev.Total, ev.Message)
			}
		}()

		result, err := pipe.Run(context.Background(), req, progress)
		close(progress)
		<-done
		if err != nil {
			return err
		}

		reportOutcomes(result.Outcomes)

		color.Green("Created %s", result.ArchivePath)
		return nil
	},
}

// reportOutcomes prints one line per degraded stage. A card can degrade at
// more than one stage; every degradation is reported.
func reportOutcomes(outcomes []pipeline.CardOutcome) {
	for i, o := range outcomes {
		if o.DataFallback {
			color.Yellow("card %d (%s): generated with fallback data", i+1, o.Card.Name)
		}
		if o.ArtworkFallback {
			color.Yellow("card %d (%s): using placeholder artwork", i+1, o.Card.Name)
		}
		if o.RenderFailed {
			color.Red("card %d (%s): card image could not be rendered", i+1, o.Card.Name)
		}
	}
}

func newCatalog() (*templates.Catalog, error) {
	templateFS, err := fs.Sub(cardforge.TemplatesFS, "assets/templates")
	if err != nil {
		return nil, fmt.Errorf("open template assets: %w", err)
	}
	return templates.NewCatalog(templateFS, templates.DefaultRegistry())
}

func init() {
	generateCmd.Flags().StringVar(&flagTheme, "theme", "", "theme for the card game (required)")
	generateCmd.Flags().IntVar(&flagCards, "cards", 0, "number of cards to generate (1-20)")
	generateCmd.Flags().StringVar(&flagTemplate, "template", "", "card template id")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "output directory")
	generateCmd.MarkFlagRequired("theme")
}
