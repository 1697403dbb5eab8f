// Package pipeline assembles a complete card game: content, artwork,
// rendered cards, docs, and the final archive.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cardforge/internal/artwork"
	"cardforge/internal/card"
	"cardforge/internal/content"
	"cardforge/internal/render"
	"cardforge/internal/templates"
)

// CardOutcome records how one card was produced and which stages degraded.
// Degradations never abort a run; they are visible here and in the logs.
type CardOutcome struct {
	Card            *card.Card `json:"card"`
	DataFallback    bool       `json:"data_fallback"`
	ArtworkFallback bool       `json:"artwork_fallback"`
	RenderFailed    bool       `json:"render_failed"`
}

// Request describes one pipeline invocation.
type Request struct {
	Theme      string `json:"theme"`
	OutputDir  string `json:"output_dir"`
	CardCount  int    `json:"card_count"`
	TemplateID string `json:"template_id"`
}

// Result is what a completed run produced.
type Result struct {
	ArchivePath string        `json:"archive_path"`
	Template    string        `json:"template"`
	Outcomes    []CardOutcome `json:"outcomes"`
}

// Pipeline orchestrates card game generation. One Run owns its project
// directory exclusively; concurrent runs must target different directories.
type Pipeline struct {
	content     content.Source
	artwork     artwork.Source
	renderer    *render.Renderer
	catalog     *templates.Catalog
	placeholder []byte // bundled artwork substitute
}

// New creates a pipeline from its collaborators. placeholder is the raw
// placeholder artwork written when image generation fails.
func New(contentSrc content.Source, artworkSrc artwork.Source, renderer *render.Renderer, catalog *templates.Catalog, placeholder []byte) *Pipeline {
	return &Pipeline{
		content:     contentSrc,
		artwork:     artworkSrc,
		renderer:    renderer,
		catalog:     catalog,
		placeholder: placeholder,
	}
}

// Run generates req.CardCount cards for req.Theme and packages the project
// into a zip archive. Progress events are sent to progress (which may be
// nil) in strict order, 3 per card plus a final (total, total) event; the
// channel is sent to from the calling goroutine only.
//
// Per-card failures degrade: content falls back to a deterministic card,
// artwork to the bundled placeholder, and a failed render is skipped. Only
// filesystem setup problems abort the run.
func (p *Pipeline) Run(ctx context.Context, req Request, progress chan<- Event) (*Result, error) {
	if req.Theme == "" {
		return nil, ErrEmptyTheme
	}
	if req.CardCount < 1 || req.CardCount > 20 {
		return nil, fmt.Errorf("%w: got %d", ErrCardCount, req.CardCount)
	}

	projectDir := filepath.Join(req.OutputDir, card.Slug(req.Theme)+"_card_game")
	cardsDir := filepath.Join(projectDir, "cards")
	gameInfoDir := filepath.Join(projectDir, "game_info")

	for _, dir := range []string{cardsDir, gameInfoDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create project directory: %w", err)
		}
	}

	tpl := p.catalog.Resolve(req.TemplateID)
	archetypes := ArchetypesForTheme(req.Theme)
	total := 3 * req.CardCount

	outcomes := make([]CardOutcome, 0, req.CardCount)
	cards := make([]*card.Card, 0, req.CardCount)

	for i := 0; i < req.CardCount; i++ {
		archetype := archetypes[i%len(archetypes)]
		outcome := CardOutcome{}

		// Stage 1: card data
		emit(progress, fmt.Sprintf("Generating card data %d/%d: %s", i+1, req.CardCount, archetype), 3*i, total)

		c, err := p.content.Generate(ctx, req.Theme, archetype)
		if err != nil {
			log.Printf("card %d (%s): content generation failed, using fallback: %v", i, archetype, err)
			c = FallbackCard(req.Theme, archetype, i)
			outcome.DataFallback = true
		}
		outcome.Card = c

		base := c.FileBase(i)
		if err := c.Save(filepath.Join(cardsDir, base+".json")); err != nil {
			return nil, fmt.Errorf("card %d: save card data: %w", i, err)
		}

		// Stage 2: artwork
		emit(progress, "Generating artwork for "+c.Name, 3*i+1, total)

		rawPath := filepath.Join(cardsDir, "raw_"+base+".png")
		if err := p.artwork.Fetch(ctx, c.ImagePrompt, rawPath); err != nil {
			log.Printf("card %d (%s): artwork generation failed, using placeholder: %v", i, c.Name, err)
			if err := os.WriteFile(rawPath, p.placeholder, 0644); err != nil {
				return nil, fmt.Errorf("card %d: write placeholder artwork: %w", i, err)
			}
			outcome.ArtworkFallback = true
		}

		// Stage 3: playable card
		emit(progress, "Creating playable card for "+c.Name, 3*i+2, total)

		if err := p.renderer.Render(ctx, c, rawPath, tpl, filepath.Join(cardsDir, base+".png"), i+1); err != nil {
			log.Printf("card %d (%s): render failed, card image skipped: %v", i, c.Name, err)
			outcome.RenderFailed = true
		}

		cards = append(cards, c)
		outcomes = append(outcomes, outcome)
	}

	rules := gameRules(req.Theme, tpl.DisplayName, cards)
	if err := os.WriteFile(filepath.Join(gameInfoDir, "game_rules.txt"), []byte(rules), 0644); err != nil {
		return nil, fmt.Errorf("write game rules: %w", err)
	}

	doc := readme(req.Theme, tpl.DisplayName, cards)
	if err := os.WriteFile(filepath.Join(projectDir, "README.md"), []byte(doc), 0644); err != nil {
		return nil, fmt.Errorf("write README: %w", err)
	}

	if err := writeShareQR(filepath.Join(gameInfoDir, "share_qr.png"), req.Theme, cards); err != nil {
		log.Printf("share QR skipped: %v", err)
	}

	zipPath, err := archiveProject(projectDir)
	if err != nil {
		return nil, err
	}

	emit(progress, "Card game generated successfully!", total, total)

	return &Result{
		ArchivePath: zipPath,
		Template:    tpl.ID,
		Outcomes:    outcomes,
	}, nil
}
