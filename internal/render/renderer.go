// Package render fills a card template's placeholders and rasterizes the
// result into the final card image.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cardforge/internal/card"
	"cardforge/internal/config"
	"cardforge/internal/templates"
)

// placeholderImageURL is substituted when the artwork file is missing so
// the rendered document still resolves.
const placeholderImageURL = "https://placehold.co/428x350/000/FFF?text=Image+Not+Found"

// Renderer produces final card images from card data and a template.
type Renderer struct {
	catalog *templates.Catalog
	ras     Rasterizer
	cfg     config.RenderSettings
}

// New creates a renderer backed by the given catalog and rasterizer.
func New(catalog *templates.Catalog, ras Rasterizer, cfg config.RenderSettings) *Renderer {
	return &Renderer{catalog: catalog, ras: ras, cfg: cfg}
}

// Render fills tpl's placeholders from c plus derived fields and rasterizes
// the document to outputPath. sequence is the 1-based card number shown on
// the card. The intermediate HTML document is removed on every exit path.
func (r *Renderer) Render(ctx context.Context, c *card.Card, artworkPath string, tpl templates.Descriptor, outputPath string, sequence int) error {
	text, err := r.catalog.Resource(tpl)
	if err != nil {
		return err
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	replacer := strings.NewReplacer(
		"{{CARD_NAME}}", c.Name,
		"{{CARD_TYPE}}", card.TitleWords(c.CardType),
		"{{CARD_IMAGE_URL}}", encodeArtwork(artworkPath),
		"{{CARD_DESCRIPTION}}", c.Description,
		"{{CARD_STATS}}", StatsMarkup(c),
		"{{CARD_RARITY}}", Rarity(c),
		"{{CARD_NUMBER}}", fmt.Sprintf("%03d", sequence),
	)
	html := replacer.Replace(string(text))

	tempPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_temp.html"
	if err := os.WriteFile(tempPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("write intermediate document: %w", err)
	}
	defer os.Remove(tempPath)

	if err := r.ras.Rasterize(ctx, tempPath, outputPath, r.cfg.CardWidth, r.cfg.CardHeight); err != nil {
		return fmt.Errorf("rasterize card: %w", err)
	}
	return nil
}

// encodeArtwork inlines the artwork as a base64 data URI so the rendered
// document has no external file dependency.
func encodeArtwork(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("card artwork not found at %s, using placeholder", path)
		return placeholderImageURL
	}
	mimeType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// StatsMarkup renders a card's stats as template markup, one fragment per
// stat in sorted-name order.
func StatsMarkup(c *card.Card) string {
	if len(c.Stats) == 0 {
		return "No Stats Available"
	}

	var b strings.Builder
	for _, name := range c.StatNames() {
		fmt.Fprintf(&b, `<div class="stat-item"><div class="stat-label">%s</div><div class="stat-value">%d</div></div>`,
			strings.ToUpper(name), c.Stats[name])
	}
	return b.String()
}

// Rarity classifies a card into one of four tiers by its stat total.
// Thresholds are strict, so boundary sums map to the lower tier.
func Rarity(c *card.Card) string {
	switch total := c.StatTotal(); {
	case total > 20:
		return "Legendary"
	case total > 15:
		return "Epic"
	case total > 10:
		return "Rare"
	default:
		return "Common"
	}
}
