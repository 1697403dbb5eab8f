package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardforge/internal/card"
	"cardforge/internal/config"
	"cardforge/internal/templates"
)

const testTemplate = `<html>
<h1>{{CARD_NAME}}</h1>
<p class="type">{{CARD_TYPE}}</p>
<img src="{{CARD_IMAGE_URL}}">
<p>{{CARD_DESCRIPTION}}</p>
<div>{{CARD_STATS}}</div>
<span>{{CARD_RARITY}}</span>
<span>#{{CARD_NUMBER}}</span>
<span>{{UNKNOWN_TOKEN}}</span>
</html>`

// fakeRasterizer copies the substituted HTML into the output file so tests
// can inspect exactly what would have been rasterized.
type fakeRasterizer struct {
	calls int
	fail  bool
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, htmlPath, outputPath string, width, height int) error {
	f.calls++
	if f.fail {
		return fmt.Errorf("rasterizer exploded")
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

func testRenderer(t *testing.T, ras Rasterizer) (*Renderer, templates.Descriptor) {
	t.Helper()
	fsys := fstest.MapFS{
		"bright_swiss_template.html":            {Data: []byte(testTemplate)},
		"detailed_representation_template.html": {Data: []byte(testTemplate)},
	}
	catalog, err := templates.NewCatalog(fsys, templates.DefaultRegistry())
	require.NoError(t, err)

	cfg := config.RenderSettings{CardWidth: 428, CardHeight: 571}
	return New(catalog, ras, cfg), catalog.Resolve("bright_swiss")
}

func sampleCard() *card.Card {
	return &card.Card{
		Name:        "Arcane Sorceress",
		Description: "A master of elemental magic.",
		ImagePrompt: "a sorceress, digital art",
		Stats:       map[string]int{"ATK": 10, "DEF": 4, "SPD": 7, "HP": 6},
		CardType:    "creature",
	}
}

func TestRenderSubstitutesAllTokens(t *testing.T) {
	artDir := t.TempDir()
	artPath := filepath.Join(artDir, "art.png")
	artBytes := []byte("\x89PNG fake image bytes")
	require.NoError(t, os.WriteFile(artPath, artBytes, 0644))

	ras := &fakeRasterizer{}
	r, tpl := testRenderer(t, ras)

	outPath := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, r.Render(context.Background(), sampleCard(), artPath, tpl, outPath, 7))

	rendered, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(rendered)

	assert.Contains(t, html, "<h1>Arcane Sorceress</h1>")
	assert.Contains(t, html, `<p class="type">Creature</p>`) // word-capitalized
	assert.Contains(t, html, "A master of elemental magic.")
	assert.Contains(t, html, "Legendary") // 10+4+7+6 = 27 > 20
	assert.Contains(t, html, "#007") // zero-padded sequence
	assert.Contains(t, html, "data:")
	assert.Contains(t, html, base64.StdEncoding.EncodeToString(artBytes))

	// unmatched tokens stay untouched
	assert.Contains(t, html, "{{UNKNOWN_TOKEN}}")
	assert.NotContains(t, html, "{{CARD_NAME}}")
}

func TestRenderMissingArtworkUsesPlaceholderURL(t *testing.T) {
	ras := &fakeRasterizer{}
	r, tpl := testRenderer(t, ras)

	outPath := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, r.Render(context.Background(), sampleCard(), "/no/such/art.png", tpl, outPath, 1))

	rendered, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), placeholderImageURL)
}

func TestRenderCleansUpIntermediateDocument(t *testing.T) {
	artPath := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(artPath, []byte("img"), 0644))

	for _, fail := range []bool{false, true} {
		outDir := t.TempDir()
		outPath := filepath.Join(outDir, "card.png")
		ras := &fakeRasterizer{fail: fail}
		r, tpl := testRenderer(t, ras)

		err := r.Render(context.Background(), sampleCard(), artPath, tpl, outPath, 1)
		if fail {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}

		// the intermediate document is gone on every exit path
		_, statErr := os.Stat(filepath.Join(outDir, "card_temp.html"))
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	artPath := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(artPath, []byte("img"), 0644))

	ras := &fakeRasterizer{}
	r, tpl := testRenderer(t, ras)

	dir := t.TempDir()
	first := filepath.Join(dir, "a.png")
	second := filepath.Join(dir, "b.png")
	require.NoError(t, r.Render(context.Background(), sampleCard(), artPath, tpl, first, 3))
	require.NoError(t, r.Render(context.Background(), sampleCard(), artPath, tpl, second, 3))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same inputs must produce identical documents")
}

func TestRenderAllAvailableTemplates(t *testing.T) {
	artPath := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(artPath, []byte("img"), 0644))

	fsys := fstest.MapFS{
		"bright_swiss_template.html":            {Data: []byte(testTemplate)},
		"detailed_representation_template.html": {Data: []byte(testTemplate)},
	}
	catalog, err := templates.NewCatalog(fsys, templates.DefaultRegistry())
	require.NoError(t, err)

	r := New(catalog, &fakeRasterizer{}, config.RenderSettings{CardWidth: 428, CardHeight: 571})

	for _, tpl := range catalog.Available() {
		outPath := filepath.Join(t.TempDir(), tpl.ID+".png")
		assert.NoError(t, r.Render(context.Background(), sampleCard(), artPath, tpl, outPath, 1), tpl.ID)
	}
}

func TestStatsMarkup(t *testing.T) {
	c := &card.Card{Stats: map[string]int{"Power": 6, "Cost": 3}}
	markup := StatsMarkup(c)

	// sorted stat order: Cost before Power
	assert.Contains(t, markup, `<div class="stat-label">COST</div><div class="stat-value">3</div>`)
	assert.Contains(t, markup, `<div class="stat-label">POWER</div><div class="stat-value">6</div>`)
	assert.Less(t, strings.Index(markup, "COST"), strings.Index(markup, "POWER"))

	assert.Equal(t, "No Stats Available", StatsMarkup(&card.Card{}))
}

func TestRarity(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, "Common"},
		{5, "Common"},
		{10, "Common"}, // boundary: strict >
		{11, "Rare"},
		{15, "Rare"}, // boundary
		{16, "Epic"},
		{20, "Epic"}, // boundary
		{21, "Legendary"},
		{100, "Legendary"},
	}

	for _, tt := range tests {
		c := &card.Card{Stats: map[string]int{"Power": tt.total}}
		if got := Rarity(c); got != tt.want {
			t.Errorf("Rarity(total=%d) = %q, want %q", tt.total, got, tt.want)
		}
	}

	if got := Rarity(&card.Card{}); got != "Common" {
		t.Errorf("Rarity with no stats = %q, want Common", got)
	}
}
