package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"cardforge/internal/card"
	"cardforge/internal/pipeline"
)

func TestReportOutcomesReportsEveryDegradation(t *testing.T) {
	var buf bytes.Buffer
	color.Output = &buf
	restore := color.NoColor
	color.NoColor = true
	defer func() {
		color.Output = os.Stdout
		color.NoColor = restore
	}()

	reportOutcomes([]pipeline.CardOutcome{
		{
			Card:            &card.Card{Name: "Generic Creature 1"},
			DataFallback:    true,
			ArtworkFallback: true,
			RenderFailed:    true,
		},
		{
			Card: &card.Card{Name: "Fire Spell"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "card 1 (Generic Creature 1): generated with fallback data")
	assert.Contains(t, out, "card 1 (Generic Creature 1): using placeholder artwork")
	assert.Contains(t, out, "card 1 (Generic Creature 1): card image could not be rendered")
	assert.NotContains(t, out, "Fire Spell")
}
