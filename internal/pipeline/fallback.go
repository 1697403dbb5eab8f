package pipeline

import (
	"fmt"

	"cardforge/internal/card"
)

// FallbackCard builds the deterministic substitute used when content
// generation fails. The same (theme, archetype, index) always yields the
// same card.
func FallbackCard(theme, archetype string, index int) *card.Card {
	return &card.Card{
		Name:        fmt.Sprintf("Generic %s %d", card.TitleWords(archetype), index+1),
		Description: fmt.Sprintf("A %s card for the %s theme. (API Error Fallback)", archetype, theme),
		ImagePrompt: fmt.Sprintf("A %s %s card artwork, digital art, detailed", theme, archetype),
		Stats: map[string]int{
			"Power":  index + 1,
			"Cost":   (index+1)/2 + 1,
			"Health": index + 2,
		},
		CardType: archetype,
	}
}
