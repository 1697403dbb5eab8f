package pipeline

import (
	"fmt"
	"strings"

	"cardforge/internal/card"
)

// gameRules renders the game_rules.txt content: fixed rule text plus the
// distinct card types encountered (first-seen order) and the total count.
func gameRules(theme, templateName string, cards []*card.Card) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Card Game: %s\n", card.TitleWords(theme))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Template Style: %s\n\n", templateName)
	b.WriteString(`BASIC RULES:
- Each player starts with a deck of cards
- Draw cards from your deck each turn
- Play cards to attack opponents or defend yourself
- Use card stats (power, cost, etc.) to determine outcomes
- First player to reduce opponent's health to 0 wins!

CARD TYPES:
`)

	seen := make(map[string]bool)
	for _, c := range cards {
		if seen[c.CardType] {
			continue
		}
		seen[c.CardType] = true
		fmt.Fprintf(&b, "- %s: Special abilities and effects\n", card.TitleWords(c.CardType))
	}

	fmt.Fprintf(&b, "\nGenerated %d unique cards for your %s themed game!\n", len(cards), theme)
	return b.String()
}

// readme renders the project README.md: a numbered listing of every card
// in generation order.
func readme(theme, templateName string, cards []*card.Card) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Card Game\n\n", card.TitleWords(theme))
	b.WriteString("This card game was generated using Cardforge.\n\n")
	fmt.Fprintf(&b, "**Template Style:** %s\n\n", templateName)
	b.WriteString(`## Contents
- ` + "`cards/`" + `: Contains all card data (JSON) and images (PNG)
- ` + "`game_info/`" + `: Contains game rules and documentation

## Cards Generated
`)

	for i, c := range cards {
		fmt.Fprintf(&b, "%d. **%s** (%s): %s\n", i+1, c.Name, c.CardType, c.Description)
	}

	return b.String()
}
