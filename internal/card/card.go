package card

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Card represents a single trading card. A Card is a plain value: once
// built it is never mutated, only persisted.
type Card struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImagePrompt string         `json:"image_prompt"`
	Stats       map[string]int `json:"stats"`
	CardType    string         `json:"card_type"`
}

// Marshal serializes the card with 4-space indentation so the data files
// stay diffable.
func (c *Card) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "    ")
}

// Parse decodes a serialized card document.
func Parse(data []byte) (*Card, error) {
	var c Card
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse card data: %w", err)
	}
	return &c, nil
}

// Load reads and parses a card data file.
func Load(path string) (*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card data: %w", err)
	}
	return Parse(data)
}

// Save writes the serialized card to path.
func (c *Card) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FileBase returns the base filename for this card's artifacts. The index
// keeps names unique even when two cards share a name.
func (c *Card) FileBase(index int) string {
	return fmt.Sprintf("%s_%d", Slug(c.Name), index)
}

// StatNames returns the card's stat names in sorted order. Go maps are
// unordered, so everything that renders stats goes through this to stay
// deterministic.
func (c *Card) StatNames() []string {
	names := make([]string, 0, len(c.Stats))
	for name := range c.Stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatTotal returns the sum of all stat values.
func (c *Card) StatTotal() int {
	total := 0
	for _, v := range c.Stats {
		total += v
	}
	return total
}

// Slug lowercases s and replaces spaces with underscores.
func Slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// TitleWords capitalizes each word of s ("fire spell" -> "Fire Spell").
// A fresh Caser per call: Casers are stateful and not goroutine-safe.
func TitleWords(s string) string {
	return cases.Title(language.Und).String(s)
}
