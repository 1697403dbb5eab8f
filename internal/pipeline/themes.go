package pipeline

import "strings"

// themeArchetypes maps a lowercased theme to the card archetypes generated
// for it. Themes not listed here use defaultArchetypes.
var themeArchetypes = map[string][]string{
	"fantasy":         {"creature", "spell", "artifact", "enchantment", "hero"},
	"medieval":        {"creature", "spell", "artifact", "enchantment", "hero"},
	"magic":           {"creature", "spell", "artifact", "enchantment", "hero"},
	"sci-fi":          {"robot", "tech", "weapon", "vehicle", "alien"},
	"science fiction": {"robot", "tech", "weapon", "vehicle", "alien"},
	"futuristic":      {"robot", "tech", "weapon", "vehicle", "alien"},
	"space":           {"robot", "tech", "weapon", "vehicle", "alien"},
}

var defaultArchetypes = []string{"character", "action", "item", "location", "event"}

// ArchetypesForTheme returns the archetype list for a theme. The lookup is
// case-insensitive.
func ArchetypesForTheme(theme string) []string {
	if archetypes, ok := themeArchetypes[strings.ToLower(theme)]; ok {
		return archetypes
	}
	return defaultArchetypes
}
