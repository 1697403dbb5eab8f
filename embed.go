package cardforge

import "embed"

// Embed the HTML card templates
//
//go:embed assets/templates/*.html
var TemplatesFS embed.FS

// Embed the placeholder artwork used when image generation fails
//
//go:embed assets/placeholder_artwork.png
var PlaceholderArtwork []byte
