// Package artwork fetches card artwork from an image-generation API.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/time/rate"

	"cardforge/internal/config"
)

// Source fetches raster artwork for a prompt into a destination file. A
// non-nil error means no artwork was written; the caller substitutes the
// bundled placeholder.
type Source interface {
	Fetch(ctx context.Context, prompt, destPath string) error
}

// Client fetches artwork from a prompt-in-URL image generation endpoint.
type Client struct {
	apiURL  string
	model   string
	width   int
	height  int
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an artwork client from configuration.
func NewClient(cfg config.ArtworkSettings) *Client {
	return &Client{
		apiURL: cfg.APIURL,
		model:  cfg.Model,
		width:  cfg.Width,
		height: cfg.Height,
		// generous timeout, image generation is slow
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// Fetch requests one image and writes the response body verbatim to
// destPath, creating parent directories as needed. The body is decoded
// first as a sanity check so a malformed body counts as a remote failure.
func (c *Client) Fetch(ctx context.Context, prompt, destPath string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	imageURL := fmt.Sprintf("%s/%s?width=%d&height=%d&model=%s",
		c.apiURL, url.PathEscape(prompt), c.width, c.height, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("image generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image generation request: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read image body: %w", err)
	}

	if _, err := imaging.Decode(bytes.NewReader(body)); err != nil {
		return fmt.Errorf("response body is not a valid image: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create artwork directory: %w", err)
	}
	if err := os.WriteFile(destPath, body, 0644); err != nil {
		return fmt.Errorf("save artwork: %w", err)
	}

	return nil
}

var _ Source = (*Client)(nil)
