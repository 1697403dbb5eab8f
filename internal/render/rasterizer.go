package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Rasterizer turns a local HTML document into a PNG of the given size.
type Rasterizer interface {
	Rasterize(ctx context.Context, htmlPath, outputPath string, width, height int) error
}

// ChromeRasterizer rasterizes HTML through a headless Chromium controlled
// with rod. The browser is launched lazily on first use and shared across
// calls; Close releases it.
type ChromeRasterizer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewChromeRasterizer creates an unstarted rasterizer.
func NewChromeRasterizer() *ChromeRasterizer {
	return &ChromeRasterizer{}
}

func (r *ChromeRasterizer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Rasterize loads htmlPath in a fresh page and screenshots a width x height
// clip at (0,0) as PNG.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, htmlPath, outputPath string, width, height int) error {
	browser, err := r.ensureBrowser()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + abs})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for page load: %w", err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(width),
			Height: float64(height),
			Scale:  1,
		},
	})
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("save card image: %w", err)
	}
	return nil
}

// Close shuts down the shared browser.
func (r *ChromeRasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
}

var _ Rasterizer = (*ChromeRasterizer)(nil)
