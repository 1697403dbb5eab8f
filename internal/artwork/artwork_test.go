package artwork

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardforge/internal/config"
)

func testSettings(url string) config.ArtworkSettings {
	return config.ArtworkSettings{
		APIURL:    url,
		Model:     "flux",
		Width:     512,
		Height:    512,
		Timeout:   5 * time.Second,
		RateLimit: 1000,
		RateBurst: 1000,
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchWritesBodyVerbatim(t *testing.T) {
	body := testPNG(t)
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write(body)
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "nested", "raw_card_0.png")
	c := NewClient(testSettings(ts.URL))
	require.NoError(t, c.Fetch(context.Background(), "a dragon, digital art", dest))

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, written, "body must be written verbatim")

	assert.Contains(t, gotQuery, "width=512")
	assert.Contains(t, gotQuery, "height=512")
	assert.Contains(t, gotQuery, "model=flux")
}

func TestFetchEscapesPrompt(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write(testPNG(t))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "out.png")
	c := NewClient(testSettings(ts.URL))
	require.NoError(t, c.Fetch(context.Background(), "a knight / dragon duel", dest))

	assert.NotContains(t, gotPath[1:], "/", "prompt slashes must be escaped")
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			"body is not an image",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>rate limited</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			dest := filepath.Join(t.TempDir(), "out.png")
			c := NewClient(testSettings(ts.URL))
			assert.Error(t, c.Fetch(context.Background(), "prompt", dest))

			_, err := os.Stat(dest)
			assert.True(t, os.IsNotExist(err), "no file should be written on failure")
		})
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	dest := filepath.Join(t.TempDir(), "out.png")
	c := NewClient(testSettings(ts.URL))
	assert.Error(t, c.Fetch(context.Background(), "prompt", dest))
}
