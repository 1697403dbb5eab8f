// Package handlers exposes the generation pipeline over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"cardforge/internal/config"
	"cardforge/internal/pipeline"
	"cardforge/internal/store"
	"cardforge/internal/templates"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store   *store.MemoryStore
	pipe    *pipeline.Pipeline
	catalog *templates.Catalog
	cfg     *config.Config
}

// New creates a new handler
func New(s *store.MemoryStore, pipe *pipeline.Pipeline, catalog *templates.Catalog, cfg *config.Config) *Handler {
	return &Handler{store: s, pipe: pipe, catalog: catalog, cfg: cfg}
}

// Store returns the handler's store (for testing)
func (h *Handler) Store() *store.MemoryStore {
	return h.store
}

type createGameRequest struct {
	Theme      string `json:"theme"`
	CardCount  int    `json:"card_count"`
	TemplateID string `json:"template_id"`
}

// CreateGame starts a generation run on a worker goroutine and returns its
// id. The run's progress is observable via GET /games/{id}/events.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Theme == "" {
		http.Error(w, "theme is required", http.StatusBadRequest)
		return
	}
	if req.CardCount == 0 {
		req.CardCount = h.cfg.Generator.DefaultCards
	}
	if req.CardCount < 1 || req.CardCount > h.cfg.Generator.MaxCards {
		http.Error(w, "card_count out of range", http.StatusBadRequest)
		return
	}
	if req.TemplateID == "" {
		req.TemplateID = h.cfg.Generator.DefaultTemplate
	}

	run := h.store.CreateRun(req.Theme, req.CardCount, req.TemplateID)
	log.Printf("run %s: generating %d cards for theme %q", run.ID, req.CardCount, req.Theme)

	go h.executeRun(run.ID, pipeline.Request{
		Theme:      req.Theme,
		OutputDir:  h.cfg.Generator.OutputDir,
		CardCount:  req.CardCount,
		TemplateID: req.TemplateID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"id": run.ID})
}

// executeRun drives one pipeline invocation on its own goroutine, bridging
// the progress channel into the store for SSE fan-out.
func (h *Handler) executeRun(id string, req pipeline.Request) {
	h.store.SetRunning(id)

	progress := make(chan pipeline.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			h.store.AppendEvent(id, ev)
		}
	}()

	result, err := h.pipe.Run(context.Background(), req, progress)
	close(progress)
	<-done

	if err != nil {
		log.Printf("run %s failed: %v", id, err)
		h.store.Fail(id, err)
		return
	}

	log.Printf("run %s complete: %s", id, result.ArchivePath)
	h.store.Complete(id, result.ArchivePath, result.Outcomes)
}

// GetGame returns the current state of a run.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	run, err := h.store.GetRun(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetArchive serves a completed run's zip for download.
func (h *Handler) GetArchive(w http.ResponseWriter, r *http.Request) {
	run, err := h.store.GetRun(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if run.State != store.RunComplete {
		http.Error(w, "Run not complete", http.StatusConflict)
		return
	}

	if _, err := os.Stat(run.ArchivePath); err != nil {
		http.Error(w, "Archive missing", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(run.ArchivePath))
	http.ServeFile(w, r, run.ArchivePath)
}

// ListTemplates returns the available card templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.catalog.Available())
}
