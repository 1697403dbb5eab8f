package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"

	"cardforge/internal/pipeline"
	"cardforge/internal/store"
)

// StreamEvents streams a run's progress over SSE. Recorded events are
// replayed first so late subscribers see the full sequence, then live
// events are forwarded until the run reaches a terminal state.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Subscribe before snapshotting so no event can fall in the gap.
	// Replayed duplicates are harmless: signals are idempotent per step.
	events := h.store.Subscribe(id)
	defer h.store.Unsubscribe(id, events)

	run, err := h.store.GetRun(id)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	log.Printf("SSE connection established for run %s", id)
	sse := datastar.NewSSE(w, r)

	for _, ev := range run.Events {
		if err := h.patchProgress(sse, id, ev); err != nil {
			return
		}
	}

	if terminal(run.State) {
		h.patchState(sse, run)
		return
	}

	// The final progress event lands before the run's terminal state
	// transition, and the fan-out may drop events under backpressure, so
	// completion is detected from the run state rather than from the
	// event stream alone.
	check := time.NewTicker(500 * time.Millisecond)
	defer check.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("SSE connection closed for run %s", id)
			return
		case <-check.C:
			run, err := h.store.GetRun(id)
			if err != nil {
				return
			}
			if terminal(run.State) {
				h.patchState(sse, run)
				return
			}
		case ev := <-events:
			if err := h.patchProgress(sse, id, ev); err != nil {
				return
			}
		}
	}
}

func (h *Handler) patchProgress(sse *datastar.ServerSentEventGenerator, id string, ev pipeline.Event) error {
	return sse.MarshalAndPatchSignals(map[string]interface{}{
		"runId":   id,
		"message": ev.Message,
		"step":    ev.Step,
		"total":   ev.Total,
	})
}

func (h *Handler) patchState(sse *datastar.ServerSentEventGenerator, run store.Run) {
	if err := sse.MarshalAndPatchSignals(map[string]interface{}{
		"state":       string(run.State),
		"error":       run.Error,
		"archivePath": run.ArchivePath,
	}); err != nil {
		log.Printf("failed to send terminal state for run %s: %v", run.ID, err)
	}
}

func terminal(state store.RunState) bool {
	return state == store.RunComplete || state == store.RunFailed
}
