// Package store keeps the state of pipeline runs started by the HTTP
// service in memory.
package store

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"cardforge/internal/pipeline"
)

// RunState is the lifecycle state of a generation run.
type RunState string

const (
	RunPending  RunState = "pending"
	RunRunning  RunState = "running"
	RunComplete RunState = "complete"
	RunFailed   RunState = "failed"
)

// Run is one pipeline invocation tracked by the service. Fields are only
// read or written through MemoryStore methods.
type Run struct {
	ID          string                 `json:"id"`
	Theme       string                 `json:"theme"`
	CardCount   int                    `json:"card_count"`
	TemplateID  string                 `json:"template_id"`
	State       RunState               `json:"state"`
	Error       string                 `json:"error,omitempty"`
	ArchivePath string                 `json:"archive_path,omitempty"`
	Events      []pipeline.Event       `json:"events"`
	Outcomes    []pipeline.CardOutcome `json:"outcomes,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// MemoryStore holds all run state in memory.
type MemoryStore struct {
	mu          sync.RWMutex
	runs        map[string]*Run
	subscribers map[string][]chan pipeline.Event
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:        make(map[string]*Run),
		subscribers: make(map[string][]chan pipeline.Event),
	}
}

// CreateRun registers a new pending run and returns its snapshot.
func (s *MemoryStore) CreateRun(theme string, cardCount int, templateID string) Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	for i := 0; i < 10; i++ { // Try up to 10 times
		id = generateRunID()
		if _, exists := s.runs[id]; !exists {
			break
		}
	}

	run := &Run{
		ID:         id,
		Theme:      theme,
		CardCount:  cardCount,
		TemplateID: templateID,
		State:      RunPending,
		CreatedAt:  time.Now(),
	}
	s.runs[id] = run
	return snapshot(run)
}

// GetRun returns a snapshot of a run by id.
func (s *MemoryStore) GetRun(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	return snapshot(run), nil
}

// SetRunning marks a run as executing.
func (s *MemoryStore) SetRunning(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run, ok := s.runs[id]; ok {
		run.State = RunRunning
	}
}

// Complete records a finished run.
func (s *MemoryStore) Complete(id, archivePath string, outcomes []pipeline.CardOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run, ok := s.runs[id]; ok {
		run.State = RunComplete
		run.ArchivePath = archivePath
		run.Outcomes = outcomes
	}
}

// Fail records a run that aborted.
func (s *MemoryStore) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run, ok := s.runs[id]; ok {
		run.State = RunFailed
		run.Error = err.Error()
	}
}

// AppendEvent records a progress event and fans it out to subscribers.
// Slow subscribers are skipped rather than blocking the pipeline.
func (s *MemoryStore) AppendEvent(id string, ev pipeline.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return
	}
	run.Events = append(run.Events, ev)

	for _, ch := range s.subscribers[id] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel receiving future progress events for a run.
func (s *MemoryStore) Subscribe(id string) chan pipeline.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan pipeline.Event, 64)
	s.subscribers[id] = append(s.subscribers[id], ch)
	return ch
}

// Unsubscribe removes a subscription.
func (s *MemoryStore) Unsubscribe(id string, ch chan pipeline.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[id]
	for i, sub := range subs {
		if sub == ch {
			s.subscribers[id] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// snapshot copies a run so callers never share the stored value.
func snapshot(run *Run) Run {
	out := *run
	out.Events = append([]pipeline.Event(nil), run.Events...)
	out.Outcomes = append([]pipeline.CardOutcome(nil), run.Outcomes...)
	return out
}

// generateRunID generates an 8-character alphanumeric run id.
func generateRunID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	rand.Read(b)

	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
