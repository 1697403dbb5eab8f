package pipeline

// Event is one progress update from a running pipeline. Events for a run
// are strictly ordered: step never decreases and the final event carries
// step == total.
type Event struct {
	Message string `json:"message"`
	Step    int    `json:"step"`
	Total   int    `json:"total"`
}

// emit sends an event when a sink is attached. A nil channel is legal and
// simply means progress is not reported.
func emit(progress chan<- Event, message string, step, total int) {
	if progress == nil {
		return
	}
	progress <- Event{Message: message, Step: step, Total: total}
}
