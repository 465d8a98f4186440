package importing

import (
	"sync"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/eventbus"
)

// Tracker is the single observable piece of import-scoped mutable state. It
// keeps a snapshot readable at any moment without blocking the pipeline and
// mirrors every advance onto the event bus as a ProgressEvent.
type Tracker struct {
	publisher eventbus.EventBus

	mu         sync.RWMutex
	processing bool
	operation  string
	progress   float64
	selected   records.Kind
	results    map[records.Kind]*Result
}

func NewTracker(publisher eventbus.EventBus) *Tracker {
	return &Tracker{
		publisher: publisher,
		results:   make(map[records.Kind]*Result),
	}
}

// State is a point-in-time copy of the tracker for observers.
type State struct {
	Processing bool
	Operation  string
	Progress   float64
	Selected   records.Kind
}

func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return State{
		Processing: t.processing,
		Operation:  t.operation,
		Progress:   t.progress,
		Selected:   t.selected,
	}
}

// ResultFor returns the outcome buckets of the last import of a kind, nil
// when that kind was never imported since the last Reset.
func (t *Tracker) ResultFor(kind records.Kind) *Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.results[kind]
}

func (t *Tracker) begin(kind records.Kind) {
	t.mu.Lock()
	t.processing = true
	t.selected = kind
	t.operation = "initializing"
	t.progress = 0
	t.mu.Unlock()
	t.emit()
}

// advance moves the operation label and progress forward. Progress never goes
// backwards within one import: stale values are clamped.
func (t *Tracker) advance(operation string, progress float64) {
	t.mu.Lock()
	if operation != "" {
		t.operation = operation
	}
	if progress > t.progress {
		if progress > 1 {
			progress = 1
		}
		t.progress = progress
	}
	t.mu.Unlock()
	t.emit()
}

func (t *Tracker) finish(result *Result) {
	t.mu.Lock()
	t.processing = false
	t.operation = "done"
	t.progress = 1
	t.results[result.Kind] = result
	t.mu.Unlock()
	t.emit()
}

func (t *Tracker) fail() {
	t.mu.Lock()
	t.processing = false
	t.mu.Unlock()
	t.emit()
}

// Reset clears all outcome buckets and marks the tracker idle.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.processing = false
	t.operation = ""
	t.progress = 0
	t.selected = ""
	t.results = make(map[records.Kind]*Result)
	t.mu.Unlock()
}

func (t *Tracker) emit() {
	if t.publisher == nil {
		return
	}
	s := t.State()
	t.publisher.Publish(&ProgressEvent{
		Kind:      s.Selected,
		Operation: s.Operation,
		Progress:  s.Progress,
	})
}
