package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/google/uuid"
)

// Job is the unit of work executed off the UI goroutine. report must only be
// called from the goroutine running the job, and the job must return soon
// after ctx is cancelled.
type Job func(ctx context.Context, report func(percent int)) error

type Runner struct {
	events chan<- Event
}

// NewRunner returns a runner that posts every task event onto events. The
// owner of UI state is expected to be the only reader.
func NewRunner(events chan<- Event) *Runner {
	return &Runner{events: events}
}

// Start runs job on a new goroutine and returns its handle immediately.
func (r *Runner) Start(kind Kind, label string, job Job) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		id:     uuid.New(),
		kind:   kind,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	log.Debug("task started", "id", h.id, "kind", kind, "label", label)
	go h.run(ctx, r.events, label, job)
	return h
}

type Handle struct {
	id     uuid.UUID
	kind   Kind
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	aborted bool
}

func (h *Handle) ID() uuid.UUID { return h.id }

func (h *Handle) Kind() Kind { return h.kind }

// Done is closed once the worker goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Abort cancels the job, stops event delivery and waits for its goroutine to
// exit. No event is queued once Abort has begun, and an aborted task never
// emits a DoneEvent. Safe to call repeatedly.
func (h *Handle) Abort() {
	// Cancel before taking mu: a sender blocked on a full queue holds it.
	h.cancel()

	h.mu.Lock()
	already := h.aborted
	h.aborted = true
	h.mu.Unlock()

	if !already {
		log.Debug("task aborted", "id", h.id, "kind", h.kind)
	}
	<-h.done
}

func (h *Handle) isAborted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aborted
}

func (h *Handle) run(ctx context.Context, events chan<- Event, label string, job Job) {
	defer close(h.done)
	defer h.cancel()

	last := 0
	report := func(percent int) {
		if percent > 100 {
			percent = 100
		}
		if percent <= last {
			return
		}
		last = percent
		h.emit(ctx, events, ProgressEvent{
			ID:      h.id,
			Kind:    h.kind,
			Percent: percent,
			Message: fmt.Sprintf("%s progress: %d%%", label, percent),
		})
	}

	err := job(ctx, report)
	if h.isAborted() {
		return
	}
	if err == nil && last < 100 {
		report(100)
	}

	if err != nil {
		log.Debug("task failed", "id", h.id, "kind", h.kind, "err", err)
	} else {
		log.Debug("task finished", "id", h.id, "kind", h.kind)
	}
	h.emit(ctx, events, DoneEvent{ID: h.id, Kind: h.kind, Err: err})
}

// emit holds mu across the check and the send so delivery cannot interleave
// with Abort.
func (h *Handle) emit(ctx context.Context, events chan<- Event, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.aborted || ctx.Err() != nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
