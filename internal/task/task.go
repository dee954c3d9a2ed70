package task

import (
	"github.com/google/uuid"
)

type Kind int

const (
	KindInstall Kind = iota
	KindDownload
)

func (k Kind) String() string {
	switch k {
	case KindInstall:
		return "install"
	case KindDownload:
		return "download"
	default:
		return "unknown"
	}
}

// Event is anything a running task posts onto the runner's queue.
type Event interface {
	TaskID() uuid.UUID
}

// ProgressEvent is emitted at most once per distinct percentage, in strictly
// increasing order.
type ProgressEvent struct {
	ID      uuid.UUID
	Kind    Kind
	Percent int
	Message string
}

func (e ProgressEvent) TaskID() uuid.UUID { return e.ID }

// DoneEvent is the terminal event of a task. Err is nil on success.
type DoneEvent struct {
	ID   uuid.UUID
	Kind Kind
	Err  error
}

func (e DoneEvent) TaskID() uuid.UUID { return e.ID }
