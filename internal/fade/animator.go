// Package fade ramps the opacity of a content surface from 0 to 1 on a
// periodic timer. Timer goroutines only post Frames; the owner of UI state
// applies them with Apply, which discards frames from superseded fades.
package fade

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/jonboulle/clockwork"
)

type Options struct {
	Step     float64
	Interval time.Duration
}

var DefaultOptions = Options{Step: 0.05, Interval: 30 * time.Millisecond}

func (o Options) Validate() error {
	if o.Step <= 0 || o.Step > 1 {
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "invalid fade options",
			fmt.Errorf("step must be within (0, 1], got %g", o.Step))
	}
	if o.Interval <= 0 {
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "invalid fade options",
			fmt.Errorf("interval must be positive, got %s", o.Interval))
	}
	return nil
}

// Ticks is the number of timer ticks from 0 to fully opaque.
func (o Options) Ticks() int {
	return int(math.Ceil(1/o.Step - 1e-9))
}

type Frame struct {
	Key     string
	Gen     uint64
	Opacity float64
	Final   bool
}

type Animator struct {
	clock  clockwork.Clock
	frames chan<- Frame
	opts   Options

	mu      sync.Mutex
	gen     uint64
	runs    map[string]*run
	opacity map[string]float64
}

type run struct {
	gen      uint64
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func (r *run) halt() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

func New(clock clockwork.Clock, frames chan<- Frame, opts Options) *Animator {
	return &Animator{
		clock:   clock,
		frames:  frames,
		opts:    opts,
		runs:    make(map[string]*run),
		opacity: make(map[string]float64),
	}
}

// Start begins a fade on key from 0. A fade already running on key is
// stopped first.
func (a *Animator) Start(key string) {
	a.mu.Lock()
	prev := a.runs[key]
	a.gen++
	r := &run{
		gen:  a.gen,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	a.runs[key] = r
	a.opacity[key] = 0
	a.mu.Unlock()

	if prev != nil {
		prev.halt()
	}
	go a.animate(key, r)
}

func (a *Animator) animate(key string, r *run) {
	defer close(r.done)

	ticker := a.clock.NewTicker(a.opts.Interval)
	defer ticker.Stop()

	total := a.opts.Ticks()
	for tick := 1; tick <= total; tick++ {
		select {
		case <-r.stop:
			return
		case <-ticker.Chan():
		}

		frame := Frame{Key: key, Gen: r.gen, Opacity: float64(tick) * a.opts.Step}
		if tick == total || frame.Opacity > 1 {
			frame.Opacity = 1
			frame.Final = tick == total
		}

		select {
		case a.frames <- frame:
		case <-r.stop:
			return
		}
	}
}

// Apply records frame if it belongs to the current fade of its key.
func (a *Animator) Apply(frame Frame) (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.runs[frame.Key]
	if !ok || r.gen != frame.Gen {
		return a.opacityLocked(frame.Key), false
	}
	a.opacity[frame.Key] = frame.Opacity
	return frame.Opacity, true
}

// Opacity of key; surfaces that never faded are fully opaque.
func (a *Animator) Opacity(key string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.opacityLocked(key)
}

func (a *Animator) opacityLocked(key string) float64 {
	if v, ok := a.opacity[key]; ok {
		return v
	}
	return 1
}

// Running reports whether key still has a live timer.
func (a *Animator) Running(key string) bool {
	a.mu.Lock()
	r, ok := a.runs[key]
	a.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

func (a *Animator) Stop(key string) {
	a.mu.Lock()
	r, ok := a.runs[key]
	delete(a.runs, key)
	a.mu.Unlock()
	if ok {
		r.halt()
	}
}

// Close stops every timer and waits for them to exit.
func (a *Animator) Close() {
	a.mu.Lock()
	runs := a.runs
	a.runs = make(map[string]*run)
	a.mu.Unlock()

	for _, r := range runs {
		r.halt()
	}
}
