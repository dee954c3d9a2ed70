package progress

import (
	"fmt"
	"io"
	"sync"
)

// Reporter is the sink for status feedback. Implementations hold no
// workflow logic.
type Reporter interface {
	SetProgress(percent int)
	AppendLog(line string)
	// Notice surfaces an error to the user. It also lands in the log so
	// errors and progress read as one stream.
	Notice(err error)
	Clear()
}

const defaultMaxLines = 50

// Log keeps the latest percentage, a bounded tail of log lines and the most
// recent undismissed notice. It is owned by the UI goroutine.
type Log struct {
	percent  int
	lines    []string
	notice   error
	maxLines int
}

func NewLog() *Log {
	return &Log{maxLines: defaultMaxLines}
}

func (l *Log) SetProgress(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	l.percent = percent
}

func (l *Log) AppendLog(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > l.maxLines {
		l.lines = l.lines[len(l.lines)-l.maxLines:]
	}
}

func (l *Log) Notice(err error) {
	if err == nil {
		return
	}
	l.notice = err
	l.AppendLog("Error: " + err.Error())
}

// Clear empties the log and resets the bar. Pending notices stay.
func (l *Log) Clear() {
	l.lines = nil
	l.percent = 0
}

func (l *Log) Percent() int { return l.percent }

// Tail returns up to n of the most recent lines.
func (l *Log) Tail(n int) []string {
	if n <= 0 || len(l.lines) == 0 {
		return nil
	}
	start := 0
	if len(l.lines) > n {
		start = len(l.lines) - n
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

func (l *Log) Lines() []string { return l.Tail(len(l.lines)) }

func (l *Log) PendingNotice() error { return l.notice }

func (l *Log) DismissNotice() { l.notice = nil }

// Writer prints every update as a line. Used by the headless commands.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	errs []error
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) SetProgress(int) {}

func (w *Writer) AppendLog(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, line)
}

func (w *Writer) Notice(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	w.errs = append(w.errs, err)
	w.mu.Unlock()
	w.AppendLog("Error: " + err.Error())
}

func (w *Writer) Clear() {}

// Errors returns every notice seen so far.
func (w *Writer) Errors() []error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]error(nil), w.errs...)
}

// Tee fans every call out to all reporters in order.
type Tee []Reporter

func (t Tee) SetProgress(percent int) {
	for _, r := range t {
		r.SetProgress(percent)
	}
}

func (t Tee) AppendLog(line string) {
	for _, r := range t {
		r.AppendLog(line)
	}
}

func (t Tee) Notice(err error) {
	for _, r := range t {
		r.Notice(err)
	}
}

func (t Tee) Clear() {
	for _, r := range t {
		r.Clear()
	}
}
