package notify

import (
	"fmt"
	"sync"

	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = busName + ".Notify"
)

type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

type Sender interface {
	Send(summary, body string, urgency Urgency) error
}

// Notifier posts desktop notifications over the session bus.
type Notifier struct {
	appName string
	conn    *dbus.Conn
	obj     dbus.BusObject

	mu     sync.Mutex
	closed bool
}

func New(appName string) (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Notifier{
		appName: appName,
		conn:    conn,
		obj:     conn.Object(busName, dbus.ObjectPath(objectPath)),
	}, nil
}

// Send does not wait for the notification daemon to reply.
func (n *Notifier) Send(summary, body string, urgency Urgency) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return fmt.Errorf("notifier closed")
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(urgency)),
	}
	call := n.obj.Go(method, dbus.FlagNoReplyExpected, nil,
		n.appName, uint32(0), "", summary, body, []string{}, hints, int32(5000))
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.conn.Close()
}

// Reporter forwards notices and selected log lines as notifications. It
// satisfies progress.Reporter so it can sit in a progress.Tee.
type Reporter struct {
	sender  Sender
	summary string
	lines   map[string]bool
}

func NewReporter(sender Sender, summary string, lines []string) *Reporter {
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[l] = true
	}
	return &Reporter{sender: sender, summary: summary, lines: set}
}

func (r *Reporter) SetProgress(int) {}

func (r *Reporter) AppendLog(line string) {
	if !r.lines[line] {
		return
	}
	if err := r.sender.Send(r.summary, line, UrgencyNormal); err != nil {
		log.Debugf("notification dropped: %v", err)
	}
}

func (r *Reporter) Notice(err error) {
	if err == nil {
		return
	}
	if sendErr := r.sender.Send(r.summary, err.Error(), UrgencyCritical); sendErr != nil {
		log.Debugf("notification dropped: %v", sendErr)
	}
}

func (r *Reporter) Clear() {}
