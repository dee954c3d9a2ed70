package tui

import (
	"github.com/AvengeMedia/danklauncher/internal/fade"
	"github.com/AvengeMedia/danklauncher/internal/task"
)

type taskEventMsg struct {
	event task.Event
}

type fadeFrameMsg struct {
	frame fade.Frame
}

type modsListedMsg struct {
	names []string
	err   error
}
