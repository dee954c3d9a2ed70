package launcher

import (
	"fmt"

	"github.com/AvengeMedia/danklauncher/internal/errdefs"
)

const (
	MinMemoryMB     = 512
	MaxMemoryMB     = 4096
	MemoryStepMB    = 128
	DefaultMemoryMB = 2048
)

// Settings are kept in memory for the lifetime of the process only.
type Settings struct {
	AutoUpdate bool
	MemoryMB   int
	JavaPath   string
}

func DefaultSettings() Settings {
	return Settings{MemoryMB: DefaultMemoryMB}
}

func (s Settings) Validate() error {
	if s.MemoryMB < MinMemoryMB || s.MemoryMB > MaxMemoryMB {
		return errdefs.Wrap(errdefs.ErrTypeInvalidSettings, "invalid memory allocation",
			fmt.Errorf("%d MB is outside %d..%d MB", s.MemoryMB, MinMemoryMB, MaxMemoryMB))
	}
	return nil
}

// StepMemory moves the allocation by delta slider ticks, clamped to range.
func (s Settings) StepMemory(delta int) Settings {
	s.MemoryMB += delta * MemoryStepMB
	if s.MemoryMB < MinMemoryMB {
		s.MemoryMB = MinMemoryMB
	}
	if s.MemoryMB > MaxMemoryMB {
		s.MemoryMB = MaxMemoryMB
	}
	return s
}
