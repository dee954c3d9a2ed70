package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatchesByType(t *testing.T) {
	err := Wrap(ErrTypeLaunchSpawn, "error launching Minecraft", errors.New("exec: \"java\": not found"))

	assert.True(t, errors.Is(err, ErrLaunchSpawn))
	assert.False(t, errors.Is(err, ErrBusy))
	assert.Equal(t, "error launching Minecraft: exec: \"java\": not found", err.Error())
}

func TestCustomErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("launch: %w", ErrNotInstalled)

	assert.True(t, errors.Is(err, ErrNotInstalled))
	assert.Equal(t, ErrTypeNotInstalled, TypeOf(err))
	assert.Equal(t, ErrTypeGeneric, TypeOf(errors.New("plain")))
	assert.Equal(t, ErrTypeGeneric, TypeOf(nil))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrTypeDirectoryCreationFailed, "failed to create mods directory", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrDirectoryCreationFailed))
}
