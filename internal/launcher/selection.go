package launcher

import (
	"fmt"
	"strings"

	"github.com/AvengeMedia/danklauncher/internal/artifact"
	"github.com/AvengeMedia/danklauncher/internal/errdefs"
)

type ModLoader int

const (
	ModLoaderNone ModLoader = iota
	ModLoaderForge
	ModLoaderFabric
)

// ModLoaders lists the selectable loaders in display order.
var ModLoaders = []ModLoader{ModLoaderForge, ModLoaderFabric}

// DefaultVersions is the fixed set of game versions offered for selection.
var DefaultVersions = []string{"1.16.5", "1.17.1", "1.18.2", "1.19.4", "1.20.1", "1.21.4"}

func (m ModLoader) String() string {
	switch m {
	case ModLoaderForge:
		return "Forge"
	case ModLoaderFabric:
		return "Fabric"
	default:
		return "None"
	}
}

func ParseModLoader(s string) (ModLoader, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModLoaderNone, nil
	case "forge":
		return ModLoaderForge, nil
	case "fabric":
		return ModLoaderFabric, nil
	default:
		return ModLoaderNone, fmt.Errorf("unknown mod loader %q (want forge or fabric)", s)
	}
}

// Selection is what the user picked at the moment an action fires.
type Selection struct {
	ModLoader ModLoader
	Version   string
}

func (s Selection) Validate() error {
	if s.ModLoader == ModLoaderNone {
		return errdefs.ErrInvalidSelection
	}
	if err := artifact.ValidVersion(s.Version); err != nil {
		return errdefs.Wrap(errdefs.ErrTypeInvalidSelection, "please select a Minecraft version", err)
	}
	return nil
}

type InstallationState int

const (
	NotInstalled InstallationState = iota
	Installing
	Installed
	// Failed is reported by Controller.Status after an install task failed.
	// The stored state itself reverts to NotInstalled.
	Failed
)

func (s InstallationState) String() string {
	switch s {
	case NotInstalled:
		return "not installed"
	case Installing:
		return "installing"
	case Installed:
		return "installed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
