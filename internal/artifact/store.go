package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	namePrefix = "minecraft-"
	nameSuffix = ".jar"
)

// Record describes the local artifact for one game version. It is derived
// on every lookup and never cached.
type Record struct {
	Version string
	Name    string
	Path    string
	Present bool
}

type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

func (s *Store) Root() string { return s.root }

// Name maps a version to its artifact file name.
func Name(version string) string {
	return namePrefix + version + nameSuffix
}

// ValidVersion rejects versions that would escape the storage root or
// produce ambiguous file names.
func ValidVersion(version string) error {
	if version == "" {
		return errors.New("version is empty")
	}
	if strings.ContainsAny(version, `/\`) || strings.Contains(version, "..") {
		return fmt.Errorf("version %q contains path separators", version)
	}
	return nil
}

func (s *Store) Lookup(version string) (Record, error) {
	rec := Record{
		Version: version,
		Name:    Name(version),
		Path:    filepath.Join(s.root, Name(version)),
	}
	if err := ValidVersion(version); err != nil {
		return rec, err
	}

	info, err := s.fs.Stat(rec.Path)
	switch {
	case err == nil:
		rec.Present = !info.IsDir()
	case errors.Is(err, os.ErrNotExist):
		rec.Present = false
	default:
		return rec, fmt.Errorf("failed to stat %s: %w", rec.Path, err)
	}
	return rec, nil
}

// Create makes a zero-byte placeholder for version. An existing artifact is
// left untouched, so repeating the call is harmless.
func (s *Store) Create(version string) (Record, error) {
	if err := ValidVersion(version); err != nil {
		return Record{Version: version, Name: Name(version)}, err
	}

	path := filepath.Join(s.root, Name(version))
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Record{Version: version, Name: Name(version), Path: path},
			fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Record{Version: version, Name: Name(version), Path: path},
			fmt.Errorf("failed to close %s: %w", path, err)
	}

	return s.Lookup(version)
}
