package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSlotRepository keeps each slot in <dir>/<key>.json
type FileSlotRepository struct {
	dir string
}

// NewFileSlotRepository creates a new FileSlotRepository rooted at dir
func NewFileSlotRepository(dir string) *FileSlotRepository {
	return &FileSlotRepository{dir: dir}
}

// Ensure FileSlotRepository implements SlotRepositoryInterface
var _ SlotRepositoryInterface = (*FileSlotRepository)(nil)

// slotPath maps a key to a file name inside the repository directory
func (r *FileSlotRepository) slotPath(key string) string {
	name := strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return c
	}, key)
	return filepath.Join(r.dir, name+".json")
}

// Load reads the slot file
func (r *FileSlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.slotPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Save writes the payload to a temporary file and renames it over the slot,
// so a reader never sees a half-written document.
func (r *FileSlotRepository) Save(ctx context.Context, key string, payload []byte) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, ".slot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close slot %s: %w", key, err)
	}

	if err := os.Rename(tmpName, r.slotPath(key)); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", key, err)
	}
	return nil
}
