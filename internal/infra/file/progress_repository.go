// Package file stores progress and reads question banks from the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"skill-evolve-service/internal/domain"
)

// ProgressRepository keeps one JSON document per slot under dir.
type ProgressRepository struct {
	dir string
}

func NewProgressRepository(dir string) (*ProgressRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &ProgressRepository{dir: dir}, nil
}

func (r *ProgressRepository) Get(_ context.Context, slot string) ([]byte, error) {
	path, err := r.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrProgressNotFound
	}
	return data, err
}

// Put writes to a temp file and renames it over the save.
func (r *ProgressRepository) Put(_ context.Context, slot string, data []byte) error {
	path, err := r.path(slot)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (r *ProgressRepository) Delete(_ context.Context, slot string) error {
	path, err := r.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (r *ProgressRepository) path(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", fmt.Errorf("%w: save slot %q", domain.ErrInvalidArgument, slot)
	}
	return filepath.Join(r.dir, slot+".json"), nil
}
