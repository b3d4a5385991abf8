// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/menu-predictor/internal/logger"
)

// fileArtifactStorage keeps artifacts as plain files below a root
// directory. Keys map to relative paths.
type fileArtifactStorage struct {
	root   string
	logger *logger.Logger
}

// NewFileArtifactStorage creates root if needed and returns an
// [ArtifactStorage] rooted there.
func NewFileArtifactStorage(root string, logger *logger.Logger) (ArtifactStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	logger.Debug().Str("root", root).Msg("using local artifact storage")

	return &fileArtifactStorage{root: root, logger: logger}, nil
}

func (s *fileArtifactStorage) path(key string) (string, error) {
	cleaned, err := cleanArtifactKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Save writes data to a temporary file next to the target and renames it
// into place, so readers never observe a partial artifact.
func (s *fileArtifactStorage) Save(ctx context.Context, key string, data []byte) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		logger.FromContext(ctx).Err(err).Str("func", "*fileArtifactStorage.Save").Str("key", key).Msg("error saving artifact")
		return fmt.Errorf("rename artifact: %w", err)
	}

	return nil
}

func (s *fileArtifactStorage) Load(ctx context.Context, key string) ([]byte, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	return data, nil
}

// Delete removes the artifact. Deleting a missing key is not an error.
func (s *fileArtifactStorage) Delete(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (s *fileArtifactStorage) Exists(ctx context.Context, key string) (bool, error) {
	target, err := s.path(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat artifact: %w", err)
	}

	return !info.IsDir(), nil
}
