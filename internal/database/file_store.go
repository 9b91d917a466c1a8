// internal/database/file_store.go
package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

// FileProductStore keeps the catalog as one JSON array on disk. All access
// goes through mu, so a process has exactly one writer; files are replaced
// with a rename so readers never see a half-written document.
type FileProductStore struct {
	mu   sync.Mutex
	path string
}

func NewFileProductStore(path string) *FileProductStore {
	return &FileProductStore{path: path}
}

func (s *FileProductStore) Path() string {
	return s.path
}

func (s *FileProductStore) ReadAll(ctx context.Context) ([]models.Design, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked()
}

func (s *FileProductStore) WriteAll(ctx context.Context, products []models.Design) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDataFile(); err != nil {
		return err
	}
	return s.writeLocked(products)
}

func (s *FileProductStore) Add(ctx context.Context, product models.Design) (models.Design, error) {
	if err := ctx.Err(); err != nil {
		return models.Design{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.readLocked()
	if err != nil {
		return models.Design{}, err
	}

	products = append([]models.Design{product}, products...)
	if err := s.writeLocked(products); err != nil {
		return models.Design{}, err
	}
	return product, nil
}

func (s *FileProductStore) Clear(ctx context.Context) error {
	return s.WriteAll(ctx, []models.Design{})
}

// Quarantine moves a corrupt catalog aside and starts a fresh, empty one.
// It returns the path the old file was moved to.
func (s *FileProductStore) Quarantine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	if err := os.Rename(s.path, target); err != nil {
		return "", fmt.Errorf("failed to quarantine catalog: %w", err)
	}
	if err := s.writeLocked([]models.Design{}); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"path":        s.path,
		"quarantined": target,
	}).Warn("Corrupt catalog moved aside")

	return target, nil
}

// Check verifies the catalog parses. With quarantine set, a corrupt file is
// moved aside instead of reported.
func (s *FileProductStore) Check(ctx context.Context, quarantine bool) error {
	_, err := s.ReadAll(ctx)
	if err == nil || !errors.Is(err, ErrCatalogCorrupt) || !quarantine {
		return err
	}
	_, err = s.Quarantine()
	return err
}

func (s *FileProductStore) ensureDataFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat catalog file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.writeLocked([]models.Design{}); err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	return nil
}

func (s *FileProductStore) readLocked() ([]models.Design, error) {
	if err := s.ensureDataFile(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.Design{}, nil
	}

	var products []models.Design
	if err := json.Unmarshal(raw, &products); err != nil {
		logrus.WithError(err).WithField("path", s.path).Error("Failed to parse catalog file")
		return nil, &CorruptCatalogError{Path: s.path, Err: err}
	}
	if products == nil {
		products = []models.Design{}
	}
	return products, nil
}

func (s *FileProductStore) writeLocked(products []models.Design) error {
	if products == nil {
		products = []models.Design{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
