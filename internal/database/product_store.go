// internal/database/product_store.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

// ErrCatalogCorrupt is matched (via errors.Is) by every error caused by an
// unparseable catalog document.
var ErrCatalogCorrupt = errors.New("catalog is corrupt")

type CorruptCatalogError struct {
	Path string
	Err  error
}

func (e *CorruptCatalogError) Error() string {
	return fmt.Sprintf("catalog file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptCatalogError) Unwrap() error {
	return e.Err
}

func (e *CorruptCatalogError) Is(target error) bool {
	return target == ErrCatalogCorrupt
}

// ProductStore persists the admin product list. Add prepends, so ReadAll
// returns the newest product first.
type ProductStore interface {
	ReadAll(ctx context.Context) ([]models.Design, error)
	WriteAll(ctx context.Context, products []models.Design) error
	Add(ctx context.Context, product models.Design) (models.Design, error)
	Clear(ctx context.Context) error
}
