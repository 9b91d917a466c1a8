// internal/database/gorm_store.go
package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

// GormProductStore keeps the catalog in the products table. The position
// column holds list order so reads return exactly what WriteAll stored and
// Add lands in front, matching the file store.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) ReadAll(ctx context.Context) ([]models.Design, error) {
	products := []models.Design{}
	if err := s.db.WithContext(ctx).Order("position asc").Order("created_at desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	for i := range products {
		products[i].Position = 0
	}
	return products, nil
}

func (s *GormProductStore) WriteAll(ctx context.Context, products []models.Design) error {
	rows := make([]models.Design, len(products))
	for i, p := range products {
		p.Position = i
		rows[i] = p
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Design{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to write products: %w", err)
		}
		return nil
	})
}

func (s *GormProductStore) Add(ctx context.Context, product models.Design) (models.Design, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var head struct {
			Total  int64
			Lowest int
		}
		if err := tx.Model(&models.Design{}).
			Select("COUNT(*) AS total, COALESCE(MIN(position), 0) AS lowest").
			Scan(&head).Error; err != nil {
			return fmt.Errorf("failed to read catalog head: %w", err)
		}

		row := product
		row.Position = 0
		if head.Total > 0 {
			row.Position = head.Lowest - 1
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Design{}, err
	}
	return product, nil
}

func (s *GormProductStore) Clear(ctx context.Context) error {
	return s.WriteAll(ctx, nil)
}
