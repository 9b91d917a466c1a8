// internal/database/connection.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogLevel == "info" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Design{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// Open builds the product store selected by cfg.Catalog.Driver. The returned
// closer releases any database connection.
func Open(ctx context.Context, cfg *config.Config) (ProductStore, func(), error) {
	switch cfg.Catalog.Driver {
	case "postgres":
		db, err := Initialize(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := RunMigrations(db); err != nil {
			Close(db)
			return nil, nil, err
		}
		return NewGormProductStore(db), func() { Close(db) }, nil
	default:
		store := NewFileProductStore(cfg.Catalog.Path())
		if err := store.Check(ctx, cfg.Catalog.RecoverCorrupt); err != nil {
			if !errors.Is(err, ErrCatalogCorrupt) {
				return nil, nil, err
			}
			// Serve anyway; catalog requests report the corruption until
			// an operator recovers the file.
			logrus.WithError(err).Warn("Product catalog is corrupt; set CATALOG_RECOVER_CORRUPT=true to quarantine it")
		}
		logrus.WithField("path", store.Path()).Info("Using file-backed product catalog")
		return store, func() {}, nil
	}
}
