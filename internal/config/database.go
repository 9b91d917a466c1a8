// internal/config/database.go
package config

import (
	"fmt"
	"path/filepath"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// Path is the location of the JSON catalog document.
func (c *CatalogConfig) Path() string {
	return filepath.Join(c.DataDir, c.FileName)
}
