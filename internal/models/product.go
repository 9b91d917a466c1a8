// internal/models/product.go
package models

import "time"

// Design is a jewelry record. Admin products are persisted in the catalog;
// generated designs only live in a session's state.
type Design struct {
	ID          string      `json:"id" gorm:"primaryKey;size:64"`
	Name        string      `json:"name" gorm:"size:255;not null"`
	Type        JewelryType `json:"type" gorm:"type:varchar(20);index"`
	Material    Material    `json:"material" gorm:"type:varchar(20);index"`
	Gemstone    Gemstone    `json:"gemstone" gorm:"type:varchar(20);index"`
	ImageURL    string      `json:"imageUrl" gorm:"type:text"`
	Prompt      string      `json:"prompt,omitempty" gorm:"type:text"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Price       float64     `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"index"`
	IsFavorite  bool        `json:"isFavorite" gorm:"default:false"`
	// Position orders rows in database-backed catalogs; lower is newer.
	Position int `json:"-" gorm:"index;not null"`
}

func (Design) TableName() string {
	return "products"
}
