package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Product represents a catalog product.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description"`
	Price          float64    `db:"price" json:"price"`
	CompareAtPrice *float64   `db:"compare_at_price" json:"compareAtPrice,omitempty"`
	ImageURL       string     `db:"image_url" json:"imageUrl"`
	Images         StringList `db:"images" json:"images"`
	CategoryID     string     `db:"category_id" json:"categoryId"`
	Brand          string     `db:"brand" json:"brand"`
	SKU            string     `db:"sku" json:"sku"`
	Inventory      int        `db:"inventory" json:"inventory"`
	Specifications SpecList   `db:"specifications" json:"specifications"`
	Rating         float64    `db:"rating" json:"rating"`
	ReviewCount    int        `db:"review_count" json:"reviewCount"`
	FreeShipping   bool       `db:"free_shipping" json:"freeShipping"`
	Featured       bool       `db:"featured" json:"featured"`
	OnSale         bool       `db:"on_sale" json:"onSale"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`

	// Denormalized category, populated on reads that join categories.
	Category *CategoryRef `db:"-" json:"category,omitempty"`
}

// CategoryRef is the denormalized category payload attached to product reads.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Specification is one ordered (name, value) pair on a product.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// InStock reports whether the product has any units available.
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// StringList maps a JSONB array of strings to []string.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// SpecList maps a JSONB array of specification pairs to []Specification.
type SpecList []Specification

// Value implements driver.Valuer.
func (l SpecList) Value() (driver.Value, error) {
	if l == nil {
		l = SpecList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *SpecList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
