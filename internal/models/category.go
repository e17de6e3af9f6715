package models

// Category represents a node in the catalog category tree. ParentID is nil
// for root categories.
type Category struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"`
	Description string  `db:"description" json:"description,omitempty"`
	ImageURL    string  `db:"image_url" json:"imageUrl,omitempty"`
	ParentID    *string `db:"parent_id" json:"parentCategory,omitempty"`
	Active      bool    `db:"active" json:"active"`
	SortOrder   int     `db:"sort_order" json:"order"`
}
