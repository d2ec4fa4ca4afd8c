package models

import "time"

// ContentType represents a bundle of field instances, e.g. "Article".
// Every content entity belongs to exactly one content type.
type ContentType struct {
	// ID is the unique identifier for the content type.
	ID uint64 `gorm:"primaryKey"`
	// Slug is the unique machine name used in URLs (e.g., "article").
	Slug string `gorm:"unique;size:100;not null"`
	// Name is the human readable name of the content type.
	Name string `gorm:"size:255;not null"`
	// Description provides a human-readable explanation of the content type.
	Description string `gorm:"size:255"`
	// TitleLabel is the label of the title input in the content editor.
	TitleLabel string `gorm:"size:100"`
	// Fields are the field instances attached to the content type.
	Fields []FieldInstance `gorm:"foreignKey:ContentTypeID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the content type was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the content type was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ContentType model.
func (ContentType) TableName() string {
	return "content_types"
}
