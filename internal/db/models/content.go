package models

import "time"

// Content represents a content entity, e.g. one article.
type Content struct {
	// ID is the unique identifier for the content.
	ID uint64 `gorm:"primaryKey"`
	// ContentTypeID is the ID of the content type of this entity.
	ContentTypeID uint64 `gorm:"not null;index"`
	// ContentType is the associated content type.
	ContentType ContentType `gorm:"foreignKey:ContentTypeID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	// Title is the human readable title.
	Title string `gorm:"size:255;not null"`
	// Slug is the unique URL part of the content (e.g., "hello-world").
	Slug string `gorm:"unique;size:255;not null"`
	// Values are the stored field values, one per field instance.
	Values []FieldValue `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the content was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the content was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Content model.
func (Content) TableName() string {
	return "contents"
}

// Value returns the stored value of a field instance or nil.
func (c *Content) Value(fieldInstanceID uint64) *FieldValue {
	for i := range c.Values {
		if c.Values[i].FieldInstanceID == fieldInstanceID {
			return &c.Values[i]
		}
	}

	return nil
}
