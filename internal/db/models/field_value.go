package models

import "gorm.io/datatypes"

// FieldValue is the value a field instance holds for one content entity.
// Value is the canonical scalar; Extra keeps the structured companion data
// (raw user input, parsed timestamps) the field type needs to edit it again.
type FieldValue struct {
	// ID is the unique identifier for the value.
	ID uint64 `gorm:"primaryKey"`
	// ContentID is the ID of the content the value belongs to.
	ContentID uint64 `gorm:"not null;uniqueIndex:idx_field_value"`
	// FieldInstanceID is the ID of the field instance the value is stored for.
	FieldInstanceID uint64 `gorm:"not null;uniqueIndex:idx_field_value"`
	// Value is the scalar value, NULL when unset.
	Value *string `gorm:"type:text"`
	// Extra is the companion data as JSON.
	Extra datatypes.JSON
}

// TableName specifies the database table name for the FieldValue model.
func (FieldValue) TableName() string {
	return "field_values"
}
