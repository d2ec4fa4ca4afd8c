package models

// All returns every model for auto migration.
func All() []any {
	return []any{
		&User{},
		&Setting{},
		&ContentType{},
		&FieldInstance{},
		&Content{},
		&FieldValue{},
	}
}
