package models

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/fieldcms/fieldcms/internal/field"
)

// FieldInstance represents a field type attached to a content type.
// The handler name selects the field type implementation from the field registry.
type FieldInstance struct {
	// ID is the unique identifier for the field instance.
	ID uint64 `gorm:"primaryKey"`
	// ContentTypeID is the ID of the content type the instance is attached to.
	ContentTypeID uint64 `gorm:"not null;uniqueIndex:idx_field_instance_slug"`
	// Slug is the field name, unique per content type. Posted data is keyed by it.
	Slug string `gorm:"size:100;not null;uniqueIndex:idx_field_instance_slug"`
	// Label is shown next to the field in forms and displays.
	Label string `gorm:"size:255;not null"`
	// Description is shown as help text in the content editor.
	Description string `gorm:"size:255"`
	// Handler is the registry name of the field type (e.g., "DateField").
	Handler string `gorm:"size:100;not null"`
	// Required marks the field as mandatory in the content editor.
	Required bool
	// Settings holds the field.InstanceSettings as JSON.
	Settings datatypes.JSON
	// ViewModes maps view mode names to field.ViewModeSettings as JSON.
	ViewModes datatypes.JSON
	// Ordering is the position of the field in forms.
	Ordering int
}

// TableName specifies the database table name for the FieldInstance model.
func (FieldInstance) TableName() string {
	return "field_instances"
}

// InstanceSettings decodes the stored settings. Broken settings decode to the zero value.
func (fi *FieldInstance) InstanceSettings() field.InstanceSettings {
	var s field.InstanceSettings

	if len(fi.Settings) > 0 {
		_ = json.Unmarshal(fi.Settings, &s)
	}

	return s
}

// SetInstanceSettings encodes s into Settings.
func (fi *FieldInstance) SetInstanceSettings(s field.InstanceSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	fi.Settings = data

	return nil
}

// ViewModeSettings returns the stored settings of one view mode.
func (fi *FieldInstance) ViewModeSettings(viewMode string) (field.ViewModeSettings, bool) {
	modes := fi.viewModes()
	s, ok := modes[viewMode]

	return s, ok
}

// SetViewModeSettings stores the settings of one view mode.
func (fi *FieldInstance) SetViewModeSettings(viewMode string, s field.ViewModeSettings) error {
	modes := fi.viewModes()
	modes[viewMode] = s

	data, err := json.Marshal(modes)
	if err != nil {
		return err
	}

	fi.ViewModes = data

	return nil
}

func (fi *FieldInstance) viewModes() map[string]field.ViewModeSettings {
	modes := make(map[string]field.ViewModeSettings)

	if len(fi.ViewModes) > 0 {
		_ = json.Unmarshal(fi.ViewModes, &modes)
	}

	return modes
}

// Instance converts the model into the handler input.
func (fi *FieldInstance) Instance() field.Instance {
	return field.Instance{
		ID:          fi.ID,
		Slug:        fi.Slug,
		Label:       fi.Label,
		Description: fi.Description,
		Handler:     fi.Handler,
		Required:    fi.Required,
		Settings:    fi.InstanceSettings(),
	}
}
