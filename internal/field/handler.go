// Package field defines the contract between the content pipeline and the
// field type handlers (date pickers, publishing windows, ...).
//
// A handler never touches the database or the HTTP request. It receives a
// Field describing the attached instance and its current value, and returns
// new values, validation rules, visibility decisions or template elements.
package field

import (
	"encoding/json"
	"time"
)

// Handler is implemented by every field type.
type Handler interface {
	// Name is the registry key stored on field instances, e.g. "DateField".
	Name() string

	// Info describes the field type for the field type registry.
	Info() Info

	// Display returns the element rendering the value for visitors.
	Display(f Field, opts ViewOptions) Element

	// Edit returns the form element used by the content editor.
	Edit(f Field, opts ViewOptions) Element

	// BeforeSave turns the posted form data into the stored value. A returned
	// *Error rejects the save.
	BeforeSave(f Field, post Post) (SaveResult, error)

	// Validate registers the rules the posted data must satisfy.
	Validate(f Field, rules *Rules)

	// BeforeFind reports whether the entity holding f may be returned by a find.
	BeforeFind(f Field, q FindQuery) bool

	// SettingsForm returns the element editing the instance settings.
	SettingsForm(instance Instance) Element

	// ValidateSettings checks instance settings before they are stored.
	ValidateSettings(settings InstanceSettings) ValidationErrors

	// ViewModeForm returns the element editing the settings of one view mode.
	ViewModeForm(instance Instance, viewMode string) Element

	// ViewModeDefaults returns the view mode settings used until an administrator
	// changes them.
	ViewModeDefaults(instance Instance, viewMode string) ViewModeSettings
}

// Info is the static descriptor of a field type.
type Info struct {
	Type         string // storage type: "datetime", "text", ...
	Name         string
	Description  string
	Hidden       bool
	MaxInstances int // per content type, 0 means unlimited
	Searchable   bool
}

// Instance is a field type attached to a content type.
type Instance struct {
	ID          uint64
	Slug        string
	Label       string
	Description string
	Handler     string
	Required    bool
	Settings    InstanceSettings
}

// Field is an instance together with the value stored for one entity.
type Field struct {
	Instance

	Value *string
	Extra json.RawMessage
}

// Name is the key used for posted data and error messages.
func (f Field) Name() string {
	return f.Slug
}

// SaveResult is the value computed by BeforeSave.
type SaveResult struct {
	Value *string
	Extra json.RawMessage
}

// FindQuery describes the find a BeforeFind call takes part in.
type FindQuery struct {
	// Primary is false for nested fetches of associated entities.
	Primary bool
	// Admin is true for requests made from the administration area.
	Admin bool
	Now   time.Time
}

// ViewOptions are passed to Display and Edit.
type ViewOptions struct {
	ViewMode string
	ViewModeSettings
}

// Element is a named template plus the data it is rendered with.
type Element struct {
	Template string
	Data     map[string]any
}
