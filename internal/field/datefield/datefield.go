// Package datefield implements the "Date" field type: one date/time value per
// content entity.
//
// The posted form carries two sub-fields, "date" (the user input) and
// "format" (the pattern the input was entered with). The stored value is the
// Unix timestamp as a decimal string; the extra data keeps the raw input as a
// JSON string so the editor can show it again unchanged.
package datefield

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
	"github.com/fieldcms/fieldcms/internal/field"
)

const (
	// Name is the registry key of the date field handler.
	Name = "DateField"

	// RuleValidDate is the name of the rule checking the posted date.
	RuleValidDate = "validDate"

	templateDisplay      = "fields/date/display"
	templateEdit         = "fields/date/edit"
	templateSettingsForm = "fields/date/settings_form"
	templateViewModeForm = "fields/date/view_mode_form"
)

var _ field.Handler = (*Handler)(nil)

// Handler is the date field type.
type Handler struct {
	field.Base
	loc *time.Location
}

// New returns a date field handler parsing input in loc. A nil loc means UTC.
func New(loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{loc: loc}
}

// Name implements field.Handler.
func (h *Handler) Name() string {
	return Name
}

// Info implements field.Handler.
func (h *Handler) Info() field.Info {
	return field.Info{
		Type:         "datetime",
		Name:         "Date",
		Description:  "Allows to select a date/time.",
		Hidden:       false,
		MaxInstances: 0,
		Searchable:   false,
	}
}

// Display implements field.Handler.
func (h *Handler) Display(f field.Field, opts field.ViewOptions) field.Element {
	return field.Element{
		Template: templateDisplay,
		Data: map[string]any{
			"Field":     f,
			"Options":   opts,
			"Pattern":   f.Settings.Pattern(),
			"Date":      CurrentDate(f),
			"Timestamp": Timestamp(f),
		},
	}
}

// Edit implements field.Handler.
func (h *Handler) Edit(f field.Field, opts field.ViewOptions) field.Element {
	return field.Element{
		Template: templateEdit,
		Data: map[string]any{
			"Field":   f,
			"Options": opts,
			"Pattern": f.Settings.Pattern(),
			"Date":    CurrentDate(f),
		},
	}
}

// BeforeSave parses the posted date. Without both a date and a format the
// value is cleared.
func (h *Handler) BeforeSave(f field.Field, post field.Post) (field.SaveResult, error) {
	date, format := post.Get("date"), post.Get("format")

	if date == "" || format == "" {
		return field.SaveResult{Value: nil, Extra: f.Extra}, nil
	}

	t, err := datetoolbox.CreateFromFormatIn(format, date, h.loc)
	if err != nil {
		return field.SaveResult{}, &field.Error{
			Field:   f.Name(),
			Message: fmt.Sprintf("Invalid date/time, it must match the pattern: %s", format),
		}
	}

	extra, err := json.Marshal(date)
	if err != nil {
		return field.SaveResult{}, err
	}

	value := strconv.FormatInt(t.Unix(), 10)

	return field.SaveResult{Value: &value, Extra: extra}, nil
}

// Validate adds rules for required instances only.
func (h *Handler) Validate(f field.Field, rules *field.Rules) {
	if !f.Required {
		return
	}

	rules.NotEmpty(f.Name(), "You must select a date/time.")
	rules.Add(f.Name(), field.Rule{
		Name: RuleValidDate,
		Check: func(post field.Post) bool {
			_, err := datetoolbox.CreateFromFormatIn(post.Get("format"), post.Get("date"), h.loc)
			return err == nil
		},
		Message: "Invalid date/time given.",
	})
}

// SettingsForm implements field.Handler.
func (h *Handler) SettingsForm(instance field.Instance) field.Element {
	return field.Element{
		Template: templateSettingsForm,
		Data: map[string]any{
			"Instance": instance,
			"Settings": instance.Settings,
		},
	}
}

// ViewModeForm implements field.Handler.
func (h *Handler) ViewModeForm(instance field.Instance, viewMode string) field.Element {
	return field.Element{
		Template: templateViewModeForm,
		Data: map[string]any{
			"Instance": instance,
			"ViewMode": viewMode,
		},
	}
}

// RawDate returns the date string as it was entered, or "".
func RawDate(f field.Field) string {
	if len(f.Extra) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(f.Extra, &s); err != nil {
		return ""
	}

	return s
}

// CurrentDate is the entered date string of a field that holds a value. A
// cleared field keeps its last input in the extra data, which is not shown.
func CurrentDate(f field.Field) string {
	if Timestamp(f) == nil {
		return ""
	}

	return RawDate(f)
}

// Timestamp returns the stored Unix timestamp or nil when no date is set.
func Timestamp(f field.Field) *int64 {
	if f.Value == nil || *f.Value == "" {
		return nil
	}

	ts, err := strconv.ParseInt(*f.Value, 10, 64)
	if err != nil {
		return nil
	}

	return &ts
}
