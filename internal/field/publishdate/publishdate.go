// Package publishdate implements the "Publishing Date" field type: a from/to
// window outside of which the holding entity is hidden from visitors.
//
// Posted sub-fields are "from.string", "from.format", "to.string" and
// "to.format". The extra data keeps both boundaries as {string, timestamp}
// pairs; the value column keeps the space separated "<timestamp> <string>"
// tokens of the posted boundaries, from first.
//
// BeforeSave does not check that the window is ordered. Order is only
// enforced by the validRange rule added in Validate.
package publishdate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
	"github.com/fieldcms/fieldcms/internal/field"
)

const (
	// Name is the registry key of the publishing date handler.
	Name = "PublishDateField"

	// RuleValidRange is the name of the rule checking the posted window.
	RuleValidRange = "validRange"

	templateDisplay      = "fields/publish_date/display"
	templateEdit         = "fields/publish_date/edit"
	templateSettingsForm = "fields/publish_date/settings_form"
	templateViewModeForm = "fields/publish_date/view_mode_form"
)

var _ field.Handler = (*Handler)(nil)

// Boundary is one end of the publishing window.
type Boundary struct {
	String    *string `json:"string"`
	Timestamp *int64  `json:"timestamp"`
}

// set reports whether the boundary carries a usable timestamp.
func (b Boundary) set() bool {
	return b.Timestamp != nil && *b.Timestamp != 0
}

// Range is the extra data stored by the field.
type Range struct {
	From Boundary `json:"from"`
	To   Boundary `json:"to"`
}

// DecodeRange reads extra data. Missing, legacy or broken data decodes to the
// empty window.
func DecodeRange(extra json.RawMessage) Range {
	var r Range

	if len(extra) == 0 {
		return r
	}

	if err := json.Unmarshal(extra, &r); err != nil {
		return Range{}
	}

	return r
}

// Handler is the publishing date field type.
type Handler struct {
	field.Base
	loc *time.Location
}

// New returns a publishing date handler parsing input in loc. A nil loc means UTC.
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
		Type:         "text",
		Name:         "Publishing Date",
		Description:  "Allows to set a publishing date range for contents.",
		Hidden:       false,
		MaxInstances: 1,
		Searchable:   false,
	}
}

// Display implements field.Handler.
func (h *Handler) Display(f field.Field, opts field.ViewOptions) field.Element {
	return field.Element{
		Template: templateDisplay,
		Data: map[string]any{
			"Field":   f,
			"Options": opts,
			"Pattern": f.Settings.Pattern(),
			"Range":   DecodeRange(f.Extra),
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
			"Range":   DecodeRange(f.Extra),
		},
	}
}

// BeforeFind hides the entity from public primary finds outside its window.
func (h *Handler) BeforeFind(f field.Field, q field.FindQuery) bool {
	if !q.Primary || q.Admin {
		return true
	}

	r := DecodeRange(f.Extra)
	if !r.From.set() || !r.To.set() {
		return true
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	ts := now.Unix()

	return ts >= *r.From.Timestamp && ts <= *r.To.Timestamp
}

// BeforeSave parses the posted boundaries, from then to.
func (h *Handler) BeforeSave(f field.Field, post field.Post) (field.SaveResult, error) {
	var (
		r      Range
		tokens []string
	)

	boundaries := []struct {
		key    string
		label  string
		target *Boundary
	}{
		{"from", "Start", &r.From},
		{"to", "Finish", &r.To},
	}

	for _, b := range boundaries {
		str, format := post.Get(b.key+".string"), post.Get(b.key+".format")
		if str == "" || format == "" {
			continue
		}

		t, err := datetoolbox.CreateFromFormatIn(format, str, h.loc)
		if err != nil {
			return field.SaveResult{}, &field.Error{
				Field:   f.Name(),
				Message: fmt.Sprintf(`Invalid date/time range, "%s" date must match the pattern: %s`, b.label, format),
			}
		}

		ts := t.Unix()
		*b.target = Boundary{String: &str, Timestamp: &ts}
		tokens = append(tokens, strconv.FormatInt(ts, 10)+" "+str)
	}

	extra, err := json.Marshal(r)
	if err != nil {
		return field.SaveResult{}, err
	}

	value := strings.Join(tokens, " ")

	return field.SaveResult{Value: &value, Extra: extra}, nil
}

// Validate requires a value for required instances and always checks the
// window order.
func (h *Handler) Validate(f field.Field, rules *field.Rules) {
	if f.Required {
		rules.NotEmpty(f.Name(), "You must select a date/time range.")
	}

	rules.Add(f.Name(), field.Rule{
		Name:    RuleValidRange,
		Check:   h.validRange,
		Message: `Invalid date/time range, "Start" date must be before "Finish" date.`,
	})
}

func (h *Handler) validRange(post field.Post) bool {
	var stamps [2]int64

	for i, key := range []string{"from", "to"} {
		str, format := post.Get(key+".string"), post.Get(key+".format")
		if str == "" || format == "" {
			return false
		}

		t, err := datetoolbox.CreateFromFormatIn(format, str, h.loc)
		if err != nil {
			return false
		}

		stamps[i] = t.Unix()
	}

	return stamps[0] < stamps[1]
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
