package field

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
)

// View modes every field instance can be configured for.
const (
	ViewModeDefault      = "default"
	ViewModeTeaser       = "teaser"
	ViewModeSearchResult = "search-result"
	ViewModeRSS          = "rss"
	ViewModeFull         = "full"
)

// Label visibility options.
const (
	LabelAbove  = "above"
	LabelInline = "inline"
	LabelHidden = "hidden"
)

// ViewModes lists the view modes in display order.
var ViewModes = []string{ViewModeDefault, ViewModeTeaser, ViewModeSearchResult, ViewModeRSS, ViewModeFull}

// IsViewMode reports whether name is a known view mode.
func IsViewMode(name string) bool {
	for _, vm := range ViewModes {
		if vm == name {
			return true
		}
	}

	return false
}

// InstanceSettings are the per instance settings shared by the date based field types.
type InstanceSettings struct {
	Format         string `form:"format" json:"format" validate:"omitempty,dateformat"`
	Timepicker     bool   `form:"timepicker" json:"timepicker"`
	TimeFormat     string `form:"time_format" json:"time_format" validate:"omitempty,timeformat"`
	TimeSeconds    bool   `form:"time_seconds" json:"time_seconds"`
	ButtonBar      bool   `form:"button_bar" json:"button_bar"`
	MonthYearMenu  bool   `form:"month_year_menu" json:"month_year_menu"`
	ShowWeeks      bool   `form:"show_weeks" json:"show_weeks"`
	MultipleMonths int    `form:"multiple_months" json:"multiple_months" validate:"gte=0,lte=12"`
	Locale         string `form:"locale" json:"locale" validate:"omitempty,max=10"`
}

// WithDefaults fills empty formats with the given site wide defaults.
func (s InstanceSettings) WithDefaults(dateFormat, timeFormat string) InstanceSettings {
	if s.Format == "" {
		s.Format = dateFormat
	}

	if s.TimeFormat == "" {
		s.TimeFormat = timeFormat
	}

	return s
}

// Pattern is the full format posted with a value: the date format, followed by
// the time format when the time picker is enabled.
func (s InstanceSettings) Pattern() string {
	if s.Timepicker && s.TimeFormat != "" {
		return s.Format + " " + s.TimeFormat
	}

	return s.Format
}

// ViewModeSettings control how a field is rendered in one view mode.
type ViewModeSettings struct {
	LabelVisibility string `form:"label_visibility" json:"label_visibility" validate:"oneof=above inline hidden"`
	Hooktags        bool   `form:"hooktags" json:"hooktags"`
	Hidden          bool   `form:"hidden" json:"hidden"`
}

// DefaultViewModeSettings is used for every view mode until it is configured.
func DefaultViewModeSettings() ViewModeSettings {
	return ViewModeSettings{
		LabelVisibility: LabelAbove,
		Hooktags:        false,
		Hidden:          false,
	}
}

var (
	validate = newValidator() //nolint:gochecknoglobals

	messages = map[string]string{ //nolint:gochecknoglobals
		"dateformat": "Invalid date format.",
		"timeformat": "Invalid time format.",
		"oneof":      "Invalid option.",
		"required":   "This value is required.",
	}
)

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names so messages line up with form inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		return datetoolbox.ValidateDateFormat(fl.Field().String())
	})

	_ = v.RegisterValidation("timeformat", func(fl validator.FieldLevel) bool {
		parent := fl.Parent()
		if parent.Kind() == reflect.Ptr {
			parent = parent.Elem()
		}

		if parent.Kind() == reflect.Struct {
			if tp := parent.FieldByName("Timepicker"); tp.IsValid() && tp.Kind() == reflect.Bool && !tp.Bool() {
				return true
			}
		}

		return datetoolbox.ValidateTimeFormat(fl.Field().String())
	})

	return v
}

// ValidateStruct validates s with the field validator. Besides the built-in
// tags it knows "dateformat" and "timeformat".
func ValidateStruct(s any) ValidationErrors {
	return toValidationErrors(validate.Struct(s))
}

// ValidateInstanceSettings checks the date and time formats. The time format is
// only checked when the time picker is enabled.
func ValidateInstanceSettings(settings InstanceSettings) ValidationErrors {
	return ValidateStruct(settings)
}

// ValidateViewModeSettings checks view mode settings.
func ValidateViewModeSettings(settings ViewModeSettings) ValidationErrors {
	return ValidateStruct(settings)
}

func toValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return ValidationErrors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(vErrs))
	for _, fe := range vErrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}

		out = append(out, Violation{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}

	return out
}
