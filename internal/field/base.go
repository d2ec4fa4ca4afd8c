package field

// Base implements the optional parts of Handler. Field types embed it and
// override what they need.
type Base struct{}

// BeforeFind never hides an entity.
func (Base) BeforeFind(Field, FindQuery) bool {
	return true
}

// Validate adds no rules.
func (Base) Validate(Field, *Rules) {}

// ValidateSettings checks the shared date and time format settings.
func (Base) ValidateSettings(settings InstanceSettings) ValidationErrors {
	return ValidateInstanceSettings(settings)
}

// ViewModeDefaults returns the same defaults for every view mode.
func (Base) ViewModeDefaults(Instance, string) ViewModeSettings {
	return DefaultViewModeSettings()
}
