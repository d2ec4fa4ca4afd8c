// Package fielddefaults stores the site wide default date and time formats used
// by field instances that leave their own formats empty.
package fielddefaults

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/setting"
	"github.com/fieldcms/fieldcms/internal/field"
)

const (
	// SettingKey is the key used to store the field defaults in the database.
	SettingKey = "field_defaults"
)

// Defaults are the site wide date and time formats.
type Defaults struct {
	DateFormat string `form:"date_format" json:"date_format" validate:"required,dateformat"`
	TimeFormat string `form:"time_format" json:"time_format" validate:"required,timeformat"`
}

// FromConfig returns the defaults configured in main.toml.
func FromConfig(cfg config.Field) Defaults {
	return Defaults{
		DateFormat: cfg.DateFormat,
		TimeFormat: cfg.TimeFormat,
	}
}

// Load loads the field defaults from the database.
func (d *Defaults) Load(db *gorm.DB) error {
	return setting.GetJSON(db, SettingKey, d)
}

// Save saves the field defaults to the database.
func (d *Defaults) Save(db *gorm.DB) error {
	return setting.SetJSON(db, SettingKey, d)
}

// Validate checks both formats.
func (d *Defaults) Validate() field.ValidationErrors {
	return field.ValidateStruct(d)
}

// Reset removes the stored defaults so the configured ones apply again.
func Reset(db *gorm.DB) error {
	err := setting.DeleteByName(db, SettingKey)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil
	}

	return err
}

// Resolve returns the stored defaults, or the configured ones if none were saved.
func Resolve(db *gorm.DB, cfg config.Field) (Defaults, error) {
	var d Defaults

	err := d.Load(db)
	switch {
	case err == nil:
		return d, nil
	case errors.Is(err, setting.ErrSettingNotFound):
		return FromConfig(cfg), nil
	default:
		return FromConfig(cfg), err
	}
}
