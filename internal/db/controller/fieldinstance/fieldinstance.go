// Package fieldinstance attaches field types to content types and manages the
// instance and view mode settings through the field type handlers.
package fieldinstance

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
)

var (
	// ErrNotFound is returned when a field instance does not exist.
	ErrNotFound = errors.New("field instance not found")
	// ErrSlugEmpty is returned when a field instance has no slug.
	ErrSlugEmpty = errors.New("field instance slug cannot be empty")
	// ErrSlugTaken is returned when the content type already has a field with the slug.
	ErrSlugTaken = errors.New("field instance slug already used by this content type")
	// ErrMaxInstances is returned when a content type holds the maximum number of
	// instances of a field type.
	ErrMaxInstances = errors.New("maximum number of instances reached")
	// ErrUnknownViewMode is returned for view modes not in field.ViewModes.
	ErrUnknownViewMode = errors.New("unknown view mode")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Service manages field instances.
type Service struct {
	db       *gorm.DB
	registry *field.Registry
}

// New returns a field instance service.
func New(db *gorm.DB, registry *field.Registry) *Service {
	return &Service{db: db, registry: registry}
}

// Handler returns the handler of an instance.
func (s *Service) Handler(fi *models.FieldInstance) (field.Handler, error) {
	return s.registry.Get(fi.Handler)
}

// Registry returns the field type registry.
func (s *Service) Registry() *field.Registry {
	return s.registry
}

// Attach adds fi to its content type. The handler must be registered, its
// instance limit must not be reached and the settings must validate. A
// field.ValidationErrors is returned for invalid settings.
func (s *Service) Attach(fi *models.FieldInstance) error {
	if s.db == nil {
		return ErrDBNil
	}

	if fi.Slug == "" {
		return ErrSlugEmpty
	}

	h, err := s.registry.Get(fi.Handler)
	if err != nil {
		return err
	}

	if errs := h.ValidateSettings(fi.InstanceSettings()); len(errs) > 0 {
		return errs
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.FieldInstance
		if err := tx.Where("content_type_id = ?", fi.ContentTypeID).Find(&existing).Error; err != nil {
			return err
		}

		sameHandler := 0
		for _, e := range existing {
			if e.Slug == fi.Slug {
				return fmt.Errorf("%w: %s", ErrSlugTaken, fi.Slug)
			}

			if e.Handler == fi.Handler {
				sameHandler++
			}
		}

		if maxInstances := h.Info().MaxInstances; maxInstances > 0 && sameHandler >= maxInstances {
			return fmt.Errorf("%w: %s allows %d per content type", ErrMaxInstances, h.Info().Name, maxInstances)
		}

		if fi.Ordering == 0 {
			fi.Ordering = len(existing) + 1
		}

		return tx.Create(fi).Error
	})
}

// Get retrieves a field instance by ID.
func (s *Service) Get(id uint64) (*models.FieldInstance, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var fi models.FieldInstance

	if err := s.db.First(&fi, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &fi, nil
}

// List retrieves the instances of a content type in form order.
func (s *Service) List(contentTypeID uint64) ([]models.FieldInstance, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var out []models.FieldInstance

	err := s.db.Where("content_type_id = ?", contentTypeID).
		Order("ordering ASC, id ASC").
		Find(&out).Error

	return out, err
}

// UpdateSettings validates settings through the instance handler and stores
// them. A field.ValidationErrors is returned for invalid settings.
func (s *Service) UpdateSettings(id uint64, settings field.InstanceSettings) (*models.FieldInstance, error) {
	fi, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	h, err := s.Handler(fi)
	if err != nil {
		return nil, err
	}

	if errs := h.ValidateSettings(settings); len(errs) > 0 {
		return fi, errs
	}

	if err = fi.SetInstanceSettings(settings); err != nil {
		return nil, err
	}

	return fi, s.db.Model(fi).Update("settings", fi.Settings).Error
}

// ViewMode returns the stored settings of a view mode or the handler defaults.
func (s *Service) ViewMode(fi *models.FieldInstance, viewMode string) (field.ViewModeSettings, error) {
	if stored, ok := fi.ViewModeSettings(viewMode); ok {
		return stored, nil
	}

	h, err := s.Handler(fi)
	if err != nil {
		return field.ViewModeSettings{}, err
	}

	return h.ViewModeDefaults(fi.Instance(), viewMode), nil
}

// UpdateViewMode validates and stores the settings of one view mode.
func (s *Service) UpdateViewMode(id uint64, viewMode string, settings field.ViewModeSettings) (*models.FieldInstance, error) {
	if !field.IsViewMode(viewMode) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownViewMode, viewMode)
	}

	fi, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if errs := field.ValidateViewModeSettings(settings); len(errs) > 0 {
		return fi, errs
	}

	if err = fi.SetViewModeSettings(viewMode, settings); err != nil {
		return nil, err
	}

	return fi, s.db.Model(fi).Update("view_modes", fi.ViewModes).Error
}

// Delete removes a field instance together with its stored values.
func (s *Service) Delete(id uint64) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field_instance_id = ?", id).Delete(&models.FieldValue{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.FieldInstance{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
