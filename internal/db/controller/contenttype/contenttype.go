// Package contenttype provides CRUD operations for content types.
package contenttype

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/db/models"
)

var (
	// ErrNotFound is returned when a content type does not exist.
	ErrNotFound = errors.New("content type not found")
	// ErrSlugEmpty is returned when a content type has no slug.
	ErrSlugEmpty = errors.New("content type slug cannot be empty")
	// ErrNameEmpty is returned when a content type has no name.
	ErrNameEmpty = errors.New("content type name cannot be empty")
	// ErrAlreadyExists is returned when the slug is taken.
	ErrAlreadyExists = errors.New("content type already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create stores a new content type.
func Create(db *gorm.DB, ct *models.ContentType) error {
	if db == nil {
		return ErrDBNil
	}

	if ct.Slug == "" {
		return ErrSlugEmpty
	}

	if ct.Name == "" {
		return ErrNameEmpty
	}

	var count int64
	if err := db.Model(&models.ContentType{}).Where("slug = ?", ct.Slug).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, ct.Slug)
	}

	if ct.TitleLabel == "" {
		ct.TitleLabel = "Title"
	}

	return db.Create(ct).Error
}

// Get retrieves a content type with its field instances by ID.
func Get(db *gorm.DB, id uint64) (*models.ContentType, error) {
	return first(db, "id = ?", id)
}

// GetBySlug retrieves a content type with its field instances by slug.
func GetBySlug(db *gorm.DB, slug string) (*models.ContentType, error) {
	if slug == "" {
		return nil, ErrSlugEmpty
	}

	return first(db, "slug = ?", slug)
}

func first(db *gorm.DB, query string, arg any) (*models.ContentType, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var ct models.ContentType

	result := db.Preload("Fields", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("ordering ASC, id ASC")
	}).Where(query, arg).First(&ct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &ct, nil
}

// List retrieves all content types ordered by name.
func List(db *gorm.DB) ([]models.ContentType, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var types []models.ContentType
	if err := db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}

	return types, nil
}
