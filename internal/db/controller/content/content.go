// Package content stores content entities and runs their field values through
// the field type handlers: validation and normalization on save, visibility
// filtering on find.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/contenttype"
	"github.com/fieldcms/fieldcms/internal/db/controller/fielddefaults"
	"github.com/fieldcms/fieldcms/internal/db/controller/fieldinstance"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/metrics"
)

// Form keys of the entity properties validated next to the fields.
const (
	KeyTitle = "title"
	KeySlug  = "slug"
)

// FindOptions describe the request a find is made for.
type FindOptions struct {
	// Admin is set for finds made in the administration.
	Admin bool
	// Nested is set for finds made while building another entity.
	Nested bool
}

// Item is a field instance of an entity with its handler and handler input.
type Item struct {
	Instance models.FieldInstance
	Handler  field.Handler
	Field    field.Field
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithFieldDefaults sets the configured date and time formats used until
// defaults are stored in the database.
func WithFieldDefaults(cfg config.Field) Option {
	return func(s *Service) {
		s.fieldCfg = cfg
	}
}

// Service saves and finds content.
type Service struct {
	db        *gorm.DB
	instances *fieldinstance.Service
	fieldCfg  config.Field
	now       func() time.Time
}

// New returns a content service.
func New(db *gorm.DB, registry *field.Registry, opts ...Option) *Service {
	s := &Service{
		db:        db,
		instances: fieldinstance.New(db, registry),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Instances returns the field instance service used by s.
func (s *Service) Instances() *fieldinstance.Service {
	return s.instances
}

// Save validates posts with the field handlers, lets every handler compute its
// stored value and persists the entity with its values in one transaction.
//
// Posts are keyed by field slug. Rule violations are returned as
// field.ValidationErrors, handler rejections as EntityErrors. Nothing is
// written in either case.
func (s *Service) Save(c *models.Content, posts map[string]field.Post) error {
	if s.db == nil {
		return ErrDBNil
	}

	c.Title = strings.TrimSpace(c.Title)
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}

	if c.ID != 0 {
		if err := s.db.Where("content_id = ?", c.ID).Find(&c.Values).Error; err != nil {
			return err
		}
	}

	items, err := s.Fields(c)
	if err != nil {
		return err
	}

	if err = s.validate(c, items, posts); err != nil {
		return err
	}

	results, err := s.beforeSave(items, posts)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}

		for i, it := range items {
			var fv models.FieldValue

			err := tx.Where("content_id = ? AND field_instance_id = ?", c.ID, it.Instance.ID).First(&fv).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				fv = models.FieldValue{ContentID: c.ID, FieldInstanceID: it.Instance.ID}
			case err != nil:
				return err
			}

			fv.Value = results[i].Value
			fv.Extra = datatypes.JSON(results[i].Extra)

			if err := tx.Save(&fv).Error; err != nil {
				return err
			}
		}

		return tx.Where("content_id = ?", c.ID).Find(&c.Values).Error
	})
	if err != nil {
		return err
	}

	metrics.ContentSaved.Inc()

	return nil
}

func (s *Service) validate(c *models.Content, items []Item, posts map[string]field.Post) error {
	var violations field.ValidationErrors

	if c.Title == "" {
		violations = append(violations, field.Violation{
			Field: KeyTitle, Rule: field.RuleNotEmpty, Message: "You must enter a title.",
		})
	}

	if c.Slug == "" {
		violations = append(violations, field.Violation{
			Field: KeySlug, Rule: field.RuleNotEmpty, Message: "You must enter a slug.",
		})
	} else {
		var count int64
		if err := s.db.Model(&models.Content{}).
			Where("slug = ? AND id <> ?", c.Slug, c.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			violations = append(violations, field.Violation{
				Field: KeySlug, Rule: "unique", Message: "This slug is already used.",
			})
		}
	}

	rules := field.NewRules()
	handlers := make(map[string]string, len(items))

	for _, it := range items {
		it.Handler.Validate(it.Field, rules)
		handlers[it.Field.Name()] = it.Handler.Name()
	}

	violations = append(violations, rules.Check(posts)...)
	if len(violations) == 0 {
		return nil
	}

	for _, v := range violations {
		if h, ok := handlers[v.Field]; ok {
			metrics.SaveRejected.WithLabelValues(h, metrics.ReasonValidation).Inc()
		}
	}

	log.Debug().
		Str("content", c.Slug).
		Int("violations", len(violations)).
		Msg("content rejected by validation")

	return violations
}

func (s *Service) beforeSave(items []Item, posts map[string]field.Post) ([]field.SaveResult, error) {
	results := make([]field.SaveResult, len(items))

	var entityErrs EntityErrors

	for i, it := range items {
		post := posts[it.Field.Name()]
		if post == nil {
			post = field.Post{}
		}

		res, err := it.Handler.BeforeSave(it.Field, post)
		if err != nil {
			var fieldErr *field.Error
			if !errors.As(err, &fieldErr) {
				return nil, fmt.Errorf("field %s: %w", it.Field.Name(), err)
			}

			metrics.SaveRejected.WithLabelValues(it.Handler.Name(), metrics.ReasonBeforeSave).Inc()
			entityErrs = append(entityErrs, fieldErr)

			continue
		}

		results[i] = res
	}

	if len(entityErrs) > 0 {
		log.Debug().Err(entityErrs).Msg("content rejected by field")

		return nil, entityErrs
	}

	return results, nil
}

// Fields returns the field instances of c's content type with their handlers
// and the values c holds. Instances of unregistered field types are skipped.
func (s *Service) Fields(c *models.Content) ([]Item, error) {
	instances, err := s.instances.List(c.ContentTypeID)
	if err != nil {
		return nil, err
	}

	return s.items(c, instances), nil
}

func (s *Service) items(c *models.Content, instances []models.FieldInstance) []Item {
	defaults := s.defaults()
	out := make([]Item, 0, len(instances))

	for _, fi := range instances {
		h, err := s.instances.Handler(&fi)
		if err != nil {
			log.Warn().Err(err).Str("field", fi.Slug).Msg("skipping field of unknown type")

			continue
		}

		instance := fi.Instance()
		instance.Settings = instance.Settings.WithDefaults(defaults.DateFormat, defaults.TimeFormat)

		f := field.Field{Instance: instance}
		if v := c.Value(fi.ID); v != nil {
			f.Value = v.Value
			if len(v.Extra) > 0 {
				f.Extra = json.RawMessage(v.Extra)
			}
		}

		out = append(out, Item{Instance: fi, Handler: h, Field: f})
	}

	return out
}

func (s *Service) defaults() fielddefaults.Defaults {
	d, err := fielddefaults.Resolve(s.db, s.fieldCfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load field defaults, using configured ones")
	}

	return d
}

// Display returns the display elements of c in a view mode. Fields hidden in
// the view mode are left out.
func (s *Service) Display(c *models.Content, viewMode string) ([]field.Element, error) {
	items, err := s.Fields(c)
	if err != nil {
		return nil, err
	}

	out := make([]field.Element, 0, len(items))

	for _, it := range items {
		vm, err := s.instances.ViewMode(&it.Instance, viewMode)
		if err != nil {
			return nil, err
		}

		if vm.Hidden {
			continue
		}

		out = append(out, it.Handler.Display(it.Field, field.ViewOptions{ViewMode: viewMode, ViewModeSettings: vm}))
	}

	return out, nil
}

// Edit returns the form elements of c. Posted values and error messages are
// handed to the templates when given, so a rejected form keeps its input.
func (s *Service) Edit(c *models.Content, posts map[string]field.Post, messages map[string][]string) ([]field.Element, error) {
	items, err := s.Fields(c)
	if err != nil {
		return nil, err
	}

	out := make([]field.Element, 0, len(items))

	for _, it := range items {
		el := it.Handler.Edit(it.Field, field.ViewOptions{
			ViewMode:         field.ViewModeDefault,
			ViewModeSettings: field.DefaultViewModeSettings(),
		})
		if el.Data == nil {
			el.Data = map[string]any{}
		}

		if post, ok := posts[it.Field.Name()]; ok {
			el.Data["Post"] = post
		}

		el.Data["Errors"] = messages[it.Field.Name()]

		out = append(out, el)
	}

	return out, nil
}

// Get retrieves content by ID.
func (s *Service) Get(id uint64, opts FindOptions) (*models.Content, error) {
	return s.first(opts, "id = ?", id)
}

// GetBySlug retrieves content by slug.
func (s *Service) GetBySlug(slug string, opts FindOptions) (*models.Content, error) {
	return s.first(opts, "slug = ?", slug)
}

func (s *Service) first(opts FindOptions, query string, arg any) (*models.Content, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var c models.Content

	if err := s.db.Preload("Values").Preload("ContentType").Where(query, arg).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}

		return nil, err
	}

	instances, err := s.instances.List(c.ContentTypeID)
	if err != nil {
		return nil, err
	}

	if !s.visible(&c, instances, opts) {
		return nil, ErrContentNotFound
	}

	return &c, nil
}

// List retrieves the content of a content type, newest first. An empty type
// slug lists every type. Entities hidden by their fields are left out.
func (s *Service) List(typeSlug string, opts FindOptions) ([]models.Content, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	q := s.db.Preload("Values").Preload("ContentType").Order("created_at DESC, id DESC")

	if typeSlug != "" {
		ct, err := contenttype.GetBySlug(s.db, typeSlug)
		if err != nil {
			return nil, err
		}

		q = q.Where("content_type_id = ?", ct.ID)
	}

	var all []models.Content
	if err := q.Find(&all).Error; err != nil {
		return nil, err
	}

	instances := make(map[uint64][]models.FieldInstance)
	out := make([]models.Content, 0, len(all))

	for i := range all {
		c := &all[i]

		fis, ok := instances[c.ContentTypeID]
		if !ok {
			var err error
			if fis, err = s.instances.List(c.ContentTypeID); err != nil {
				return nil, err
			}

			instances[c.ContentTypeID] = fis
		}

		if s.visible(c, fis, opts) {
			out = append(out, *c)
		}
	}

	return out, nil
}

// visible asks every field of c whether it may be part of the result.
func (s *Service) visible(c *models.Content, instances []models.FieldInstance, opts FindOptions) bool {
	q := field.FindQuery{Primary: !opts.Nested, Admin: opts.Admin, Now: s.now()}

	for _, it := range s.items(c, instances) {
		if !it.Handler.BeforeFind(it.Field, q) {
			metrics.ContentHidden.WithLabelValues(it.Handler.Name()).Inc()
			log.Debug().Str("content", c.Slug).Str("field", it.Field.Name()).Msg("content hidden by field")

			return false
		}
	}

	return true
}

// Delete removes content with its values.
func (s *Service) Delete(id uint64) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&models.FieldValue{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Content{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrContentNotFound
		}

		return nil
	})
}
