package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/auth"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/controller/contenttype"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/field/datefield"
	"github.com/fieldcms/fieldcms/internal/field/publishdate"
)

const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "changeme"
)

// seed creates the initial administrator and an "article" content type with
// an event date and a publishing window. Existing data is left alone.
func seed(db *gorm.DB, contents *content.Service) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if count == 0 {
		_, err := auth.NewAccounts(db).CreateUser(
			defaultAdminUser, "admin@localhost", defaultAdminPassword, "Site", "Administrator",
		)
		if err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		log.Warn().Str("username", defaultAdminUser).Msg("created default administrator, change its password")
	}

	types, err := contenttype.List(db)
	if err != nil {
		return err
	}

	if len(types) > 0 {
		return nil
	}

	article := &models.ContentType{
		Slug:        "article",
		Name:        "Article",
		Description: "Time bound news with an event date.",
		TitleLabel:  "Headline",
	}

	if err = contenttype.Create(db, article); err != nil {
		return err
	}

	fields := []*models.FieldInstance{
		{
			ContentTypeID: article.ID,
			Slug:          "event_date",
			Label:         "Event date",
			Handler:       datefield.Name,
		},
		{
			ContentTypeID: article.ID,
			Slug:          "publish",
			Label:         "Publishing window",
			Description:   "Visitors only see the article between both dates.",
			Handler:       publishdate.Name,
		},
	}

	for _, fi := range fields {
		if err = contents.Instances().Attach(fi); err != nil {
			return fmt.Errorf("attach %s: %w", fi.Slug, err)
		}
	}

	log.Info().Str("type", article.Slug).Msg("seeded content type")

	return nil
}
