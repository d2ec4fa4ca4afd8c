package fields

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcms/fieldcms/internal/db/controller/fielddefaults"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*handlertest.Fixture, *Service) {
	t.Helper()

	f := handlertest.Setup(t)

	var s Service
	s.Init(f.App, f.Config, f.DB, f.Contents)

	return f, &s
}

func TestGet_ConfigDefaults(t *testing.T) {
	f, s := setup(t)

	resp, _ := f.Get(t, s.path)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		fielddefaults.Defaults{DateFormat: "Y-m-d", TimeFormat: "H:i"},
		f.Views.Binding(t, TemplateName)["Settings"])
}

func TestPost(t *testing.T) {
	f, s := setup(t)

	resp, _ := f.PostForm(t, s.path, url.Values{"date_format": {"H:i"}, "time_format": {"garbage"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs, ok := f.Views.Binding(t, TemplateName)["Errors"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid date format."}, errs["date_format"])
	assert.Equal(t, []string{"Invalid time format."}, errs["time_format"])

	resp, _ = f.PostForm(t, s.path, url.Values{"date_format": {"d/m/Y"}, "time_format": {"g:i a"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// instances without their own format pick up the new defaults
	items, err := f.Contents.Fields(&models.Content{ContentTypeID: f.Article.ID})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "d/m/Y", items[0].Field.Settings.Format)
	assert.Equal(t, "g:i a", items[0].Field.Settings.TimeFormat)

	resp, _ = f.PostForm(t, s.path+"/reset", url.Values{})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	items, err = f.Contents.Fields(&models.Content{ContentTypeID: f.Article.ID})
	require.NoError(t, err)
	assert.Equal(t, "Y-m-d", items[0].Field.Settings.Format)
}
