package content

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentsvc "github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/models"
	"github.com/fieldcms/fieldcms/internal/web/handler/handlertest"
	"github.com/fieldcms/fieldcms/internal/web/navigation"
)

func setup(t *testing.T) (*handlertest.Fixture, *Service) {
	t.Helper()

	f := handlertest.Setup(t)

	var s Service
	s.Init(f.App, f.Config, f.DB, f.Contents)

	return f, &s
}

func articleForm(title, eventDate, from, to string) url.Values {
	return url.Values{
		"title":                      {title},
		"fields.event_date.date":     {eventDate},
		"fields.event_date.format":   {"Y-m-d"},
		"fields.publish.from.string": {from},
		"fields.publish.from.format": {"Y-m-d"},
		"fields.publish.to.string":   {to},
		"fields.publish.to.format":   {"Y-m-d"},
	}
}

func TestList_ShowsUnpublished(t *testing.T) {
	f, _ := setup(t)

	f.SaveArticle(t, "Live", "2024-01-15", handlertest.Window("2024-01-01", "2024-06-01"))
	f.SaveArticle(t, "Expired", "2024-01-15", handlertest.Window("2023-01-01", "2023-06-01"))

	resp, body := f.Get(t, "/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "["+TemplateList+"]", body)

	binding := f.Views.Binding(t, TemplateList)
	assert.Len(t, binding["Contents"], 2)
	assert.Len(t, binding["Types"], 1)

	resp, _ = f.Get(t, "/admin/content?type=page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestList_PageIsClamped(t *testing.T) {
	f, _ := setup(t)

	for i := range DefaultPageSize + 1 {
		f.SaveArticle(t, "Article "+strconv.Itoa(i), "2024-01-15", handlertest.Window("2024-01-01", "2024-06-01"))
	}

	testCases := []struct {
		query string
		page  int
		count int
	}{
		{query: "", page: 1, count: DefaultPageSize},
		{query: "?page=2", page: 2, count: 1},
		{query: "?page=0", page: 1, count: DefaultPageSize},
		{query: "?page=-3", page: 1, count: DefaultPageSize},
		{query: "?page=3", page: 2, count: 1},
		{query: "?page=400000000000000000", page: 2, count: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			resp, _ := f.Get(t, "/admin"+tc.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			binding := f.Views.Binding(t, TemplateList)
			assert.Equal(t, tc.page, binding["Page"])
			assert.Equal(t, 2, binding["TotalPages"])
			assert.Len(t, binding["Contents"], tc.count)
		})
	}
}

func TestList_EmptyPage(t *testing.T) {
	f, _ := setup(t)

	resp, _ := f.Get(t, "/admin?page=400000000000000000")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	binding := f.Views.Binding(t, TemplateList)
	assert.Equal(t, 1, binding["Page"])
	assert.Empty(t, binding["Contents"])
}

func TestNew_RendersFieldElements(t *testing.T) {
	f, _ := setup(t)

	resp, _ := f.Get(t, "/admin/content/new/article")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	binding := f.Views.Binding(t, TemplateForm)
	assert.Equal(t, []template.HTML{"[fields/date/edit]", "[fields/publish_date/edit]"}, binding["Fields"])
	assert.Equal(t, "/admin/content/new/article", binding["Action"])

	resp, _ = f.Get(t, "/admin/content/new/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	f, _ := setup(t)

	resp, _ := f.PostForm(t, "/admin/content/new/article",
		articleForm("Summer Party", "2024-07-01", "2024-01-01", "2024-06-01"))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var saved models.Content
	require.NoError(t, f.DB.Preload("Values").First(&saved).Error)
	assert.Equal(t, "summer-party", saved.Slug)
	assert.Equal(t, "/admin/content/"+strconv.FormatUint(saved.ID, 10)+"/edit?saved=1", resp.Header.Get("Location"))

	event := saved.Value(f.Event.ID)
	require.NotNil(t, event)
	assert.Equal(t, "1719792000", *event.Value)
}

func TestCreate_RerendersWithErrors(t *testing.T) {
	f, _ := setup(t)

	resp, _ := f.PostForm(t, "/admin/content/new/article",
		articleForm("Summer Party", "", "2024-06-01", "2024-01-01"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	binding := f.Views.Binding(t, TemplateForm)
	errs, ok := binding["Errors"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"You must select a date/time.", "Invalid date/time given."}, errs["event_date"])
	assert.Equal(t, []string{`Invalid date/time range, "Start" date must be before "Finish" date.`}, errs["publish"])

	var count int64
	require.NoError(t, f.DB.Model(&models.Content{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEditAndUpdate(t *testing.T) {
	f, s := setup(t)

	c := f.SaveArticle(t, "Party", "2024-01-15", handlertest.Window("2023-01-01", "2023-06-01"))
	editPath := s.Path(c) + "/edit"

	// expired content is still editable
	resp, _ := f.Get(t, editPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	nav, ok := f.Views.Binding(t, TemplateForm)["Navigation"].(*navigation.Context)
	require.True(t, ok)
	assert.Equal(t, "Edit Party", nav.PageTitle)

	resp, _ = f.PostForm(t, editPath, articleForm("Party moved", "2024-02-01", "2024-01-01", "2024-06-01"))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	got, err := f.Contents.Get(c.ID, contentsvc.FindOptions{Admin: true})
	require.NoError(t, err)
	assert.Equal(t, "Party moved", got.Title)
	assert.Equal(t, "1706745600", *got.Value(f.Event.ID).Value)

	resp, _ = f.Get(t, s.path+"/999/edit")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.Get(t, s.path+"/abc/edit")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestView(t *testing.T) {
	f, s := setup(t)

	c := f.SaveArticle(t, "Future", "2024-01-15", handlertest.Window("2024-06-01", "2024-12-01"))

	resp, _ := f.Get(t, s.Path(c))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		[]template.HTML{"[fields/date/display]", "[fields/publish_date/display]"},
		f.Views.Binding(t, TemplateView)["Fields"])
}

func TestDelete(t *testing.T) {
	f, s := setup(t)

	c := f.SaveArticle(t, "Party", "2024-01-15", handlertest.Window("2024-01-01", "2024-06-01"))

	resp, _ := f.PostForm(t, s.Path(c)+"/delete", url.Values{})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, s.path, resp.Header.Get("Location"))

	resp, _ = f.PostForm(t, s.Path(c)+"/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
