package public

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcms/fieldcms/internal/web/handler/handlertest"
)

func setup(t *testing.T) *handlertest.Fixture {
	t.Helper()

	f := handlertest.Setup(t)

	var s Service
	s.Init(f.App, f.Config, f.DB, f.Contents)

	return f
}

func TestIndex_HidesUnpublished(t *testing.T) {
	f := setup(t)

	f.SaveArticle(t, "Live", "2024-01-15", handlertest.Window("2024-01-01", "2024-06-01"))
	f.SaveArticle(t, "Expired", "2024-01-15", handlertest.Window("2023-01-01", "2023-06-01"))
	f.SaveArticle(t, "Future", "2024-01-15", handlertest.Window("2024-06-01", "2024-12-01"))

	resp, body := f.Get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "["+TemplateIndex+"]", body)

	teasers, ok := f.Views.Binding(t, TemplateIndex)["Teasers"].([]Teaser)
	require.True(t, ok)
	require.Len(t, teasers, 1)
	assert.Equal(t, "live", teasers[0].Content.Slug)
	assert.Len(t, teasers[0].Fields, 2)

	resp, _ = f.Get(t, "/?type=page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContent(t *testing.T) {
	f := setup(t)

	f.SaveArticle(t, "Live", "2024-01-15", handlertest.Window("2024-01-01", "2024-06-01"))
	f.SaveArticle(t, "Expired", "2024-01-15", handlertest.Window("2023-01-01", "2023-06-01"))

	resp, _ := f.Get(t, ContentPath+"/live")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, f.Views.Binding(t, TemplateContent)["Fields"])

	testCases := []string{"expired", "missing"}
	for _, slug := range testCases {
		t.Run(slug, func(t *testing.T) {
			resp, body := f.Get(t, ContentPath+"/"+slug)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "["+TemplateNotFound+"]", body)
		})
	}
}
