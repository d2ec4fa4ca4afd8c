package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Fields", SectionStructure, "fields")

	assert.Equal(t, "Fields", ctx.PageTitle)
	assert.True(t, ctx.IsSectionActive(SectionStructure))
	assert.True(t, ctx.IsActive(SectionStructure, "fields"))
	assert.False(t, ctx.IsActive(SectionStructure, "settings"))
	assert.False(t, ctx.IsActive(SectionContent, "fields"))
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestNewAdminContext(t *testing.T) {
	ctx := NewAdminContext("/admin/", "Fields", SectionStructure, "fields").
		AddBreadcrumb("Structure", "/admin/structure", false).
		AddBreadcrumb("Fields", "/admin/structure/types/article/fields", true)

	assert.Equal(t, "/admin", ctx.AdminPrefix)
	require.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, BreadcrumbItem{Title: "Administration", URL: "/admin"}, ctx.Breadcrumbs[0])
	assert.Equal(t, "Structure", ctx.Breadcrumbs[1].Title)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestAddBreadcrumb_SingleActive(t *testing.T) {
	ctx := NewContext("Edit", SectionContent, "form").
		AddBreadcrumb("Content", "/admin/content", true).
		AddBreadcrumb("Edit", "/admin/content/1/edit", true)

	require.Len(t, ctx.Breadcrumbs, 2)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestLink(t *testing.T) {
	testCases := []struct {
		prefix   string
		path     string
		expected string
	}{
		{prefix: "/admin", path: "", expected: "/admin"},
		{prefix: "/admin", path: "/content", expected: "/admin/content"},
		{prefix: "/admin", path: "content", expected: "/admin/content"},
		{prefix: "/manage/site", path: "/structure", expected: "/manage/site/structure"},
		{prefix: "", path: "", expected: "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.prefix+tc.path, func(t *testing.T) {
			ctx := &Context{AdminPrefix: tc.prefix}
			assert.Equal(t, tc.expected, ctx.Link(tc.path))
		})
	}
}

func TestSections(t *testing.T) {
	ctx := NewAdminContext("/cms", "Date and time formats", SectionSettings, "fields")

	got := ctx.Sections()
	require.Len(t, got, 3)

	assert.Equal(t, Section{Name: SectionContent, Title: "Content", URL: "/cms/content"}, got[0])
	assert.Equal(t, "/cms/structure", got[1].URL)
	assert.False(t, got[1].Active)
	assert.Equal(t, "/cms/settings/fields", got[2].URL)
	assert.True(t, got[2].Active)

	// the package level menu is not modified
	assert.Equal(t, "/content", sections[0].URL)
}
