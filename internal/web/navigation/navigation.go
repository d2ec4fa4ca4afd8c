// Package navigation holds the menu and breadcrumb state of administration pages.
package navigation

import "strings"

// Sections of the administration menu.
const (
	SectionContent   = "content"
	SectionStructure = "structure"
	SectionSettings  = "settings"
)

// Section is one entry of the administration menu.
type Section struct {
	Name   string
	Title  string
	URL    string
	Active bool
}

var sections = []Section{
	{Name: SectionContent, Title: "Content", URL: "/content"},
	{Name: SectionStructure, Title: "Structure", URL: "/structure"},
	{Name: SectionSettings, Title: "Settings", URL: "/settings/fields"},
}

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context is passed to the layouts as "Navigation".
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
	AdminPrefix   string
}

// NewContext creates a navigation context without breadcrumbs.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// NewAdminContext creates the context of an administration page. The first
// breadcrumb links to the administration home.
func NewAdminContext(adminPrefix, pageTitle, activeSection, activePage string) *Context {
	c := NewContext(pageTitle, activeSection, activePage)
	c.AdminPrefix = strings.TrimSuffix(adminPrefix, "/")

	return c.AddBreadcrumb("Administration", c.Link(""), false)
}

// AddBreadcrumb appends a breadcrumb. An active item ends the trail, so
// earlier items lose their active flag.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	if active {
		for i := range c.Breadcrumbs {
			c.Breadcrumbs[i].Active = false
		}
	}

	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// Link prefixes path with the administration prefix.
func (c *Context) Link(path string) string {
	if path == "" {
		if c.AdminPrefix == "" {
			return "/"
		}

		return c.AdminPrefix
	}

	return c.AdminPrefix + "/" + strings.TrimPrefix(path, "/")
}

// Sections returns the menu with absolute URLs and the active section marked.
func (c *Context) Sections() []Section {
	out := make([]Section, len(sections))

	for i, s := range sections {
		s.URL = c.Link(s.URL)
		s.Active = s.Name == c.ActiveSection
		out[i] = s
	}

	return out
}

// IsActive reports whether section and page are the current ones.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive reports whether section is the current one.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
