// Package render turns field elements into HTML fragments for the page
// templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldcms/fieldcms/internal/field"
)

// Element renders el with the views engine of the app.
func Element(views fiber.Views, el field.Element) (template.HTML, error) {
	var buf bytes.Buffer

	if err := views.Render(&buf, el.Template, el.Data); err != nil {
		return "", fmt.Errorf("render %s: %w", el.Template, err)
	}

	// the engine escapes the element data
	return template.HTML(buf.String()), nil //nolint:gosec
}

// Elements renders els in order.
func Elements(views fiber.Views, els []field.Element) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(els))

	for _, el := range els {
		html, err := Element(views, el)
		if err != nil {
			return nil, err
		}

		out = append(out, html)
	}

	return out, nil
}
