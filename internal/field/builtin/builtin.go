// Package builtin wires the field types shipped with FieldCMS.
package builtin

import (
	"time"

	"github.com/fieldcms/fieldcms/internal/field"
	"github.com/fieldcms/fieldcms/internal/field/datefield"
	"github.com/fieldcms/fieldcms/internal/field/publishdate"
)

// Registry returns a registry holding every built-in field type. Date input is
// interpreted in loc.
func Registry(loc *time.Location) *field.Registry {
	r, err := field.NewRegistry(
		datefield.New(loc),
		publishdate.New(loc),
	)
	if err != nil {
		// names are constants, a clash is a programming error
		panic(err)
	}

	return r
}
