package render

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
)

// Funcs returns the template functions registered on the views engine.
// Dates are printed in loc.
func Funcs(loc *time.Location) map[string]any {
	if loc == nil {
		loc = time.UTC
	}

	return map[string]any{
		"formatUnix": func(format string, ts int64) string {
			return formatUnix(format, ts, loc)
		},
		"formatTimestamp": func(format string, value any) string {
			ts, ok := timestamp(value)
			if !ok {
				return ""
			}

			return formatUnix(format, ts, loc)
		},
	}
}

func formatUnix(format string, ts int64, loc *time.Location) string {
	out, err := datetoolbox.Format(format, time.Unix(ts, 0).In(loc))
	if err != nil {
		log.Debug().Err(err).Str("format", format).Msg("failed to format timestamp")
		return ""
	}

	return out
}

// timestamp accepts the shapes timestamps take in element data.
func timestamp(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case *int64:
		if v == nil {
			return 0, false
		}

		return *v, true
	case int:
		return int64(v), true
	case string:
		ts, err := strconv.ParseInt(v, 10, 64)
		return ts, err == nil
	case *string:
		if v == nil {
			return 0, false
		}

		ts, err := strconv.ParseInt(*v, 10, 64)
		return ts, err == nil
	default:
		return 0, false
	}
}
