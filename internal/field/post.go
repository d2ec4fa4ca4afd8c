package field

import "strings"

// Post holds the raw form values submitted for one field, keyed by sub-field
// name ("date", "format", "from.string", ...).
type Post map[string]string

// Get returns the trimmed value of key or "".
func (p Post) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// Empty reports whether no sub-field carries a value.
func (p Post) Empty() bool {
	for k := range p {
		if p.Get(k) != "" {
			return false
		}
	}

	return true
}
