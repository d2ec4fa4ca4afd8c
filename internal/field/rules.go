package field

import "strings"

const (
	// RuleNotEmpty is the name of the rule added by Rules.NotEmpty.
	RuleNotEmpty = "notEmpty"
)

// Rule checks the data posted for one field.
type Rule struct {
	Name    string
	Check   func(post Post) bool
	Message string
}

// Rules collects validation rules per field name.
type Rules struct {
	fields []string
	rules  map[string][]Rule
}

// NewRules returns an empty rule set.
func NewRules() *Rules {
	return &Rules{rules: make(map[string][]Rule)}
}

// NotEmpty requires at least one non-blank sub-field value.
func (r *Rules) NotEmpty(fieldName, message string) *Rules {
	return r.Add(fieldName, Rule{
		Name: RuleNotEmpty,
		Check: func(post Post) bool {
			return !post.Empty()
		},
		Message: message,
	})
}

// Add registers rule for fieldName. Rules run in registration order.
func (r *Rules) Add(fieldName string, rule Rule) *Rules {
	if _, ok := r.rules[fieldName]; !ok {
		r.fields = append(r.fields, fieldName)
	}

	r.rules[fieldName] = append(r.rules[fieldName], rule)

	return r
}

// Has reports whether fieldName has a rule called ruleName.
func (r *Rules) Has(fieldName, ruleName string) bool {
	for _, rule := range r.rules[fieldName] {
		if rule.Name == ruleName {
			return true
		}
	}

	return false
}

// Len returns the number of registered rules.
func (r *Rules) Len() int {
	var n int
	for _, rules := range r.rules {
		n += len(rules)
	}

	return n
}

// Check runs every rule against posts, keyed by field name. A missing post is
// checked as an empty one.
func (r *Rules) Check(posts map[string]Post) ValidationErrors {
	var errs ValidationErrors

	for _, name := range r.fields {
		post := posts[name]
		if post == nil {
			post = Post{}
		}

		for _, rule := range r.rules[name] {
			if !rule.Check(post) {
				errs = append(errs, Violation{Field: name, Rule: rule.Name, Message: rule.Message})
			}
		}
	}

	return errs
}

// Violation is a failed rule.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

// ValidationErrors lists failed rules. A nil value means the data is valid.
type ValidationErrors []Violation

// Error implements error.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Field+": "+violation.Message)
	}

	return strings.Join(msgs, "; ")
}

// For returns the messages reported for fieldName.
func (v ValidationErrors) For(fieldName string) []string {
	var msgs []string

	for _, violation := range v {
		if violation.Field == fieldName {
			msgs = append(msgs, violation.Message)
		}
	}

	return msgs
}

// Messages groups the messages by field name, for templates.
func (v ValidationErrors) Messages() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, violation := range v {
		out[violation.Field] = append(out[violation.Field], violation.Message)
	}

	return out
}
