package validation

import "strings"

// FieldError is a single validation failure: the offending field and a
// human-readable message.
type FieldError struct {
	Field   string
	Message string
}

// Outcome is the aggregated result of validating a product request.
// A valid outcome carries no failures; an invalid one carries the full
// ordered failure list, never both.
type Outcome struct {
	Failures []FieldError
}

// Valid reports whether the request passed every applicable rule.
func (o Outcome) Valid() bool {
	return len(o.Failures) == 0
}

// String joins all failure messages with "; ", matching the order in
// which the rules are declared.
func (o Outcome) String() string {
	msgs := make([]string, len(o.Failures))
	for i, f := range o.Failures {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}
