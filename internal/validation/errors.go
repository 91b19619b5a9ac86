package validation

import (
	"errors"
	"sort"
)

// Errors maps a field name to every constraint message it violated.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) AddAll(field string, messages []string) {
	for _, m := range messages {
		e.Add(field, m)
	}
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e.AddAll(field, msgs)
	}
}

// Fields returns the violated field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error is a ValidationFailure: the write was rejected before touching the store.
type Error struct {
	Fields Errors
}

func NewError(fields Errors) *Error {
	return &Error{Fields: fields}
}

func (err *Error) Error() string {
	fields := err.Fields.Fields()
	if len(fields) == 0 {
		return "validation failed"
	}

	msg := err.Fields.First(fields[0])
	if extra := countMessages(err.Fields) - 1; extra > 0 {
		return msg + " (and " + pluralErrors(extra) + ")"
	}
	return msg
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func countMessages(e Errors) int {
	n := 0
	for _, msgs := range e {
		n += len(msgs)
	}
	return n
}

func pluralErrors(n int) string {
	if n == 1 {
		return "1 more error"
	}
	return itoa(n) + " more errors"
}
