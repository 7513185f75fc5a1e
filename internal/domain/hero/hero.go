// Package hero contains the superhero record, the draft under composition
// and the ordered validation rules applied before a draft is submitted.
package hero

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Score bounds. Zero means "not filled in" and is never a legal score.
const (
	MinScore      = 1
	MaxScore      = 10
	MinNameLength = 3
)

// Hero is a record confirmed by the superheroes API.
type Hero struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Superpower    string `json:"superpower"`
	HumilityScore int    `json:"humilityScore"`
}

// Draft is a hero under composition; it has no identifier yet.
type Draft struct {
	Name          string `json:"name" validate:"required,min=3"`
	Superpower    string `json:"superpower" validate:"required"`
	HumilityScore int    `json:"humilityScore" validate:"required,min=1,max=10"`
}

// EmptyDraft returns the draft shown by a fresh composer.
func EmptyDraft() Draft {
	return Draft{}
}

// IsEmpty reports whether no field of the draft has been filled in.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// ID is a server-assigned identifier. APIs in the wild emit it either as a
// JSON string or as a JSON number; both decode into the same textual form.
type ID string

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("hero id: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// ParseScore converts form input into a humility score. Empty or
// non-integer input yields 0, which validation treats as "unset".
// Integers too large for int are clamped so they still fail the range rule.
func ParseScore(s string) int {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return n
	}
	if err != nil {
		return 0
	}
	return n
}
