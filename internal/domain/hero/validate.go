package hero

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a draft rejection shown to the user verbatim.
type ValidationError struct {
	Rule    string // metric label
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation failures, in the order the rules are evaluated.
var (
	ErrFieldsRequired  = &ValidationError{Rule: "fields_required", Message: "All fields are required."}
	ErrNameTooShort    = &ValidationError{Rule: "name_too_short", Message: "Name must be at least 3 characters."}
	ErrScoreOutOfRange = &ValidationError{Rule: "score_out_of_range", Message: "Humility score must be between 1 and 10."}
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate applies the draft rules in fixed order and returns the first
// failing one, or nil when the draft may be sent to the API:
//  1. any empty field (a score of 0 counts as empty)
//  2. name shorter than MinNameLength runes
//  3. score outside [MinScore, MaxScore]
func Validate(d Draft) *ValidationError {
	err := engine().Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Struct only returns InvalidValidationError for non-struct input.
		panic(err)
	}

	var nameShort, scoreRange bool
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			return ErrFieldsRequired
		case fe.StructField() == "Name":
			nameShort = true
		case fe.StructField() == "HumilityScore":
			scoreRange = true
		}
	}
	if nameShort {
		return ErrNameTooShort
	}
	if scoreRange {
		return ErrScoreOutOfRange
	}
	return ErrFieldsRequired
}
