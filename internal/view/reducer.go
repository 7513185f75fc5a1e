package view

import (
	"github.com/okian/heroes/internal/domain/hero"
)

// Reducer maps (state, event) to the next state and an optional effect.
type Reducer struct {
	// GuardSubmit drops Submit while a create call is in flight.
	GuardSubmit bool
}

// Reduce is the pure transition function. It never mutates s.
func (r Reducer) Reduce(s State, ev Event) (State, Effect) {
	next := s.Clone()

	switch e := ev.(type) {
	case Mounted:
		next.Loading = true
		next.LoadError = ""
		return next, Effect{Kind: EffectLoad}

	case Loaded:
		next.Loading = false
		next.Heroes = make([]hero.Hero, len(e.Heroes))
		copy(next.Heroes, e.Heroes)

	case LoadFailed:
		next.Loading = false
		next.LoadError = e.Message

	case OpenComposer:
		next.Adding = true

	case CancelComposer:
		next.Adding = false

	case EditField:
		switch e.Field {
		case FieldName:
			next.Draft.Name = e.Value
		case FieldSuperpower:
			next.Draft.Superpower = e.Value
		case FieldHumilityScore:
			next.Draft.HumilityScore = hero.ParseScore(e.Value)
		}

	case Submit:
		if r.GuardSubmit && s.Submitting {
			return s, Effect{}
		}
		if verr := hero.Validate(s.Draft); verr != nil {
			next.Error = verr.Message
			return next, Effect{}
		}
		next.Error = ""
		next.ServerError = ""
		next.Submitting = true
		return next, Effect{Kind: EffectCreate, Draft: s.Draft}

	case Created:
		next.Heroes = append(next.Heroes, e.Hero)
		next.Draft = hero.EmptyDraft()
		next.Adding = false
		next.Submitting = false

	case CreateFailed:
		next.ServerError = e.Message
		next.Submitting = false
	}

	return next, Effect{}
}
