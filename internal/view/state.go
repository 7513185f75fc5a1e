// Package view models the superhero list/form screen as an explicit state
// and a pure reducer. Side effects are returned as values and executed by
// the caller, which feeds their results back in as events.
package view

import (
	"github.com/okian/heroes/internal/domain/hero"
)

// State is everything the screen shows.
type State struct {
	// Heroes holds only records confirmed by the API, in arrival order.
	Heroes []hero.Hero `json:"heroes"`
	// Draft is the record under composition; never part of Heroes.
	Draft hero.Draft `json:"draft"`
	// Adding is true while the composer row is open.
	Adding bool `json:"adding"`
	// Error is the local validation message.
	Error string `json:"error,omitempty"`
	// ServerError is the message reported for a failed create.
	ServerError string `json:"serverError,omitempty"`
	// LoadError is the message reported for a failed initial load.
	LoadError string `json:"loadError,omitempty"`
	// Loading is true until the initial list call settles.
	Loading bool `json:"loading"`
	// Submitting is true while a create call is in flight.
	Submitting bool `json:"submitting"`
}

// Clone returns a copy that shares no slice with s.
func (s State) Clone() State {
	c := s
	if s.Heroes != nil {
		c.Heroes = make([]hero.Hero, len(s.Heroes))
		copy(c.Heroes, s.Heroes)
	}
	return c
}

// EffectKind names a side effect requested by the reducer.
type EffectKind int

const (
	// EffectNone requests nothing.
	EffectNone EffectKind = iota
	// EffectLoad requests the list of heroes.
	EffectLoad
	// EffectCreate requests creation of Effect.Draft.
	EffectCreate
)

// Effect is a side effect to run after a transition.
type Effect struct {
	Kind  EffectKind
	Draft hero.Draft
}
