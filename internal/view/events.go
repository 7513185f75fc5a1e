package view

import (
	"github.com/okian/heroes/internal/domain/hero"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Field identifies a draft input.
type Field string

// Draft inputs.
const (
	FieldName          Field = "name"
	FieldSuperpower    Field = "superpower"
	FieldHumilityScore Field = "humilityScore"
)

type (
	// Mounted is the first event of every view.
	Mounted struct{}
	// Loaded carries the result of a successful list call.
	Loaded struct{ Heroes []hero.Hero }
	// LoadFailed carries the user message of a failed list call.
	LoadFailed struct{ Message string }
	// OpenComposer shows the add row.
	OpenComposer struct{}
	// CancelComposer hides the add row and keeps the draft.
	CancelComposer struct{}
	// EditField sets one draft input to its raw text.
	EditField struct {
		Field Field
		Value string
	}
	// Submit asks to validate and create the draft.
	Submit struct{}
	// Created carries the record echoed by a successful create call.
	Created struct{ Hero hero.Hero }
	// CreateFailed carries the user message of a failed create call.
	CreateFailed struct{ Message string }
)

func (Mounted) isEvent()        {}
func (Loaded) isEvent()         {}
func (LoadFailed) isEvent()     {}
func (OpenComposer) isEvent()   {}
func (CancelComposer) isEvent() {}
func (EditField) isEvent()      {}
func (Submit) isEvent()         {}
func (Created) isEvent()        {}
func (CreateFailed) isEvent()   {}
