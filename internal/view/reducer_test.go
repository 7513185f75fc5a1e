package view

import (
	"testing"

	"github.com/okian/heroes/internal/domain/hero"
	. "github.com/smartystreets/goconvey/convey"
)

func reduceAll(r Reducer, s State, events ...Event) (State, Effect) {
	var eff Effect
	for _, ev := range events {
		s, eff = r.Reduce(s, ev)
	}
	return s, eff
}

func fill(name, power, score string) []Event {
	return []Event{
		EditField{Field: FieldName, Value: name},
		EditField{Field: FieldSuperpower, Value: power},
		EditField{Field: FieldHumilityScore, Value: score},
	}
}

func TestReduce_Load(t *testing.T) {
	Convey("Given a fresh view", t, func() {
		r := Reducer{}

		Convey("When it is mounted", func() {
			s, eff := r.Reduce(State{}, Mounted{})

			Convey("Then a load is requested", func() {
				So(eff.Kind, ShouldEqual, EffectLoad)
				So(s.Loading, ShouldBeTrue)
			})

			Convey("And two loaded heroes replace the list in arrival order", func() {
				loaded := []hero.Hero{
					{ID: "7", Name: "Batman", Superpower: "money", HumilityScore: 2},
					{ID: "3", Name: "Supergirl", Superpower: "flight", HumilityScore: 5},
				}
				s, eff = r.Reduce(s, Loaded{Heroes: loaded})
				So(eff.Kind, ShouldEqual, EffectNone)
				So(s.Loading, ShouldBeFalse)
				So(s.Heroes, ShouldResemble, loaded)

				loaded[0].Name = "mutated"
				So(s.Heroes[0].Name, ShouldEqual, "Batman")
			})

			Convey("And a failed load leaves an empty list with an explanation", func() {
				s, _ = r.Reduce(s, LoadFailed{Message: "Could not connect to the server."})
				So(s.Heroes, ShouldBeEmpty)
				So(s.LoadError, ShouldEqual, "Could not connect to the server.")
				So(s.Loading, ShouldBeFalse)
			})
		})
	})
}

func TestReduce_Composer(t *testing.T) {
	Convey("Given a loaded view", t, func() {
		r := Reducer{}
		s := State{Heroes: []hero.Hero{{ID: "1", Name: "Batman", Superpower: "money", HumilityScore: 2}}}

		Convey("Opening the composer sets Adding", func() {
			s, _ = r.Reduce(s, OpenComposer{})
			So(s.Adding, ShouldBeTrue)
		})

		Convey("Cancel closes the composer but keeps the draft", func() {
			s, _ = reduceAll(r, s, append([]Event{OpenComposer{}}, fill("Robin", "acrobatics", "4")...)...)
			s, _ = r.Reduce(s, CancelComposer{})
			So(s.Adding, ShouldBeFalse)
			So(s.Draft, ShouldResemble, hero.Draft{Name: "Robin", Superpower: "acrobatics", HumilityScore: 4})

			s, _ = r.Reduce(s, OpenComposer{})
			So(s.Draft.Name, ShouldEqual, "Robin")
		})

		Convey("Editing fields touches only the draft", func() {
			s, eff := reduceAll(r, s, fill("Ro", "", "abc")...)
			So(eff.Kind, ShouldEqual, EffectNone)
			So(s.Draft, ShouldResemble, hero.Draft{Name: "Ro", Superpower: "", HumilityScore: 0})
			So(s.Error, ShouldBeEmpty)
			So(s.Heroes, ShouldHaveLength, 1)
		})

		Convey("Reduce does not mutate its input", func() {
			before := s.Clone()
			_, _ = reduceAll(r, s, Created{Hero: hero.Hero{ID: "2", Name: "Robin"}})
			So(s, ShouldResemble, before)
		})
	})
}

func TestReduce_SubmitValidation(t *testing.T) {
	Convey("Given an open composer", t, func() {
		r := Reducer{}
		s, _ := r.Reduce(State{ServerError: "stale"}, OpenComposer{})

		cases := []struct {
			name, power, score string
			want               string
		}{
			{"", "flight", "5", hero.ErrFieldsRequired.Message},
			{"Supergirl", "", "5", hero.ErrFieldsRequired.Message},
			{"Supergirl", "flight", "0", hero.ErrFieldsRequired.Message},
			{"Supergirl", "flight", "", hero.ErrFieldsRequired.Message},
			{"Su", "flight", "5", hero.ErrNameTooShort.Message},
			{"Supergirl", "flight", "11", hero.ErrScoreOutOfRange.Message},
			{"Supergirl", "flight", "-1", hero.ErrScoreOutOfRange.Message},
			{"Supergirl", "flight", "99999999999999999999", hero.ErrScoreOutOfRange.Message},
			{"Supergirl", "flight", "-99999999999999999999", hero.ErrScoreOutOfRange.Message},
		}

		for _, tc := range cases {
			next, eff := reduceAll(r, s, append(fill(tc.name, tc.power, tc.score), Submit{})...)
			So(eff.Kind, ShouldEqual, EffectNone)
			So(next.Error, ShouldEqual, tc.want)
			So(next.Adding, ShouldBeTrue)
			So(next.Submitting, ShouldBeFalse)
			So(next.ServerError, ShouldEqual, "stale")
			So(next.Heroes, ShouldBeEmpty)
		}
	})
}

func TestReduce_SubmitFlow(t *testing.T) {
	Convey("Given a valid draft in an open composer", t, func() {
		r := Reducer{}
		start := State{
			Heroes: []hero.Hero{{ID: "0", Name: "Batman", Superpower: "money", HumilityScore: 2}},
			Error:  "Name must be at least 3 characters.",
		}
		s, _ := reduceAll(r, start, append([]Event{OpenComposer{}}, fill("Supergirl", "flight", "5")...)...)

		Convey("When it is submitted", func() {
			s, eff := r.Reduce(s, Submit{})

			Convey("Then exactly one create is requested with the draft", func() {
				So(eff.Kind, ShouldEqual, EffectCreate)
				So(eff.Draft, ShouldResemble, hero.Draft{Name: "Supergirl", Superpower: "flight", HumilityScore: 5})
				So(s.Error, ShouldBeEmpty)
				So(s.ServerError, ShouldBeEmpty)
				So(s.Submitting, ShouldBeTrue)
				So(s.Heroes, ShouldHaveLength, 1)
			})

			Convey("And a confirmed record is appended and the composer resets", func() {
				created := hero.Hero{ID: "1", Name: "Supergirl", Superpower: "flight", HumilityScore: 5}
				s, eff = r.Reduce(s, Created{Hero: created})
				So(eff.Kind, ShouldEqual, EffectNone)
				So(s.Heroes, ShouldHaveLength, 2)
				So(s.Heroes[1], ShouldResemble, created)
				So(s.Draft, ShouldResemble, hero.Draft{Name: "", Superpower: "", HumilityScore: 0})
				So(s.Adding, ShouldBeFalse)
				So(s.Submitting, ShouldBeFalse)
			})

			Convey("And a rejection keeps the composer, draft and list", func() {
				s, _ = r.Reduce(s, CreateFailed{Message: "name already exists"})
				So(s.ServerError, ShouldEqual, "name already exists")
				So(s.Heroes, ShouldHaveLength, 1)
				So(s.Adding, ShouldBeTrue)
				So(s.Draft.Name, ShouldEqual, "Supergirl")
				So(s.Submitting, ShouldBeFalse)
			})

			Convey("And a second submit is not guarded by default", func() {
				_, eff = r.Reduce(s, Submit{})
				So(eff.Kind, ShouldEqual, EffectCreate)
			})

			Convey("And a second submit is dropped when guarded", func() {
				guarded := Reducer{GuardSubmit: true}
				again, eff := guarded.Reduce(s, Submit{})
				So(eff.Kind, ShouldEqual, EffectNone)
				So(again, ShouldResemble, s)
			})
		})
	})
}
