package seed

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/heroes/internal/domain/hero"
)

const suffixLength = 4

var (
	titles = []string{
		"Captain", "Doctor", "Iron", "Silver", "Night", "Storm", "Quantum", "Shadow",
		"Crimson", "Atomic", "Mighty", "Phantom",
	}
	nouns = []string{
		"Falcon", "Sentinel", "Comet", "Vortex", "Lynx", "Titan", "Specter", "Wasp",
		"Blaze", "Golem", "Raven", "Nova",
	}
	powers = []string{
		"flight", "super strength", "invisibility", "telepathy", "time control",
		"shape shifting", "healing factor", "weather control", "super speed",
		"force fields", "x-ray vision", "teleportation",
	}
)

// randIndex returns a uniform index in [0, n) using crypto/rand.
func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Generate returns n drafts that all pass hero.Validate.
// Names carry a short uuid suffix so repeated runs stay distinguishable.
func Generate(n int) []hero.Draft {
	drafts := make([]hero.Draft, n)
	for i := range drafts {
		drafts[i] = generateOne()
	}
	return drafts
}

func generateOne() hero.Draft {
	suffix := uuid.NewString()[:suffixLength]
	return hero.Draft{
		Name:          titles[randIndex(len(titles))] + " " + nouns[randIndex(len(nouns))] + " " + suffix,
		Superpower:    powers[randIndex(len(powers))],
		HumilityScore: hero.MinScore + randIndex(hero.MaxScore-hero.MinScore+1),
	}
}
