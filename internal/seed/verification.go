package seed

import "github.com/okian/heroes/internal/domain/hero"

// missing returns the ids of created heroes that are absent from listed,
// in creation order.
func missing(created, listed []hero.Hero) []hero.ID {
	seen := make(map[hero.ID]struct{}, len(listed))
	for _, h := range listed {
		seen[h.ID] = struct{}{}
	}

	var out []hero.ID
	for _, h := range created {
		if _, ok := seen[h.ID]; !ok {
			out = append(out, h.ID)
		}
	}
	return out
}
