package classifier

import (
	"sort"
	"strings"

	"github.com/desertthunder/hrfx/internal/models"
)

// Key identifies one grouped-mode bucket: a stimulus condition paired with a species.
type Key struct {
	Condition int
	Species   models.Species
}

// Matches reports whether the label contains the species marker, case-insensitively.
func Matches(label string, sp models.Species) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(sp.Marker()))
}

// Classify resolves a channel label to its species, trying markers in
// canonical order so that a multi-matching label is assigned deterministically
// to the first match. The second return is false when no marker matches.
func Classify(label string) (models.Species, bool) {
	for _, sp := range models.SpeciesOrder {
		if Matches(label, sp) {
			return sp, true
		}
	}
	return 0, false
}

// Conditions returns the distinct condition indices observed across the
// channels, ascending, independent of descriptor order.
func Conditions(channels []models.Channel) []int {
	seen := make(map[int]bool)
	for _, ch := range channels {
		seen[ch.Condition] = true
	}

	conditions := make([]int, 0, len(seen))
	for c := range seen {
		conditions = append(conditions, c)
	}
	sort.Ints(conditions)
	return conditions
}

// Partition buckets 1-based channel indices by (condition, species).
//
// Every observed condition is paired with every species; buckets are evaluated
// independently, so a pathological label matching two markers appears under
// both (see package doc). Empty buckets are omitted from the result.
func Partition(channels []models.Channel) map[Key][]int {
	buckets := make(map[Key][]int)

	for _, cond := range Conditions(channels) {
		for _, sp := range models.SpeciesOrder {
			key := Key{Condition: cond, Species: sp}
			for i, ch := range channels {
				if ch.Condition == cond && Matches(ch.Label, sp) {
					buckets[key] = append(buckets[key], i+1)
				}
			}
			if len(buckets[key]) == 0 {
				delete(buckets, key)
			}
		}
	}

	return buckets
}

// PartitionBySpecies buckets 1-based channel indices by species alone,
// ignoring conditions. Assignment is mutually exclusive: each channel goes to
// the first species whose marker its label contains. Empty buckets are
// omitted from the result.
func PartitionBySpecies(channels []models.Channel) map[models.Species][]int {
	buckets := make(map[models.Species][]int)

	for i, ch := range channels {
		if sp, ok := Classify(ch.Label); ok {
			buckets[sp] = append(buckets[sp], i+1)
		}
	}

	return buckets
}
