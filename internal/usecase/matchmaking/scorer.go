package matchmaking

import (
	"math"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
)

// ScoringPolicy holds the tunable knobs of the compatibility scorer: the
// age-preference bucket table and the relative weights of interest overlap vs
// age proximity.
type ScoringPolicy struct {
	InterestWeight float64
	AgeWeight      float64
	AgeBuckets     map[string]config.AgeBucket
}

func NewScoringPolicy(cfg config.MatchingConfig) ScoringPolicy {
	buckets := cfg.AgeBuckets
	if buckets == nil {
		buckets = config.DefaultAgeBuckets()
	}
	return ScoringPolicy{
		InterestWeight: cfg.InterestWeight,
		AgeWeight:      cfg.AgeWeight,
		AgeBuckets:     buckets,
	}
}

// Score computes the compatibility score for the pair, or ok=false when the
// pair is ineligible and no edge should be created. The score is a
// deterministic function of the two profiles: no randomness, identical inputs
// always produce the identical value.
func (p ScoringPolicy) Score(a, b Profile) (score float64, ok bool) {
	if !p.Eligible(a, b) {
		return 0, false
	}

	overlap := interestOverlap(a.Interests, b.Interests)
	ageDiff := math.Abs(float64(a.Age - b.Age))

	score = p.InterestWeight*float64(overlap) + p.AgeWeight/(1+ageDiff)
	return score, true
}

// Eligible applies the hard pair constraints: both approved, both unmatched,
// and mutual gender- and age-preference compatibility.
func (p ScoringPolicy) Eligible(a, b Profile) bool {
	if !a.Approved || !b.Approved {
		return false
	}
	if a.Matched || b.Matched {
		return false
	}
	if !genderAccepts(a, b) || !genderAccepts(b, a) {
		return false
	}
	if !p.ageAccepts(a, b) || !p.ageAccepts(b, a) {
		return false
	}
	return true
}

// genderAccepts reports whether profile's gender preference admits the other's
// gender.
func genderAccepts(profile, other Profile) bool {
	return profile.GenderPreference == "any" || profile.GenderPreference == other.Gender
}

// ageAccepts reports whether the other's age falls inside the range implied by
// profile's age_preference bucket. Unknown categories behave like "any".
func (p ScoringPolicy) ageAccepts(profile, other Profile) bool {
	bucket, found := p.AgeBuckets[profile.AgePreference]
	if !found || bucket.Any {
		return true
	}
	delta := other.Age - profile.Age
	return delta >= bucket.MinDelta && delta <= bucket.MaxDelta
}

// interestOverlap is the size of the set intersection of the two interest
// sequences, insensitive to order and duplicates.
func interestOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	count := 0
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, hit := set[s]; hit {
			count++
		}
	}
	return count
}
