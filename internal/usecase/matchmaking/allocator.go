package matchmaking

import "sort"

// PairCandidate is an unordered eligible pair with its compatibility score.
// UserA/UserB are stored in lexicographic order so identical inputs always
// produce identical candidates.
type PairCandidate struct {
	UserA string
	UserB string
	Score float64
}

// Allocation is the outcome of one matching run over a profile pool.
type Allocation struct {
	Pairs     []PairCandidate
	Unmatched []string
}

// AllocatePairs builds all eligible pair candidates over the pool, then
// greedily accepts them in descending score order, skipping any candidate
// whose participant was already consumed. The result is a conflict-free set:
// no profile id appears in more than one accepted pair.
//
// This is a greedy approximation of maximum-weight matching, chosen over an
// exact solver because a run must be cheap and explainable in a single pass.
// Ties break on the concatenated id pair, so repeated runs over the same
// snapshot are reproducible.
func AllocatePairs(profiles []Profile, policy ScoringPolicy) Allocation {
	candidates := make([]PairCandidate, 0)
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			score, ok := policy.Score(profiles[i], profiles[j])
			if !ok {
				continue
			}
			a, b := profiles[i].ID, profiles[j].ID
			if b < a {
				a, b = b, a
			}
			candidates = append(candidates, PairCandidate{UserA: a, UserB: b, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].UserA+candidates[i].UserB < candidates[j].UserA+candidates[j].UserB
	})

	consumed := make(map[string]struct{}, len(profiles))
	accepted := make([]PairCandidate, 0, len(profiles)/2)
	for _, c := range candidates {
		if _, taken := consumed[c.UserA]; taken {
			continue
		}
		if _, taken := consumed[c.UserB]; taken {
			continue
		}
		consumed[c.UserA] = struct{}{}
		consumed[c.UserB] = struct{}{}
		accepted = append(accepted, c)
	}

	unmatched := make([]string, 0)
	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, taken := consumed[p.ID]; !taken {
			unmatched = append(unmatched, p.ID)
		}
	}

	return Allocation{Pairs: accepted, Unmatched: unmatched}
}
