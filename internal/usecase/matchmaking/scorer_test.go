package matchmaking

import (
	"testing"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() ScoringPolicy {
	return NewScoringPolicy(config.MatchingConfig{
		InterestWeight: 10,
		AgeWeight:      5,
		AgeBuckets:     config.DefaultAgeBuckets(),
	})
}

func eligibleProfile(id string, age int) Profile {
	return Profile{
		ID:               id,
		Age:              age,
		Gender:           "female",
		GenderPreference: "any",
		AgePreference:    "any",
		Approved:         true,
	}
}

func TestScore_EligiblePairWithSharedInterest(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	a.Interests = []string{"music", "hiking"}
	b := eligibleProfile("b", 21)
	b.Interests = []string{"music", "films"}

	score, ok := policy.Score(a, b)
	require.True(t, ok)
	assert.Greater(t, score, 0.0)
	// one shared interest, one year apart
	assert.InDelta(t, 10*1+5.0/2, score, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	policy := testPolicy()
	a := eligibleProfile("a", 20)
	a.Interests = []string{"music", "books", "running"}
	b := eligibleProfile("b", 25)
	b.Interests = []string{"running", "music"}

	first, ok := policy.Score(a, b)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := policy.Score(a, b)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestEligible_RequiresApprovedAndUnmatched(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	b := eligibleProfile("b", 21)
	assert.True(t, policy.Eligible(a, b))

	notApproved := a
	notApproved.Approved = false
	assert.False(t, policy.Eligible(notApproved, b))
	assert.False(t, policy.Eligible(b, notApproved))

	alreadyMatched := a
	alreadyMatched.Matched = true
	assert.False(t, policy.Eligible(alreadyMatched, b))
	assert.False(t, policy.Eligible(b, alreadyMatched))
}

func TestEligible_GenderPreferenceMustBeMutual(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	a.Gender = "female"
	a.GenderPreference = "male"

	b := eligibleProfile("b", 21)
	b.Gender = "male"
	b.GenderPreference = "female"

	assert.True(t, policy.Eligible(a, b))

	// b only accepts males; a is female, so the pair dies both ways.
	b.GenderPreference = "male"
	assert.False(t, policy.Eligible(a, b))
	assert.False(t, policy.Eligible(b, a))
}

func TestEligible_UnsetGenderPreferenceRejects(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	a.GenderPreference = ""
	b := eligibleProfile("b", 21)

	assert.False(t, policy.Eligible(a, b))
}

func TestEligible_AgeBuckets(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	a.AgePreference = "similar"

	b := eligibleProfile("b", 22)
	assert.True(t, policy.Eligible(a, b), "delta +2 is inside similar")

	b.Age = 23
	assert.False(t, policy.Eligible(a, b), "delta +3 is outside similar")

	b.Age = 18
	assert.True(t, policy.Eligible(a, b), "delta -2 is inside similar")
}

func TestEligible_UnknownAgeBucketBehavesLikeAny(t *testing.T) {
	policy := testPolicy()

	a := eligibleProfile("a", 20)
	a.AgePreference = "whatever"
	b := eligibleProfile("b", 45)

	assert.True(t, policy.Eligible(a, b))
}

func TestInterestOverlap_OrderAndDuplicateInsensitive(t *testing.T) {
	assert.Equal(t, 2, interestOverlap(
		[]string{"music", "films", "hiking"},
		[]string{"hiking", "hiking", "music"},
	))
	assert.Equal(t, 0, interestOverlap(nil, []string{"music"}))
	assert.Equal(t, 0, interestOverlap([]string{"music"}, nil))
}
