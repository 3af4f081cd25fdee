package matchmaking

import (
	"encoding/json"
	"testing"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeInterests_NumericKeyOrder(t *testing.T) {
	// "2" must sort before "10" even though lexicographic order disagrees.
	got := NormalizeInterests(map[string]any{
		"10": "books",
		"2":  "music",
		"1":  "hiking",
	})
	assert.Equal(t, []string{"hiking", "music", "books"}, got)
}

func TestNormalizeInterests_SerializedMapping(t *testing.T) {
	got := NormalizeInterests(`{"1":"music","2":"films"}`)
	assert.Equal(t, []string{"music", "films"}, got)
}

func TestNormalizeInterests_DoubleEncoded(t *testing.T) {
	inner, err := json.Marshal(map[string]string{"1": "music"})
	require.NoError(t, err)
	outer, err := json.Marshal(string(inner))
	require.NoError(t, err)

	got := NormalizeInterests(string(outer))
	assert.Equal(t, []string{"music"}, got)
}

func TestNormalizeInterests_MalformedInputs(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"broken json", `{"1":"music"`},
		{"json array", `["music","films"]`},
		{"json number", `42`},
		{"plain text", "music"},
		{"unexpected type", 3.14},
		{"empty raw message", json.RawMessage(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, NormalizeInterests(tt.in))
		})
	}
}

func TestNormalizeInterests_SkipsNonStringValues(t *testing.T) {
	got := NormalizeInterests(map[string]any{
		"1": "music",
		"2": 7,
		"3": "films",
	})
	assert.Equal(t, []string{"music", "films"}, got)
}

func TestNormalizeInterests_MalformedKeysAfterNumeric(t *testing.T) {
	got := NormalizeInterests(map[string]any{
		"rank": "last",
		"2":    "films",
		"1":    "music",
	})
	assert.Equal(t, []string{"music", "films", "last"}, got)
}

func TestNormalizeUser_Defaults(t *testing.T) {
	u := &domain.User{
		ID:        "u1",
		FirstName: "Aisha",
		Age:       20,
	}
	p := NormalizeUser(u)

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "", p.Gender, "unset gender stays unset")
	assert.Equal(t, "", p.GenderPreference)
	assert.Equal(t, "any", p.AgePreference, "age preference defaults to any")
	assert.Empty(t, p.Interests)
}

func TestNormalizeUser_LowercasesGenderFields(t *testing.T) {
	u := &domain.User{
		ID:               "u1",
		Gender:           strPtr(" Female "),
		GenderPreference: strPtr("MALE"),
		AgePreference:    strPtr("Similar"),
		Nickname:         strPtr("nightowl"),
		Interests:        json.RawMessage(`{"1":"music"}`),
	}
	p := NormalizeUser(u)

	assert.Equal(t, "female", p.Gender)
	assert.Equal(t, "male", p.GenderPreference)
	assert.Equal(t, "similar", p.AgePreference)
	assert.Equal(t, "nightowl", p.Nickname)
	assert.Equal(t, []string{"music"}, p.Interests)
}

func TestNormalizeUser_BlankAgePreferenceDefaultsToAny(t *testing.T) {
	u := &domain.User{ID: "u1", AgePreference: strPtr("   ")}
	assert.Equal(t, "any", NormalizeUser(u).AgePreference)
}
