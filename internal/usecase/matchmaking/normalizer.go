package matchmaking

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// Profile is the matching-ready view of a user record. Everything downstream
// (scorer, allocator) works on this fixed shape and never re-validates it.
type Profile struct {
	ID               string
	FirstName        string
	LastName         string
	Nickname         string
	Age              int
	Gender           string
	GenderPreference string
	AgePreference    string
	Approved         bool
	Matched          bool
	Interests        []string
}

// NormalizeUser canonicalizes a stored user row for matching. It is total:
// whatever shape the row is in, the result is a usable Profile, worst case a
// minimally-filled one. Gender fields are lowercased but not defaulted;
// age_preference defaults to "any" when absent.
func NormalizeUser(u *domain.User) Profile {
	p := Profile{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Nickname:      u.DisplayNickname(),
		Age:           u.Age,
		Approved:      u.Approved,
		Matched:       u.Matched,
		AgePreference: "any",
		Interests:     NormalizeInterests(u.Interests),
	}
	if u.Gender != nil {
		p.Gender = strings.ToLower(strings.TrimSpace(*u.Gender))
	}
	if u.GenderPreference != nil {
		p.GenderPreference = strings.ToLower(strings.TrimSpace(*u.GenderPreference))
	}
	if u.AgePreference != nil && strings.TrimSpace(*u.AgePreference) != "" {
		p.AgePreference = strings.ToLower(strings.TrimSpace(*u.AgePreference))
	}
	return p
}

// NormalizeInterests turns a raw interests payload into an ordered label slice.
// The payload is expected to be a mapping from numeric rank strings to labels,
// possibly arriving JSON-encoded (or double-encoded by older clients). Values
// are ordered by the numeric value of their rank key ascending, so "2" sorts
// before "10". Anything unparseable yields an empty slice; this never fails.
func NormalizeInterests(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case map[string]any:
		return orderByRank(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return orderByRank(m)
	case string:
		return decodeInterests([]byte(v))
	case []byte:
		return decodeInterests(v)
	case json.RawMessage:
		return decodeInterests(v)
	default:
		return []string{}
	}
}

func decodeInterests(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return []string{}
	}
	switch v := decoded.(type) {
	case map[string]any:
		return orderByRank(v)
	case string:
		// double-encoded payload: the JSON value itself is a JSON string
		return decodeInterests([]byte(v))
	default:
		return []string{}
	}
}

func orderByRank(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.ParseFloat(keys[i], 64)
		b, berr := strconv.ParseFloat(keys[j], 64)
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr == nil {
			return true // numeric keys before malformed ones
		}
		if berr == nil {
			return false
		}
		return keys[i] < keys[j]
	})

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			out = append(out, s)
		}
	}
	return out
}
