package domain

import (
	"encoding/json"
	"time"
)

// User is a row from the users table. The user-management service owns these
// records; the matchmaking core only reads them and flips onboarding_step and
// ismatched once a session is created.
type User struct {
	ID               string          `json:"id" db:"id"`
	FirstName        string          `json:"first_name" db:"first_name"`
	LastName         string          `json:"last_name" db:"last_name"`
	FullName         *string         `json:"full_name" db:"full_name"`
	Nickname         *string         `json:"nickname" db:"nickname"`
	Phone            *string         `json:"phone" db:"phone"`
	YearOfStudy      *string         `json:"year_of_study" db:"year_of_study"`
	Age              int             `json:"age" db:"age"`
	Gender           *string         `json:"gender" db:"gender"`
	GenderPreference *string         `json:"gender_preference" db:"gender_preference"`
	AgePreference    *string         `json:"age_preference" db:"age_preference"`
	Approved         bool            `json:"approved" db:"approved"`
	Matched          bool            `json:"ismatched" db:"ismatched"`
	OnboardingStep   string          `json:"onboarding_step" db:"onboarding_step"`
	Interests        json.RawMessage `json:"interests" db:"interests"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// OnboardingStepMatched is written on both participants when their session is created.
const OnboardingStepMatched = "matched"

// DisplayNickname returns the nickname or an empty string; callers decide the
// placeholder (the client renders "ANONYMOUS" for blank nicknames).
func (u *User) DisplayNickname() string {
	if u.Nickname == nil {
		return ""
	}
	return *u.Nickname
}
