package domain

import "time"

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusExpired SessionStatus = "expired"
	SessionStatusClosed  SessionStatus = "closed"
)

// Session is a time-boxed private conversation between two matched users.
// Participant slots are fixed at creation: UserA/UserB order never changes, and
// all consent bookkeeping (reveal, share_phone) is kept per slot. Sessions are
// never deleted, only transitioned; closed is terminal.
type Session struct {
	ID              string        `json:"id" db:"id"`
	UserA           string        `json:"user_a" db:"user_a"`
	UserB           string        `json:"user_b" db:"user_b"`
	NicknameA       string        `json:"nickname_a" db:"nickname_a"`
	NicknameB       string        `json:"nickname_b" db:"nickname_b"`
	MessageCount    int           `json:"message_count" db:"message_count"`
	Status          SessionStatus `json:"status" db:"status"`
	StartTime       time.Time     `json:"start_time" db:"start_time"`
	EndTime         time.Time     `json:"end_time" db:"end_time"`
	UserAReveal     bool          `json:"user_a_reveal" db:"user_a_reveal"`
	UserBReveal     bool          `json:"user_b_reveal" db:"user_b_reveal"`
	UserASharePhone bool          `json:"user_a_share_phone" db:"user_a_share_phone"`
	UserBSharePhone bool          `json:"user_b_share_phone" db:"user_b_share_phone"`
	Icebreaker      *string       `json:"icebreaker" db:"icebreaker"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// Side identifies a participant slot for consent bookkeeping.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// SideOf resolves which slot the given user occupies.
func (s *Session) SideOf(userID string) (Side, bool) {
	switch userID {
	case s.UserA:
		return SideA, true
	case s.UserB:
		return SideB, true
	}
	return "", false
}

func (s *Session) HasUser(userID string) bool {
	return s.UserA == userID || s.UserB == userID
}

func (s *Session) OtherUserID(userID string) (string, bool) {
	if s.UserA == userID {
		return s.UserB, true
	}
	if s.UserB == userID {
		return s.UserA, true
	}
	return "", false
}

func (s *Session) IsUserA(userID string) bool {
	return s.UserA == userID
}

// BothRevealed is the sole gate for exposing identity-bearing fields to either
// participant.
func (s *Session) BothRevealed() bool {
	return s.UserAReveal && s.UserBReveal
}

// RevealOf returns the reveal flag owned by the given participant.
func (s *Session) RevealOf(userID string) bool {
	if s.IsUserA(userID) {
		return s.UserAReveal
	}
	return s.UserBReveal
}

// SharePhoneOf returns the share_phone flag owned by the given participant.
func (s *Session) SharePhoneOf(userID string) bool {
	if s.IsUserA(userID) {
		return s.UserASharePhone
	}
	return s.UserBSharePhone
}

// PhoneVisibleTo reports whether the viewer may see the counterpart's phone
// number: reveal must be mutual and the counterpart must have opted in with
// their own share_phone flag. The viewer's own flag has no effect here.
func (s *Session) PhoneVisibleTo(viewerID string) bool {
	counterpart, ok := s.OtherUserID(viewerID)
	if !ok {
		return false
	}
	return s.BothRevealed() && s.SharePhoneOf(counterpart)
}

// NicknameOf returns the nickname snapshot for the given participant.
func (s *Session) NicknameOf(userID string) string {
	if s.IsUserA(userID) {
		return s.NicknameA
	}
	return s.NicknameB
}

// DueToExpire reports whether the session's TTL has elapsed at the given
// instant. It does not look at Status; closed sessions stay closed.
func (s *Session) DueToExpire(now time.Time) bool {
	return !now.Before(s.EndTime)
}
