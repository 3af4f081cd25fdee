package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSession() *Session {
	return &Session{
		ID:        "s1",
		UserA:     "ua",
		UserB:     "ub",
		NicknameA: "owl",
		NicknameB: "fox",
		Status:    SessionStatusActive,
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestBothRevealed(t *testing.T) {
	s := testSession()
	assert.False(t, s.BothRevealed())

	s.UserAReveal = true
	assert.False(t, s.BothRevealed(), "one-sided reveal is not enough")

	s.UserBReveal = true
	assert.True(t, s.BothRevealed())

	s.UserAReveal = false
	assert.False(t, s.BothRevealed())
}

func TestPhoneVisibleTo(t *testing.T) {
	s := testSession()
	s.UserAReveal = true
	s.UserBReveal = true

	assert.False(t, s.PhoneVisibleTo("ua"), "counterpart has not opted in")

	// ub shares their phone: visible to ua only
	s.UserBSharePhone = true
	assert.True(t, s.PhoneVisibleTo("ua"))
	assert.False(t, s.PhoneVisibleTo("ub"), "own share flag gates the counterpart's view, not one's own")

	// without mutual reveal the share flag means nothing
	s.UserAReveal = false
	assert.False(t, s.PhoneVisibleTo("ua"))

	assert.False(t, s.PhoneVisibleTo("stranger"))
}

func TestSideOf(t *testing.T) {
	s := testSession()

	side, ok := s.SideOf("ua")
	assert.True(t, ok)
	assert.Equal(t, SideA, side)

	side, ok = s.SideOf("ub")
	assert.True(t, ok)
	assert.Equal(t, SideB, side)

	_, ok = s.SideOf("stranger")
	assert.False(t, ok)
}

func TestDueToExpire(t *testing.T) {
	s := testSession()

	assert.False(t, s.DueToExpire(s.EndTime.Add(-time.Second)))
	assert.True(t, s.DueToExpire(s.EndTime), "the boundary instant counts as expired")
	assert.True(t, s.DueToExpire(s.EndTime.Add(time.Second)))
}

func TestNicknameOf(t *testing.T) {
	s := testSession()
	assert.Equal(t, "owl", s.NicknameOf("ua"))
	assert.Equal(t, "fox", s.NicknameOf("ub"))
}
