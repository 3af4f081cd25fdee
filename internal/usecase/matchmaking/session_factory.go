package matchmaking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

// createSession turns one accepted pair into a persisted session. Both full
// user records are refetched fresh, since the allocator only worked from
// normalized snapshots. The session insert and the two matched-flag updates
// land as one atomic unit inside the repository.
func (uc *UseCase) createSession(ctx context.Context, pair PairCandidate) error {
	userA, err := uc.userRepo.GetByID(ctx, pair.UserA)
	if err != nil {
		return fmt.Errorf("fetch user %s: %w", pair.UserA, err)
	}
	userB, err := uc.userRepo.GetByID(ctx, pair.UserB)
	if err != nil {
		return fmt.Errorf("fetch user %s: %w", pair.UserB, err)
	}

	now := uc.Clock().UTC()
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserA:        userA.ID,
		UserB:        userB.ID,
		NicknameA:    userA.DisplayNickname(),
		NicknameB:    userB.DisplayNickname(),
		MessageCount: 0,
		Status:       domain.SessionStatusActive,
		StartTime:    now,
		EndTime:      now.Add(uc.cfg.SessionTTL),
	}

	if uc.icebreaker != nil {
		shared := sharedInterests(NormalizeUser(userA).Interests, NormalizeUser(userB).Interests)
		if line, err := uc.icebreaker.GenerateIcebreaker(ctx, shared); err != nil {
			uc.log.Warn("icebreaker generation failed", "session_id", session.ID, "err", err)
		} else if line != "" {
			session.Icebreaker = &line
		}
	}

	if err := uc.sessionRepo.CreateWithParticipants(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	uc.log.Info("session created",
		"session_id", session.ID,
		"nickname_a", session.NicknameA,
		"nickname_b", session.NicknameB,
		"end_time", session.EndTime)
	return nil
}

func sharedInterests(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	var shared []string
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := set[s]; ok {
			shared = append(shared, s)
		}
	}
	return shared
}
