package matchmaking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
)

// IcebreakerGenerator produces an optional conversation opener from the pair's
// shared interests. A nil generator simply means sessions start without one.
type IcebreakerGenerator interface {
	GenerateIcebreaker(ctx context.Context, sharedInterests []string) (string, error)
}

// UseCase runs the batch matching pass: fetch the pool, normalize, score,
// allocate pairs, and create a session per accepted pair. One logical batch
// job; the run lock keeps concurrent triggers out.
type UseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	lock        RunLock
	policy      ScoringPolicy
	cfg         config.MatchingConfig
	icebreaker  IcebreakerGenerator
	log         *slog.Logger

	// Clock is replaceable in tests; defaults to time.Now.
	Clock func() time.Time
}

func NewUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	lock RunLock,
	cfg config.MatchingConfig,
	icebreaker IcebreakerGenerator,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		lock:        lock,
		policy:      NewScoringPolicy(cfg),
		cfg:         cfg,
		icebreaker:  icebreaker,
		log:         log,
		Clock:       time.Now,
	}
}

// RunReport summarizes one matching pass.
type RunReport struct {
	SessionsCreated int `json:"sessions_created"`
	PairsSkipped    int `json:"pairs_skipped"`
	Unmatched       int `json:"unmatched"`
}

// RunMatchingPass executes one full pass. A failed pool fetch aborts the whole
// run with nothing created; a single unfetchable profile at session-creation
// time only skips its pair (those two users wait for the next run). All
// session writes happen before this returns, so the caller never sees success
// ahead of the data landing.
func (uc *UseCase) RunMatchingPass(ctx context.Context) (*RunReport, error) {
	acquired, err := uc.lock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrMatchingRunInProgress
	}
	defer func() {
		if err := uc.lock.Release(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn("failed to release matching run lock", "err", err)
		}
	}()

	uc.log.Info("matching pass started")

	users, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile pool: %w", err)
	}

	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, NormalizeUser(u))
	}
	uc.log.Info("prepared profiles for matching", "count", len(profiles))

	alloc := AllocatePairs(profiles, uc.policy)
	uc.log.Info("allocation completed", "pairs", len(alloc.Pairs), "unmatched", len(alloc.Unmatched))

	report := &RunReport{Unmatched: len(alloc.Unmatched)}
	for _, pair := range alloc.Pairs {
		if err := uc.createSession(ctx, pair); err != nil {
			// Recoverable per pair: both users stay unmatched and are picked
			// up again on the next run.
			uc.log.Warn("skipping pair, session not created",
				"user_a", pair.UserA, "user_b", pair.UserB, "err", err)
			report.PairsSkipped++
			continue
		}
		report.SessionsCreated++
	}

	uc.log.Info("matching pass finished",
		"sessions_created", report.SessionsCreated,
		"pairs_skipped", report.PairsSkipped,
		"unmatched", report.Unmatched)
	return report, nil
}
