package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository"
)

// UseCase governs a session's lifecycle (active → expired → closed) and the
// reveal-consent protocol on top of it. Every mutation goes through here so
// the "participants write only their own flags" rule is enforced in one place,
// not left to convention.
type UseCase struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	broker      realtime.Broker
	cfg         config.MatchingConfig
	log         *slog.Logger

	// Clock is replaceable in tests; defaults to time.Now.
	Clock func() time.Time
}

func NewUseCase(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	broker realtime.Broker,
	cfg config.MatchingConfig,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		broker:      broker,
		cfg:         cfg,
		log:         log,
		Clock:       time.Now,
	}
}

// PartnerIdentity carries the counterpart's identity-bearing fields. It is
// only populated once reveal is mutual; Phone additionally requires the
// counterpart's own share_phone flag.
type PartnerIdentity struct {
	FullName    string  `json:"full_name"`
	Gender      string  `json:"gender"`
	YearOfStudy string  `json:"year_of_study"`
	Phone       *string `json:"phone,omitempty"`
}

// View is a session as one participant is allowed to see it.
type View struct {
	ID              string               `json:"id"`
	Status          domain.SessionStatus `json:"status"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         time.Time            `json:"end_time"`
	MyNickname      string               `json:"my_nickname"`
	PartnerNickname string               `json:"partner_nickname"`
	MessageCount    int                  `json:"message_count"`
	MessagesLeft    int                  `json:"messages_left"`
	MyReveal        bool                 `json:"my_reveal"`
	MySharePhone    bool                 `json:"my_share_phone"`
	BothRevealed    bool                 `json:"both_revealed"`
	Icebreaker      *string              `json:"icebreaker,omitempty"`
	Partner         *PartnerIdentity     `json:"partner,omitempty"`
}

// GetView returns the viewer's gated view of a session.
func (uc *UseCase) GetView(ctx context.Context, sessionID, viewerID string) (*View, error) {
	s, err := uc.LoadForParticipant(ctx, sessionID, viewerID)
	if err != nil {
		return nil, err
	}
	return uc.buildView(ctx, s, viewerID)
}

// GetCurrentView returns the viewer's latest session, gated the same way.
func (uc *UseCase) GetCurrentView(ctx context.Context, viewerID string) (*View, error) {
	s, err := uc.sessionRepo.GetLatestByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	s, err = uc.expireIfDue(ctx, s)
	if err != nil {
		return nil, err
	}
	return uc.buildView(ctx, s, viewerID)
}

// SetReveal writes the caller's own reveal flag. The counterpart's flag is
// unreachable from here by construction.
func (uc *UseCase) SetReveal(ctx context.Context, sessionID, viewerID string, value bool) (*View, error) {
	return uc.setFlag(ctx, sessionID, viewerID, value, uc.sessionRepo.UpdateReveal)
}

// SetSharePhone writes the caller's own phone-sharing flag. It gates what the
// counterpart sees, never what the caller sees.
func (uc *UseCase) SetSharePhone(ctx context.Context, sessionID, viewerID string, value bool) (*View, error) {
	return uc.setFlag(ctx, sessionID, viewerID, value, uc.sessionRepo.UpdateSharePhone)
}

func (uc *UseCase) setFlag(
	ctx context.Context,
	sessionID, viewerID string,
	value bool,
	update func(context.Context, string, domain.Side, bool) (*domain.Session, error),
) (*View, error) {
	s, err := uc.LoadForParticipant(ctx, sessionID, viewerID)
	if err != nil {
		return nil, err
	}
	if s.Status == domain.SessionStatusClosed {
		return nil, domain.ErrSessionClosed
	}

	side, _ := s.SideOf(viewerID)
	updated, err := update(ctx, sessionID, side, value)
	if err != nil {
		return nil, err
	}

	if err := uc.broker.PublishSessionUpdate(ctx, updated); err != nil {
		uc.log.Warn("failed to publish session update", "session_id", sessionID, "err", err)
	}
	return uc.buildView(ctx, updated, viewerID)
}

// Close transitions the session to its terminal state. Closing an already
// closed session is a no-op.
func (uc *UseCase) Close(ctx context.Context, sessionID, viewerID string) (*View, error) {
	s, err := uc.LoadForParticipant(ctx, sessionID, viewerID)
	if err != nil {
		return nil, err
	}
	if s.Status != domain.SessionStatusClosed {
		s, err = uc.sessionRepo.UpdateStatus(ctx, sessionID, domain.SessionStatusClosed)
		if err != nil {
			return nil, err
		}
		if err := uc.broker.PublishSessionUpdate(ctx, s); err != nil {
			uc.log.Warn("failed to publish session close", "session_id", sessionID, "err", err)
		}
	}
	return uc.buildView(ctx, s, viewerID)
}

// SweepExpired transitions every overdue active session. Called periodically;
// the lazy check in LoadForParticipant covers sessions touched in between.
func (uc *UseCase) SweepExpired(ctx context.Context) (int, error) {
	expired, err := uc.sessionRepo.ExpireDue(ctx, uc.Clock().UTC())
	if err != nil {
		return 0, err
	}
	for _, s := range expired {
		if err := uc.broker.PublishSessionUpdate(ctx, s); err != nil {
			uc.log.Warn("failed to publish session expiry", "session_id", s.ID, "err", err)
		}
	}
	if len(expired) > 0 {
		uc.log.Info("expired sessions", "count", len(expired))
	}
	return len(expired), nil
}

// LoadForParticipant fetches a session, verifies the caller participates in
// it, and applies the lazy expiry transition.
func (uc *UseCase) LoadForParticipant(ctx context.Context, sessionID, viewerID string) (*domain.Session, error) {
	s, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.HasUser(viewerID) {
		return nil, domain.ErrNotParticipant
	}
	return uc.expireIfDue(ctx, s)
}

func (uc *UseCase) expireIfDue(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	if s.Status != domain.SessionStatusActive || !s.DueToExpire(uc.Clock().UTC()) {
		return s, nil
	}
	updated, err := uc.sessionRepo.UpdateStatus(ctx, s.ID, domain.SessionStatusExpired)
	if err != nil {
		return nil, err
	}
	if err := uc.broker.PublishSessionUpdate(ctx, updated); err != nil {
		uc.log.Warn("failed to publish session expiry", "session_id", s.ID, "err", err)
	}
	return updated, nil
}

func (uc *UseCase) buildView(ctx context.Context, s *domain.Session, viewerID string) (*View, error) {
	partnerID, _ := s.OtherUserID(viewerID)

	left := uc.cfg.MessageCap - s.MessageCount
	if left < 0 {
		left = 0
	}

	view := &View{
		ID:              s.ID,
		Status:          s.Status,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		MyNickname:      s.NicknameOf(viewerID),
		PartnerNickname: s.NicknameOf(partnerID),
		MessageCount:    s.MessageCount,
		MessagesLeft:    left,
		MyReveal:        s.RevealOf(viewerID),
		MySharePhone:    s.SharePhoneOf(viewerID),
		BothRevealed:    s.BothRevealed(),
		Icebreaker:      s.Icebreaker,
	}

	if !s.BothRevealed() {
		return view, nil
	}

	partner, err := uc.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	identity := &PartnerIdentity{}
	if partner.FullName != nil {
		identity.FullName = *partner.FullName
	}
	if partner.Gender != nil {
		identity.Gender = *partner.Gender
	}
	if partner.YearOfStudy != nil {
		identity.YearOfStudy = *partner.YearOfStudy
	}
	if s.PhoneVisibleTo(viewerID) {
		identity.Phone = partner.Phone
	}
	view.Partner = identity
	return view, nil
}
