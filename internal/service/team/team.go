// internal/service/team/team.go
package team

import (
	"context"

	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/team"
	"gridiron-service/internal/feed"
	xerrors "gridiron-service/internal/pkg/errors"
)

type Publisher interface {
	Publish(ctx context.Context, ev *feed.Event) error
}

type Store interface {
	Get(ctx context.Context, teamID int64) (*domain.Team, bool, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Team, error)
	Rename(ctx context.Context, teamID, ownerID int64, name string) (string, error)
	Roster(ctx context.Context, teamID int64) ([]*domain.RosterSlot, error)
	AddPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error)
	DropPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error)
	SetLineup(ctx context.Context, teamID, ownerID int64, starters []int64) (int64, error)
	OwnedBy(ctx context.Context, teamID, ownerID int64) (bool, error)
}

type Service struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func NewService(store Store, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

func (s *Service) Get(ctx context.Context, teamID int64) (*domain.Team, error) {
	t, found, err := s.store.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	return t, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]*domain.Team, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

func (s *Service) Rename(ctx context.Context, teamID, ownerID int64, name string) (string, error) {
	if err := s.requireOwner(ctx, teamID, ownerID); err != nil {
		return "", err
	}
	return s.store.Rename(ctx, teamID, ownerID, name)
}

func (s *Service) Roster(ctx context.Context, teamID int64) ([]*domain.RosterSlot, error) {
	return s.store.Roster(ctx, teamID)
}

// AddPlayer runs the store-side roster move and announces it on the feed.
// Eligibility (free agent, roster limits, lock windows) is decided inside
// the procedure; its message comes back verbatim.
func (s *Service) AddPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error) {
	if err := s.requireOwner(ctx, teamID, ownerID); err != nil {
		return "", err
	}
	msg, err := s.store.AddPlayer(ctx, teamID, ownerID, playerID)
	if err != nil {
		return "", err
	}
	s.announceMove(ctx, teamID, playerID, "add")
	return msg, nil
}

func (s *Service) DropPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error) {
	if err := s.requireOwner(ctx, teamID, ownerID); err != nil {
		return "", err
	}
	msg, err := s.store.DropPlayer(ctx, teamID, ownerID, playerID)
	if err != nil {
		return "", err
	}
	s.announceMove(ctx, teamID, playerID, "drop")
	return msg, nil
}

// SetLineup replaces the starting lineup; returns how many slots changed.
func (s *Service) SetLineup(ctx context.Context, teamID, ownerID int64, starters []int64) (int64, error) {
	if err := s.requireOwner(ctx, teamID, ownerID); err != nil {
		return 0, err
	}
	return s.store.SetLineup(ctx, teamID, ownerID, starters)
}

func (s *Service) requireOwner(ctx context.Context, teamID, ownerID int64) error {
	owned, err := s.store.OwnedBy(ctx, teamID, ownerID)
	if err != nil {
		return err
	}
	if !owned {
		return xerrors.ErrForbidden
	}
	return nil
}

func (s *Service) announceMove(ctx context.Context, teamID, playerID int64, kind string) {
	if s.publisher == nil {
		return
	}
	t, found, err := s.store.Get(ctx, teamID)
	if err != nil || !found {
		return
	}
	ev := feed.NewEvent(feed.EventRosterMove, map[string]any{
		"team_id":   teamID,
		"player_id": playerID,
		"kind":      kind,
	})
	ev.LeagueID = t.LeagueID
	if pubErr := s.publisher.Publish(ctx, ev); pubErr != nil {
		s.logger.Warn("roster move event not published", zap.Error(pubErr))
	}
}
