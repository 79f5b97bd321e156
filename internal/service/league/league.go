// internal/service/league/league.go
package league

import (
	"context"

	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/league"
	"gridiron-service/internal/feed"
	xerrors "gridiron-service/internal/pkg/errors"
)

// Publisher pushes league events onto the shared activity feed.
type Publisher interface {
	Publish(ctx context.Context, ev *feed.Event) error
}

type Store interface {
	List(ctx context.Context, f domain.ListFilters) ([]*domain.League, error)
	Get(ctx context.Context, leagueID int64) (*domain.League, bool, error)
	Create(ctx context.Context, req domain.CreateRequest, commissionerID int64) (string, error)
	Join(ctx context.Context, inviteCode string, userID int64, teamName string) (*domain.JoinOutcome, error)
	Overview(ctx context.Context, leagueID int64) (*domain.Overview, error)
	Standings(ctx context.Context, leagueID int64) ([]*domain.Standing, error)
	Exists(ctx context.Context, leagueID int64) (bool, error)
}

type Service struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func NewService(store Store, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

func (s *Service) List(ctx context.Context, f domain.ListFilters) ([]*domain.League, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, leagueID int64) (*domain.League, error) {
	lg, found, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	return lg, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest, commissionerID int64) (string, error) {
	return s.store.Create(ctx, req, commissionerID)
}

// Join runs the invite-code admission and, on success, announces the new
// team on the league feed. Feed delivery is best-effort.
func (s *Service) Join(ctx context.Context, req domain.JoinRequest, userID int64) (*domain.JoinOutcome, error) {
	out, err := s.store.Join(ctx, req.InviteCode, userID, req.TeamName)
	if err != nil {
		return nil, err
	}
	if out.OK && s.publisher != nil {
		ev := feed.NewEvent(feed.EventLeagueNews, map[string]any{
			"headline": "a new team joined the league",
			"team_id":  out.TeamID,
		})
		ev.LeagueID = out.LeagueID
		if pubErr := s.publisher.Publish(ctx, ev); pubErr != nil {
			s.logger.Warn("league join event not published", zap.Error(pubErr))
		}
	}
	return out, nil
}

func (s *Service) Overview(ctx context.Context, leagueID int64) (*domain.Overview, error) {
	found, err := s.store.Exists(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	return s.store.Overview(ctx, leagueID)
}

func (s *Service) Standings(ctx context.Context, leagueID int64) ([]*domain.Standing, error) {
	return s.store.Standings(ctx, leagueID)
}
