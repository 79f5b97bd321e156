// internal/service/player/player.go
package player

import (
	"context"

	domain "gridiron-service/internal/domain/player"
	xerrors "gridiron-service/internal/pkg/errors"
)

type Store interface {
	Search(ctx context.Context, f domain.SearchFilters) ([]*domain.Player, error)
	Get(ctx context.Context, playerID int64) (*domain.Player, bool, error)
	FreeAgents(ctx context.Context, leagueID int64, position string, limit int) ([]*domain.Player, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Search(ctx context.Context, f domain.SearchFilters) ([]*domain.Player, error) {
	return s.store.Search(ctx, f)
}

func (s *Service) Get(ctx context.Context, playerID int64) (*domain.Player, error) {
	p, found, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

func (s *Service) FreeAgents(ctx context.Context, leagueID int64, position string, limit int) ([]*domain.Player, error) {
	return s.store.FreeAgents(ctx, leagueID, position, limit)
}
