// internal/service/season/season.go
package season

import (
	"context"

	domain "gridiron-service/internal/domain/season"
	xerrors "gridiron-service/internal/pkg/errors"
)

type Store interface {
	Current(ctx context.Context) (*domain.Season, bool, error)
	List(ctx context.Context) ([]*domain.Season, error)
	Weeks(ctx context.Context, seasonID int64) ([]*domain.Week, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Current(ctx context.Context) (*domain.Season, error) {
	sn, found, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	return sn, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Season, error) {
	return s.store.List(ctx)
}

func (s *Service) Weeks(ctx context.Context, seasonID int64) ([]*domain.Week, error) {
	return s.store.Weeks(ctx, seasonID)
}
