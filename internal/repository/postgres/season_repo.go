// internal/repository/postgres/season_repo.go
package postgres

import (
	"context"

	"gridiron-service/internal/domain/season"
	"gridiron-service/internal/pkg/filter"
)

type SeasonRepository struct {
	ex *Executor
}

func NewSeasonRepository(ex *Executor) *SeasonRepository {
	return &SeasonRepository{ex: ex}
}

func mapSeason(rec *Record) (*season.Season, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	year, err := rec.Int("year")
	if err != nil {
		return nil, err
	}
	currentWeek, err := rec.Int("current_week")
	if err != nil {
		return nil, err
	}
	return &season.Season{
		ID:          id,
		Year:        year,
		Label:       rec.String("label"),
		CurrentWeek: currentWeek,
	}, nil
}

// Current calls season_current(), a 0-or-1 row function.
func (r *SeasonRepository) Current(ctx context.Context) (*season.Season, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "season_current", nil, mapSeason)
}

// List reads vw_seasons, newest first.
func (r *SeasonRepository) List(ctx context.Context) ([]*season.Season, error) {
	return QueryView(ctx, r.ex, "vw_seasons", mapSeason, ViewOptions{OrderBy: "year DESC"})
}

// Weeks reads vw_weeks for one season in week order.
func (r *SeasonRepository) Weeks(ctx context.Context, seasonID int64) ([]*season.Week, error) {
	b := filter.New("season_id", "number")
	where, err := b.Where("season_id", filter.Eq, seasonID).Build()
	if err != nil {
		return nil, err
	}
	orderBy, err := b.OrderBy("number", false)
	if err != nil {
		return nil, err
	}
	return QueryView(ctx, r.ex, "vw_weeks", mapWeek, ViewOptions{Where: where, OrderBy: orderBy})
}

func mapWeek(rec *Record) (*season.Week, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	seasonID, err := rec.Int64("season_id")
	if err != nil {
		return nil, err
	}
	number, err := rec.Int("number")
	if err != nil {
		return nil, err
	}
	return &season.Week{
		ID:       id,
		SeasonID: seasonID,
		Number:   number,
		StartsAt: rec.Time("starts_at"),
		EndsAt:   rec.Time("ends_at"),
	}, nil
}
