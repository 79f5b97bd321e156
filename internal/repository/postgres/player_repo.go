// internal/repository/postgres/player_repo.go
package postgres

import (
	"context"

	"gridiron-service/internal/domain/player"
	"gridiron-service/internal/pkg/filter"

	"github.com/lib/pq"
)

// PlayerRepository reads NFL reference data. Everything here is a view or a
// parameterized query; this service never mutates player rows.
type PlayerRepository struct {
	ex *Executor
}

func NewPlayerRepository(ex *Executor) *PlayerRepository {
	return &PlayerRepository{ex: ex}
}

func mapPlayer(rec *Record) (*player.Player, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	byeWeek, err := rec.Int("bye_week")
	if err != nil {
		return nil, err
	}
	return &player.Player{
		ID:       id,
		Name:     rec.String("name"),
		Position: rec.String("position"),
		NFLTeam:  rec.String("nfl_team"),
		ByeWeek:  byeWeek,
		Status:   rec.String("status"),
	}, nil
}

// Search reads vw_players. Request input only reaches the WHERE clause
// through the filter builder; the position list goes through a parameterized
// ANY($1) instead, since the allow list cannot express set membership.
func (r *PlayerRepository) Search(ctx context.Context, f player.SearchFilters) ([]*player.Player, error) {
	if len(f.Positions) > 0 {
		limit := f.Limit
		if limit <= 0 {
			limit = 50
		}
		return QueryRaw(ctx, r.ex,
			"SELECT * FROM vw_players WHERE position = ANY($1) ORDER BY name ASC LIMIT $2",
			mapPlayer, pq.Array(f.Positions), limit)
	}

	b := filter.New("position", "nfl_team", "name")
	if f.NFLTeam != "" {
		b.Where("nfl_team", filter.Eq, f.NFLTeam)
	}
	if f.NamePrefix != "" {
		b.Where("name", filter.PrefixLike, f.NamePrefix)
	}
	where, err := b.Build()
	if err != nil {
		return nil, err
	}
	orderBy, err := b.OrderBy("name", false)
	if err != nil {
		return nil, err
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	return QueryView(ctx, r.ex, "vw_players", mapPlayer, ViewOptions{
		Where:   where,
		OrderBy: orderBy,
		Limit:   limit,
	})
}

// Get calls player_get(player_id), a 0-or-1 row function.
func (r *PlayerRepository) Get(ctx context.Context, playerID int64) (*player.Player, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "player_get", []any{playerID}, mapPlayer)
}

// FreeAgents calls league_free_agents(league_id, position, limit): players in
// no roster of the league, as a row list.
func (r *PlayerRepository) FreeAgents(ctx context.Context, leagueID int64, position string, limit int) ([]*player.Player, error) {
	if limit <= 0 {
		limit = 50
	}
	return CallForRowList(ctx, r.ex, "league_free_agents", []any{leagueID, position, limit}, mapPlayer)
}
