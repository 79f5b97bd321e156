// internal/repository/postgres/team_repo.go
package postgres

import (
	"context"
	"fmt"

	"gridiron-service/internal/domain/team"
	"gridiron-service/internal/pkg/filter"

	"github.com/lib/pq"
)

type TeamRepository struct {
	ex *Executor
}

func NewTeamRepository(ex *Executor) *TeamRepository {
	return &TeamRepository{ex: ex}
}

func mapTeam(rec *Record) (*team.Team, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	leagueID, err := rec.Int64("league_id")
	if err != nil {
		return nil, err
	}
	ownerID, err := rec.Int64("owner_id")
	if err != nil {
		return nil, err
	}
	wins, err := rec.Int("wins")
	if err != nil {
		return nil, err
	}
	losses, err := rec.Int("losses")
	if err != nil {
		return nil, err
	}
	ties, err := rec.Int("ties")
	if err != nil {
		return nil, err
	}
	return &team.Team{
		ID:       id,
		LeagueID: leagueID,
		OwnerID:  ownerID,
		Name:     rec.String("name"),
		Wins:     wins,
		Losses:   losses,
		Ties:     ties,
	}, nil
}

// Get calls team_get(team_id), a 0-or-1 row function.
func (r *TeamRepository) Get(ctx context.Context, teamID int64) (*team.Team, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "team_get", []any{teamID}, mapTeam)
}

// ListByOwner reads vw_teams for one owner.
func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*team.Team, error) {
	b := filter.New("owner_id", "league_id")
	where, err := b.Where("owner_id", filter.Eq, ownerID).Build()
	if err != nil {
		return nil, err
	}
	return QueryView(ctx, r.ex, "vw_teams", mapTeam, ViewOptions{Where: where})
}

// Rename calls team_rename(team_id, owner_id, name). The store rejects
// renames by non-owners with its own message.
func (r *TeamRepository) Rename(ctx context.Context, teamID, ownerID int64, name string) (string, error) {
	return r.ex.ForMessage(ctx, "team_rename", teamID, ownerID, name)
}

// Roster reads vw_rosters for one team, starters first.
func (r *TeamRepository) Roster(ctx context.Context, teamID int64) ([]*team.RosterSlot, error) {
	b := filter.New("team_id", "starter")
	where, err := b.Where("team_id", filter.Eq, teamID).Build()
	if err != nil {
		return nil, err
	}
	return QueryView(ctx, r.ex, "vw_rosters", mapRosterSlot, ViewOptions{
		Where:   where,
		OrderBy: "starter DESC, position ASC",
	})
}

// AddPlayer calls roster_add_player(team_id, owner_id, player_id). Roster
// rules (size caps, position limits, player already owned in the league)
// live in the procedure; its RAISE messages surface verbatim.
func (r *TeamRepository) AddPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error) {
	return r.ex.ForMessage(ctx, "roster_add_player", teamID, ownerID, playerID)
}

// DropPlayer calls roster_drop_player(team_id, owner_id, player_id).
func (r *TeamRepository) DropPlayer(ctx context.Context, teamID, ownerID, playerID int64) (string, error) {
	return r.ex.ForMessage(ctx, "roster_drop_player", teamID, ownerID, playerID)
}

// SetLineup calls lineup_set(team_id, owner_id, starter_ids). The id list
// travels as bigint[].
func (r *TeamRepository) SetLineup(ctx context.Context, teamID, ownerID int64, starters []int64) (int64, error) {
	return r.ex.CallForCount(ctx, "lineup_set", teamID, ownerID, pq.Array(starters))
}

// OwnedBy reports whether the team belongs to the user.
func (r *TeamRepository) OwnedBy(ctx context.Context, teamID, ownerID int64) (bool, error) {
	return r.ex.Exists(ctx, "vw_teams", fmt.Sprintf("id = %d AND owner_id = %d", teamID, ownerID))
}

func mapRosterSlot(rec *Record) (*team.RosterSlot, error) {
	playerID, err := rec.Int64("player_id")
	if err != nil {
		return nil, err
	}
	return &team.RosterSlot{
		PlayerID:   playerID,
		PlayerName: rec.String("player_name"),
		Position:   rec.String("position"),
		NFLTeam:    rec.String("nfl_team"),
		Starter:    rec.Bool("starter"),
	}, nil
}
