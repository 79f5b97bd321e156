// internal/repository/postgres/league_repo.go
package postgres

import (
	"context"
	"fmt"

	"gridiron-service/internal/domain/league"
	"gridiron-service/internal/pkg/filter"

	"github.com/lib/pq"
)

// LeagueRepository is a thin consumer of the execution engine: views for
// reads, stored procedures for anything that mutates.
type LeagueRepository struct {
	ex *Executor
}

func NewLeagueRepository(ex *Executor) *LeagueRepository {
	return &LeagueRepository{ex: ex}
}

// leagueColumns is the filter allow list for vw_leagues.
var leagueColumns = []string{"id", "season_id", "invite_only", "created_at", "name"}

func mapLeague(rec *Record) (*league.League, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	seasonID, err := rec.Int64("season_id")
	if err != nil {
		return nil, err
	}
	commissionerID, err := rec.Int64("commissioner_id")
	if err != nil {
		return nil, err
	}
	maxTeams, err := rec.Int("max_teams")
	if err != nil {
		return nil, err
	}
	teamCount, err := rec.Int("team_count")
	if err != nil {
		return nil, err
	}
	return &league.League{
		ID:             id,
		ExternalID:     rec.UUID("external_id"),
		Name:           rec.String("name"),
		SeasonID:       seasonID,
		CommissionerID: commissionerID,
		MaxTeams:       maxTeams,
		TeamCount:      teamCount,
		InviteOnly:     rec.Bool("invite_only"),
		CreatedAt:      rec.Time("created_at"),
	}, nil
}

// List reads vw_leagues with allow-listed filters.
func (r *LeagueRepository) List(ctx context.Context, f league.ListFilters) ([]*league.League, error) {
	b := filter.New(leagueColumns...)
	if f.SeasonID > 0 {
		b.Where("season_id", filter.Eq, f.SeasonID)
	}
	if f.InviteOnly != nil {
		b.Where("invite_only", filter.Eq, *f.InviteOnly)
	}
	where, err := b.Build()
	if err != nil {
		return nil, err
	}
	orderBy, err := b.OrderBy("created_at", true)
	if err != nil {
		return nil, err
	}
	return QueryView(ctx, r.ex, "vw_leagues", mapLeague, ViewOptions{
		Where:   where,
		OrderBy: orderBy,
		Limit:   f.Limit,
	})
}

// Get calls league_get(league_id), a 0-or-1 row function.
func (r *LeagueRepository) Get(ctx context.Context, leagueID int64) (*league.League, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "league_get", []any{leagueID}, mapLeague)
}

// Create calls league_create(name, season_id, commissioner_id, max_teams,
// invite_only, scoring_codes). The scoring codes travel as text[]; the store
// validates them and returns its message row.
func (r *LeagueRepository) Create(ctx context.Context, req league.CreateRequest, commissionerID int64) (string, error) {
	return r.ex.ForMessage(ctx, "league_create",
		req.Name, req.SeasonID, commissionerID, req.MaxTeams, req.InviteOnly, pq.Array(req.Scoring))
}

// Join calls league_join(invite_code, user_id, team_name)
// OUT: ok boolean, message text, team_id bigint, league_id bigint.
func (r *LeagueRepository) Join(ctx context.Context, inviteCode string, userID int64, teamName string) (*league.JoinOutcome, error) {
	ok, msg, out := r.ex.CallWithOutputParams(ctx, "league_join", inviteCode, userID, teamName)
	if !ok {
		return &league.JoinOutcome{OK: false, Message: msg}, nil
	}
	return &league.JoinOutcome{
		OK:       outBool(out, "ok"),
		Message:  outString(out, "message"),
		TeamID:   outInt64(out, "team_id"),
		LeagueID: outInt64(out, "league_id"),
	}, nil
}

// Overview calls league_overview(league_id), which returns three refcursors:
// the league row, the member teams, and the most recent transactions — in
// that documented order.
func (r *LeagueRepository) Overview(ctx context.Context, leagueID int64) (*league.Overview, error) {
	sets, err := r.ex.CallForResultSets(ctx, "league_overview", []any{leagueID},
		func(rec *Record) (any, error) { return mapLeague(rec) },
		func(rec *Record) (any, error) { return mapMemberTeam(rec) },
		func(rec *Record) (any, error) { return mapTransaction(rec) },
	)
	if err != nil {
		return nil, err
	}

	ov := &league.Overview{Teams: []league.MemberTeam{}, RecentMoves: []league.Transaction{}}
	if len(sets) > 0 && len(sets[0]) > 0 {
		ov.League = sets[0][0].(*league.League)
	}
	if len(sets) > 1 {
		for _, v := range sets[1] {
			ov.Teams = append(ov.Teams, *v.(*league.MemberTeam))
		}
	}
	if len(sets) > 2 {
		for _, v := range sets[2] {
			ov.RecentMoves = append(ov.RecentMoves, *v.(*league.Transaction))
		}
	}
	return ov, nil
}

// Standings reads vw_standings for one league, best record first.
func (r *LeagueRepository) Standings(ctx context.Context, leagueID int64) ([]*league.Standing, error) {
	b := filter.New("league_id", "wins", "points_for")
	where, err := b.Where("league_id", filter.Eq, leagueID).Build()
	if err != nil {
		return nil, err
	}
	return QueryView(ctx, r.ex, "vw_standings", mapStanding, ViewOptions{
		Where:   where,
		OrderBy: "wins DESC, points_for DESC",
	})
}

// Exists reports whether a league row exists. The fragment is compile-time
// constant apart from the numeric id.
func (r *LeagueRepository) Exists(ctx context.Context, leagueID int64) (bool, error) {
	return r.ex.Exists(ctx, "vw_leagues", fmt.Sprintf("id = %d", leagueID))
}

func mapMemberTeam(rec *Record) (*league.MemberTeam, error) {
	teamID, err := rec.Int64("team_id")
	if err != nil {
		return nil, err
	}
	ownerID, err := rec.Int64("owner_id")
	if err != nil {
		return nil, err
	}
	return &league.MemberTeam{
		TeamID:    teamID,
		Name:      rec.String("name"),
		OwnerID:   ownerID,
		OwnerName: rec.String("owner_name"),
	}, nil
}

func mapTransaction(rec *Record) (*league.Transaction, error) {
	id, err := rec.Int64("id")
	if err != nil {
		return nil, err
	}
	leagueID, err := rec.Int64("league_id")
	if err != nil {
		return nil, err
	}
	teamID, err := rec.Int64("team_id")
	if err != nil {
		return nil, err
	}
	playerID, err := rec.Int64("player_id")
	if err != nil {
		return nil, err
	}
	return &league.Transaction{
		ID:         id,
		LeagueID:   leagueID,
		TeamID:     teamID,
		TeamName:   rec.String("team_name"),
		PlayerID:   playerID,
		PlayerName: rec.String("player_name"),
		Kind:       rec.String("kind"),
		OccurredAt: rec.Time("occurred_at"),
	}, nil
}

func mapStanding(rec *Record) (*league.Standing, error) {
	teamID, err := rec.Int64("team_id")
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
	return &league.Standing{
		TeamID:        teamID,
		TeamName:      rec.String("team_name"),
		Wins:          wins,
		Losses:        losses,
		Ties:          ties,
		PointsFor:     rec.Float64("points_for"),
		PointsAgainst: rec.Float64("points_against"),
	}, nil
}
