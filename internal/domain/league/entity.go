// internal/domain/league/entity.go
package league

import (
	"time"

	"github.com/google/uuid"
)

// League is one fantasy league within a season.
type League struct {
	ID             int64     `json:"id"`
	ExternalID     uuid.UUID `json:"external_id"`
	Name           string    `json:"name"`
	SeasonID       int64     `json:"season_id"`
	CommissionerID int64     `json:"commissioner_id"`
	MaxTeams       int       `json:"max_teams"`
	TeamCount      int       `json:"team_count"`
	InviteOnly     bool      `json:"invite_only"`
	CreatedAt      time.Time `json:"created_at"`
}

// Standing is one row of a league table.
type Standing struct {
	TeamID        int64   `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// MemberTeam is a league-overview row for one member team.
type MemberTeam struct {
	TeamID    int64  `json:"team_id"`
	Name      string `json:"name"`
	OwnerID   int64  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
}

// Transaction is one roster move recorded against a league.
type Transaction struct {
	ID         int64     `json:"id"`
	LeagueID   int64     `json:"league_id"`
	TeamID     int64     `json:"team_id"`
	TeamName   string    `json:"team_name"`
	PlayerID   int64     `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Kind       string    `json:"kind"` // add, drop, trade
	OccurredAt time.Time `json:"occurred_at"`
}

// Overview bundles the three result sets of the league_overview procedure.
type Overview struct {
	League       *League       `json:"league"`
	Teams        []MemberTeam  `json:"teams"`
	RecentMoves  []Transaction `json:"recent_moves"`
}

// JoinOutcome is the typed decoding of the league_join output parameters.
type JoinOutcome struct {
	OK       bool
	Message  string
	TeamID   int64
	LeagueID int64
}
