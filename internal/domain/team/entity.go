// internal/domain/team/entity.go
package team

// Team is one owner's team within a league.
type Team struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"league_id"`
	OwnerID  int64  `json:"owner_id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Ties     int    `json:"ties"`
}

// RosterSlot is one player held by a team.
type RosterSlot struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	NFLTeam    string `json:"nfl_team"`
	Starter    bool   `json:"starter"`
}
