// internal/domain/player/entity.go
package player

// Player is NFL reference data, read-only to this service.
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	NFLTeam  string `json:"nfl_team"`
	ByeWeek  int    `json:"bye_week"`
	Status   string `json:"status"` // active, injured, out
}

// SearchFilters narrows a player search. NamePrefix is compiled through the
// filter builder, never concatenated raw.
type SearchFilters struct {
	Positions  []string
	NFLTeam    string
	NamePrefix string
	Limit      int
}
