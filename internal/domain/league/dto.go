// internal/domain/league/dto.go
package league

// CreateRequest creates a new league for the current season.
type CreateRequest struct {
	Name       string   `json:"name" binding:"required"`
	SeasonID   int64    `json:"season_id" binding:"required"`
	MaxTeams   int      `json:"max_teams" binding:"required,min=2,max=20"`
	InviteOnly bool     `json:"invite_only"`
	Scoring    []string `json:"scoring,omitempty"` // scoring rule codes, store-validated
}

// JoinRequest joins a league by invite code, creating the caller's team.
type JoinRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
	TeamName   string `json:"team_name" binding:"required"`
}

// ListFilters narrows the league listing.
type ListFilters struct {
	SeasonID   int64
	InviteOnly *bool
	Limit      int
}
