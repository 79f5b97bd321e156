// internal/domain/team/dto.go
package team

// RenameRequest changes a team name.
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// RosterMoveRequest adds or drops one player.
type RosterMoveRequest struct {
	PlayerID int64 `json:"player_id" binding:"required"`
}

// LineupRequest declares the starters for the coming week.
type LineupRequest struct {
	Starters []int64 `json:"starters" binding:"required"`
}
