// internal/domain/season/entity.go
package season

import "time"

// Season is one NFL season.
type Season struct {
	ID          int64  `json:"id"`
	Year        int    `json:"year"`
	Label       string `json:"label"`
	CurrentWeek int    `json:"current_week"`
}

// Week is one scoring period within a season.
type Week struct {
	ID       int64     `json:"id"`
	SeasonID int64     `json:"season_id"`
	Number   int       `json:"number"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}
