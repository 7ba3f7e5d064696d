// Package types contains common types used across the application
package types

// Entry is one leaderboard row: an evaluation's position by total score.
type Entry struct {
	Rank       int     `json:"rank"`
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	TotalScore float64 `json:"total_score"`
}
