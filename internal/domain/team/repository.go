package team

import "context"

// Repository describes team reference-data reads.
type Repository interface {
	GetByID(ctx context.Context, leagueID, teamID string) (Team, bool, error)
	ListByDivision(ctx context.Context, leagueID, division string) ([]Team, error)
}
