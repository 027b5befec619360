package league

import "context"

// Repository describes league reference-data reads. The data is maintained by
// external admin tooling; this engine never writes it.
type Repository interface {
	GetLeague(ctx context.Context, leagueID string) (League, bool, error)
	ListDivisions(ctx context.Context, leagueID string) ([]Division, error)
	GetDivision(ctx context.Context, leagueID, name string) (Division, bool, error)
}
