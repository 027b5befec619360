package membership

import "context"

// Repository describes membership reads. Membership records are maintained by
// external admin tooling; the engine re-reads them on every mutating call
// rather than caching resolved roles.
type Repository interface {
	GetByUser(ctx context.Context, leagueID, userID string) (Membership, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
}
