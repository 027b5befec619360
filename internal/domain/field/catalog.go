package field

import "context"

// Catalog resolves field references against the external fields catalog.
// Slot creation looks a reference up on every call; results are never cached
// by this engine.
type Catalog interface {
	GetByRef(ctx context.Context, leagueID, ref string) (Field, bool, error)
	List(ctx context.Context, leagueID string) ([]Field, error)
}
