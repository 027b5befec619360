package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gameswap/gameswap/internal/domain/field"
)

// FieldRepository doubles as the fields catalog for dev and test wiring.
type FieldRepository struct {
	mu    sync.RWMutex
	items map[string]field.Field
}

func NewFieldRepository(fields []field.Field) *FieldRepository {
	items := make(map[string]field.Field, len(fields))
	for _, f := range fields {
		items[f.LeagueID+"::"+f.Ref] = f
	}
	return &FieldRepository{items: items}
}

func (r *FieldRepository) GetByRef(_ context.Context, leagueID, ref string) (field.Field, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[leagueID+"::"+ref]
	if !ok {
		return field.Field{}, false, nil
	}
	return f, true, nil
}

func (r *FieldRepository) List(_ context.Context, leagueID string) ([]field.Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]field.Field, 0)
	for _, f := range r.items {
		if f.LeagueID == leagueID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out, nil
}
