package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gameswap/gameswap/internal/domain/membership"
)

type MembershipRepository struct {
	mu    sync.RWMutex
	items map[string]membership.Membership
}

func NewMembershipRepository(memberships []membership.Membership) *MembershipRepository {
	items := make(map[string]membership.Membership, len(memberships))
	for _, m := range memberships {
		items[m.LeagueID+"::"+m.UserID] = m
	}
	return &MembershipRepository{items: items}
}

func (r *MembershipRepository) GetByUser(_ context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[leagueID+"::"+userID]
	if !ok {
		return membership.Membership{}, false, nil
	}
	return m, true, nil
}

func (r *MembershipRepository) ListByUser(_ context.Context, userID string) ([]membership.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Membership, 0)
	for _, m := range r.items {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeagueID < out[j].LeagueID })
	return out, nil
}
