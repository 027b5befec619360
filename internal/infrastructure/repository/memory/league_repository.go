package memory

import (
	"context"
	"sync"

	"github.com/gameswap/gameswap/internal/domain/league"
)

type LeagueRepository struct {
	mu        sync.RWMutex
	leagues   map[string]league.League
	divisions map[string][]league.Division
}

func NewLeagueRepository(leagues []league.League, divisions []league.Division) *LeagueRepository {
	leagueItems := make(map[string]league.League, len(leagues))
	for _, l := range leagues {
		leagueItems[l.ID] = l
	}

	divisionItems := make(map[string][]league.Division)
	for _, d := range divisions {
		divisionItems[d.LeagueID] = append(divisionItems[d.LeagueID], d)
	}

	return &LeagueRepository{
		leagues:   leagueItems,
		divisions: divisionItems,
	}
}

func (r *LeagueRepository) GetLeague(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return l, true, nil
}

func (r *LeagueRepository) ListDivisions(_ context.Context, leagueID string) ([]league.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Division(nil), r.divisions[leagueID]...), nil
}

func (r *LeagueRepository) GetDivision(_ context.Context, leagueID, name string) (league.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.divisions[leagueID] {
		if d.Name == name {
			return d, true, nil
		}
	}
	return league.Division{}, false, nil
}
