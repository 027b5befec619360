package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gameswap/gameswap/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		items[t.LeagueID+"::"+t.ID] = t
	}
	return &TeamRepository{items: items}
}

func (r *TeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[leagueID+"::"+teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return t, true, nil
}

func (r *TeamRepository) ListByDivision(_ context.Context, leagueID, division string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.items {
		if t.LeagueID == leagueID && t.Division == division {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
