package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gameswap/gameswap/internal/domain/swap"
)

// SwapRepository keeps slots and requests in process memory with the same
// conditional-write contract the Postgres adapter honors: an update applies
// only when the caller's version matches the stored one.
type SwapRepository struct {
	mu       sync.RWMutex
	slots    map[string]swap.Slot
	requests map[string]swap.SlotRequest
}

func NewSwapRepository() *SwapRepository {
	return &SwapRepository{
		slots:    make(map[string]swap.Slot),
		requests: make(map[string]swap.SlotRequest),
	}
}

func (r *SwapRepository) CreateSlot(_ context.Context, slot swap.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[slotKey(slot.LeagueID, slot.Division, slot.ID)] = slot
	return nil
}

func (r *SwapRepository) GetSlot(_ context.Context, leagueID, division, slotID string) (swap.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[slotKey(leagueID, division, slotID)]
	if !ok {
		return swap.Slot{}, false, nil
	}
	return slot, true, nil
}

func (r *SwapRepository) ListSlotsByDivision(_ context.Context, leagueID, division string) ([]swap.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]swap.Slot, 0)
	for _, slot := range r.slots {
		if slot.LeagueID == leagueID && slot.Division == division {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (r *SwapRepository) ListConfirmedByTeam(_ context.Context, leagueID, teamID string) ([]swap.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]swap.Slot, 0)
	for _, slot := range r.slots {
		if slot.LeagueID != leagueID || slot.Status != swap.SlotStatusConfirmed {
			continue
		}
		if slot.OfferingTeamID == teamID || slot.ConfirmedTeamID == teamID {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (r *SwapRepository) UpdateSlot(_ context.Context, slot swap.Slot) (swap.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(slot.LeagueID, slot.Division, slot.ID)
	stored, ok := r.slots[key]
	if !ok {
		return swap.Slot{}, swap.ErrVersionMismatch
	}
	if stored.Version != slot.Version {
		return swap.Slot{}, swap.ErrVersionMismatch
	}

	slot.Version++
	r.slots[key] = slot
	return slot, nil
}

func (r *SwapRepository) CreateRequest(_ context.Context, request swap.SlotRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[requestKey(request.LeagueID, request.Division, request.SlotID, request.ID)] = cloneRequest(request)
	return nil
}

func (r *SwapRepository) GetRequest(_ context.Context, leagueID, division, slotID, requestID string) (swap.SlotRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[requestKey(leagueID, division, slotID, requestID)]
	if !ok {
		return swap.SlotRequest{}, false, nil
	}
	return cloneRequest(request), true, nil
}

func (r *SwapRepository) ListRequestsBySlot(_ context.Context, leagueID, division, slotID string) ([]swap.SlotRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]swap.SlotRequest, 0)
	for _, request := range r.requests {
		if request.LeagueID == leagueID && request.Division == division && request.SlotID == slotID {
			out = append(out, cloneRequest(request))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	return out, nil
}

func (r *SwapRepository) UpdateRequest(_ context.Context, request swap.SlotRequest) (swap.SlotRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := requestKey(request.LeagueID, request.Division, request.SlotID, request.ID)
	stored, ok := r.requests[key]
	if !ok {
		return swap.SlotRequest{}, swap.ErrVersionMismatch
	}
	if stored.Version != request.Version {
		return swap.SlotRequest{}, swap.ErrVersionMismatch
	}

	request.Version++
	r.requests[key] = cloneRequest(request)
	return cloneRequest(request), nil
}

func slotKey(leagueID, division, slotID string) string {
	return strings.Join([]string{leagueID, division, slotID}, "::")
}

func requestKey(leagueID, division, slotID, requestID string) string {
	return strings.Join([]string{leagueID, division, slotID, requestID}, "::")
}

func sortSlots(slots []swap.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].GameDate.Equal(slots[j].GameDate) {
			if slots[i].StartMinute == slots[j].StartMinute {
				return slots[i].ID < slots[j].ID
			}
			return slots[i].StartMinute < slots[j].StartMinute
		}
		return slots[i].GameDate.Before(slots[j].GameDate)
	})
}

func cloneRequest(request swap.SlotRequest) swap.SlotRequest {
	copied := request
	if request.DecidedAt != nil {
		decidedAt := *request.DecidedAt
		copied.DecidedAt = &decidedAt
	}
	return copied
}
