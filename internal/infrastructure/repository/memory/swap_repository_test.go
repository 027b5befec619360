package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/gameswap/gameswap/internal/domain/swap"
)

func storedSlot() swap.Slot {
	return swap.Slot{
		LeagueID:       LeagueIDArlington,
		Division:       DivisionName10U,
		ID:             "slot-1",
		OfferingTeamID: "tigers",
		GameDate:       time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC),
		StartMinute:    9 * 60,
		EndMinute:      11 * 60,
		FieldRef:       "gunston/turf",
		Status:         swap.SlotStatusOpen,
	}
}

func TestSwapRepository_UpdateSlot_ConditionalWrite(t *testing.T) {
	repo := NewSwapRepository()
	if err := repo.CreateSlot(t.Context(), storedSlot()); err != nil {
		t.Fatalf("create slot failed: %v", err)
	}

	first, _, err := repo.GetSlot(t.Context(), LeagueIDArlington, DivisionName10U, "slot-1")
	if err != nil {
		t.Fatalf("get slot failed: %v", err)
	}

	first.Status = swap.SlotStatusPending
	updated, err := repo.UpdateSlot(t.Context(), first)
	if err != nil {
		t.Fatalf("update slot failed: %v", err)
	}
	if updated.Version != first.Version+1 {
		t.Fatalf("expected version %d, got %d", first.Version+1, updated.Version)
	}

	// Writing with the pre-update version must fail: the token is stale.
	stale := first
	stale.Status = swap.SlotStatusCancelled
	if _, err := repo.UpdateSlot(t.Context(), stale); !errors.Is(err, swap.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}

	// The failed write leaves the stored record untouched.
	current, _, err := repo.GetSlot(t.Context(), LeagueIDArlington, DivisionName10U, "slot-1")
	if err != nil {
		t.Fatalf("get slot failed: %v", err)
	}
	if current.Status != swap.SlotStatusPending || current.Version != updated.Version {
		t.Fatalf("expected stored %s v%d, got %s v%d",
			swap.SlotStatusPending, updated.Version, current.Status, current.Version)
	}
}

func TestSwapRepository_UpdateSlot_Missing(t *testing.T) {
	repo := NewSwapRepository()
	if _, err := repo.UpdateSlot(t.Context(), storedSlot()); !errors.Is(err, swap.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch for missing slot, got %v", err)
	}
}

func TestSwapRepository_UpdateRequest_ConditionalWrite(t *testing.T) {
	repo := NewSwapRepository()
	request := swap.SlotRequest{
		LeagueID:         LeagueIDArlington,
		Division:         DivisionName10U,
		SlotID:           "slot-1",
		ID:               "req-1",
		RequestingTeamID: "bears",
		Status:           swap.RequestStatusPending,
		RequestedAt:      time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateRequest(t.Context(), request); err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	decidedAt := request.RequestedAt.Add(time.Hour)
	request.Status = swap.RequestStatusApproved
	request.DecidedAt = &decidedAt
	updated, err := repo.UpdateRequest(t.Context(), request)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if updated.Version != 1 {
		t.Fatalf("expected version 1, got %d", updated.Version)
	}

	request.Version = 0
	if _, err := repo.UpdateRequest(t.Context(), request); !errors.Is(err, swap.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestSwapRepository_ListRequestsBySlot_Ordering(t *testing.T) {
	repo := NewSwapRepository()
	base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	for _, r := range []struct {
		id string
		at time.Time
	}{
		{id: "req-c", at: base.Add(2 * time.Minute)},
		{id: "req-a", at: base},
		{id: "req-b", at: base.Add(time.Minute)},
	} {
		err := repo.CreateRequest(t.Context(), swap.SlotRequest{
			LeagueID:         LeagueIDArlington,
			Division:         DivisionName10U,
			SlotID:           "slot-1",
			ID:               r.id,
			RequestingTeamID: "bears",
			Status:           swap.RequestStatusPending,
			RequestedAt:      r.at,
		})
		if err != nil {
			t.Fatalf("create request %s failed: %v", r.id, err)
		}
	}

	requests, err := repo.ListRequestsBySlot(t.Context(), LeagueIDArlington, DivisionName10U, "slot-1")
	if err != nil {
		t.Fatalf("list requests failed: %v", err)
	}
	got := make([]string, 0, len(requests))
	for _, r := range requests {
		got = append(got, r.ID)
	}
	want := []string{"req-a", "req-b", "req-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
