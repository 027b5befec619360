package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/gameswap/gameswap/internal/domain/swap"
)

func TestSlotTableModelToDomain(t *testing.T) {
	t.Run("maps confirmed slot", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		confirmed := "bears"
		model := slotTableModel{
			LeagueID:        "arlington-girls-softball",
			Division:        "10U",
			SlotID:          "slot-001",
			OfferingTeamID:  "tigers",
			GameDate:        time.Date(2026, 4, 18, 0, 0, 0, 0, loc),
			StartMinute:     540,
			EndMinute:       660,
			FieldRef:        "gunston/turf",
			Status:          "Confirmed",
			ConfirmedTeamID: &confirmed,
			Version:         3,
		}

		got := model.toDomain()
		if got.Status != swap.SlotStatusConfirmed {
			t.Fatalf("status = %q, want %q", got.Status, swap.SlotStatusConfirmed)
		}
		if got.ConfirmedTeamID != "bears" {
			t.Fatalf("confirmed team = %q, want bears", got.ConfirmedTeamID)
		}
		if got.GameDate.Location() != time.UTC {
			t.Fatalf("game date location = %v, want UTC", got.GameDate.Location())
		}
		if got.Version != 3 {
			t.Fatalf("version = %d, want 3", got.Version)
		}
	})

	t.Run("nil confirmed team maps to empty string", func(t *testing.T) {
		got := slotTableModel{SlotID: "slot-002", Status: "Open"}.toDomain()
		if got.ConfirmedTeamID != "" {
			t.Fatalf("confirmed team = %q, want empty", got.ConfirmedTeamID)
		}
	})
}

func TestSlotRequestTableModelToDomain(t *testing.T) {
	decided := time.Date(2026, 4, 11, 15, 0, 0, 0, time.FixedZone("EST", -5*3600))
	model := slotRequestTableModel{
		RequestID: "req-001",
		Status:    "Approved",
		DecidedAt: &decided,
	}

	got := model.toDomain()
	if got.Status != swap.RequestStatusApproved {
		t.Fatalf("status = %q, want %q", got.Status, swap.RequestStatusApproved)
	}
	if got.DecidedAt == nil {
		t.Fatal("decided at = nil, want value")
	}
	if got.DecidedAt.Location() != time.UTC {
		t.Fatalf("decided at location = %v, want UTC", got.DecidedAt.Location())
	}

	if pending := (slotRequestTableModel{RequestID: "req-002", Status: "Pending"}).toDomain(); pending.DecidedAt != nil {
		t.Fatalf("pending decided at = %v, want nil", pending.DecidedAt)
	}
}

func TestNullConfirmedTeamID(t *testing.T) {
	if got := nullConfirmedTeamID(swap.Slot{}); got != nil {
		t.Fatalf("expected nil for open slot, got %q", *got)
	}
	got := nullConfirmedTeamID(swap.Slot{ConfirmedTeamID: "bears"})
	if got == nil || *got != "bears" {
		t.Fatalf("unexpected confirmed team pointer: %v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}
