package swap

import (
	"context"
	"errors"
)

// ErrVersionMismatch is returned by conditional writes when the stored record
// changed since it was read. The store's conditional write is the single
// arbitration point for concurrent approvals; callers translate this into
// their own conflict error and never retry blindly.
var ErrVersionMismatch = errors.New("stored record version does not match")

// Repository describes slot and slot-request persistence needs from use
// cases. Writes carrying a Version are conditional: the update applies only
// if the stored version still equals it, and the returned record carries the
// bumped version.
type Repository interface {
	CreateSlot(ctx context.Context, slot Slot) error
	GetSlot(ctx context.Context, leagueID, division, slotID string) (Slot, bool, error)
	ListSlotsByDivision(ctx context.Context, leagueID, division string) ([]Slot, error)
	// ListConfirmedByTeam returns every Confirmed slot, league-wide, in which
	// the team is committed either as offerer or as the confirmed claimant.
	ListConfirmedByTeam(ctx context.Context, leagueID, teamID string) ([]Slot, error)
	UpdateSlot(ctx context.Context, slot Slot) (Slot, error)

	CreateRequest(ctx context.Context, request SlotRequest) error
	GetRequest(ctx context.Context, leagueID, division, slotID, requestID string) (SlotRequest, bool, error)
	ListRequestsBySlot(ctx context.Context, leagueID, division, slotID string) ([]SlotRequest, error)
	UpdateRequest(ctx context.Context, request SlotRequest) (SlotRequest, error)
}
