package usecase

import (
	"errors"
	"testing"

	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/domain/user"
)

func (f *swapFixture) createRequest(t *testing.T, principal user.Principal, slot swap.Slot, teamID string) swap.SlotRequest {
	t.Helper()

	request, err := f.reqSvc.CreateRequest(t.Context(), principal, CreateRequestInput{
		LeagueID:         slot.LeagueID,
		Division:         slot.Division,
		SlotID:           slot.ID,
		RequestingTeamID: teamID,
	})
	if err != nil {
		t.Fatalf("create request for %s failed: %v", teamID, err)
	}
	return request
}

func TestRequestService_CreateRequest(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())

	request, err := f.reqSvc.CreateRequest(t.Context(), principalCoachBears, CreateRequestInput{
		LeagueID:         slot.LeagueID,
		Division:         slot.Division,
		SlotID:           slot.ID,
		RequestingTeamID: "bears",
		Message:          "we can bring the bases",
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if request.Status != swap.RequestStatusPending {
		t.Fatalf("expected Pending, got %s", request.Status)
	}
	if request.DecidedAt != nil {
		t.Fatalf("expected no decision timestamp, got %v", request.DecidedAt)
	}

	// A first request moves the slot to its advisory Pending display state.
	stored, _, err := f.slots.GetSlot(t.Context(), slot.LeagueID, slot.Division, slot.ID)
	if err != nil {
		t.Fatalf("get slot failed: %v", err)
	}
	if stored.Status != swap.SlotStatusPending {
		t.Fatalf("expected slot Pending after first request, got %s", stored.Status)
	}
}

func TestRequestService_CreateRequest_Guards(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())

	// Cross-division requests fail closed before anything is written.
	_, err := f.reqSvc.CreateRequest(t.Context(), principalCoachHawks, CreateRequestInput{
		LeagueID:         slot.LeagueID,
		Division:         slot.Division,
		SlotID:           slot.ID,
		RequestingTeamID: "hawks",
	})
	if !errors.Is(err, ErrDivisionMismatch) {
		t.Fatalf("expected ErrDivisionMismatch, got %v", err)
	}

	_, err = f.reqSvc.CreateRequest(t.Context(), principalCoachTigers, CreateRequestInput{
		LeagueID:         slot.LeagueID,
		Division:         slot.Division,
		SlotID:           slot.ID,
		RequestingTeamID: "tigers",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for own-slot request, got %v", err)
	}

	_, err = f.reqSvc.CreateRequest(t.Context(), principalCoachBears, CreateRequestInput{
		LeagueID:         slot.LeagueID,
		Division:         slot.Division,
		SlotID:           slot.ID,
		RequestingTeamID: "wolves",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another team's coach, got %v", err)
	}

	requests, err := f.slots.ListRequestsBySlot(t.Context(), slot.LeagueID, slot.Division, slot.ID)
	if err != nil {
		t.Fatalf("list requests failed: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no requests written by failed creates, got %d", len(requests))
	}

	cancelled, err := f.slotSvc.CancelSlot(t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID)
	if err != nil {
		t.Fatalf("cancel slot failed: %v", err)
	}
	_, err = f.reqSvc.CreateRequest(t.Context(), principalCoachBears, CreateRequestInput{
		LeagueID:         cancelled.LeagueID,
		Division:         cancelled.Division,
		SlotID:           cancelled.ID,
		RequestingTeamID: "bears",
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for cancelled slot, got %v", err)
	}
}

func TestRequestService_ApproveRequest_SingleWinner(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())

	bearsRequest := f.createRequest(t, principalCoachBears, slot, "bears")
	wolvesRequest := f.createRequest(t, principalCoachWolves, slot, "wolves")

	confirmedSlot, approved, err := f.reqSvc.ApproveRequest(
		t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID, bearsRequest.ID)
	if err != nil {
		t.Fatalf("approve request failed: %v", err)
	}
	if confirmedSlot.Status != swap.SlotStatusConfirmed {
		t.Fatalf("expected Confirmed, got %s", confirmedSlot.Status)
	}
	if confirmedSlot.ConfirmedTeamID != "bears" {
		t.Fatalf("expected confirmed team bears, got %s", confirmedSlot.ConfirmedTeamID)
	}
	if approved.Status != swap.RequestStatusApproved || approved.DecidedAt == nil {
		t.Fatalf("expected Approved with decision timestamp, got %s %v", approved.Status, approved.DecidedAt)
	}

	// The sibling request is swept to Rejected with the same decision time.
	sibling, _, err := f.slots.GetRequest(t.Context(), slot.LeagueID, slot.Division, slot.ID, wolvesRequest.ID)
	if err != nil {
		t.Fatalf("get sibling request failed: %v", err)
	}
	if sibling.Status != swap.RequestStatusRejected {
		t.Fatalf("expected sibling Rejected, got %s", sibling.Status)
	}
	if sibling.DecidedAt == nil || !sibling.DecidedAt.Equal(*approved.DecidedAt) {
		t.Fatalf("expected sibling decided at %v, got %v", approved.DecidedAt, sibling.DecidedAt)
	}

	// A second approval on the same slot is rejected outright.
	_, _, err = f.reqSvc.ApproveRequest(
		t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID, wolvesRequest.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for second approval, got %v", err)
	}
}

func TestRequestService_ApproveRequest_Guards(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())
	request := f.createRequest(t, principalCoachBears, slot, "bears")

	_, _, err := f.reqSvc.ApproveRequest(
		t.Context(), principalCoachBears, slot.LeagueID, slot.Division, slot.ID, request.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for requesting coach approving, got %v", err)
	}

	_, _, err = f.reqSvc.ApproveRequest(
		t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown request, got %v", err)
	}

	withdrawn, err := f.reqSvc.WithdrawRequest(
		t.Context(), principalCoachBears, slot.LeagueID, slot.Division, slot.ID, request.ID)
	if err != nil {
		t.Fatalf("withdraw request failed: %v", err)
	}
	_, _, err = f.reqSvc.ApproveRequest(
		t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID, withdrawn.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState approving withdrawn request, got %v", err)
	}
}

func TestRequestService_ApproveRequest_DoubleBooking(t *testing.T) {
	f := newSwapFixture(t)

	// Bears confirm a saturday morning commitment on tigers' slot.
	firstSlot := f.createSlot(t, principalCoachTigers, tigersSlotInput())
	firstRequest := f.createRequest(t, principalCoachBears, firstSlot, "bears")
	if _, _, err := f.reqSvc.ApproveRequest(
		t.Context(), principalCoachTigers, firstSlot.LeagueID, firstSlot.Division, firstSlot.ID, firstRequest.ID); err != nil {
		t.Fatalf("approve first request failed: %v", err)
	}

	// Wolves offer an overlapping window the same morning.
	overlapping := tigersSlotInput()
	overlapping.OfferingTeamID = "wolves"
	overlapping.StartTime = "10:00"
	overlapping.EndTime = "12:00"
	overlapping.FieldRef = "barcroft/field-6"
	secondSlot := f.createSlot(t, principalCoachWolves, overlapping)
	secondRequest := f.createRequest(t, principalCoachBears, secondSlot, "bears")

	_, _, err := f.reqSvc.ApproveRequest(
		t.Context(), principalCoachWolves, secondSlot.LeagueID, secondSlot.Division, secondSlot.ID, secondRequest.ID)
	if !errors.Is(err, ErrDoubleBooking) {
		t.Fatalf("expected ErrDoubleBooking, got %v", err)
	}

	// The failed approval leaves both records untouched.
	slotAfter, _, err := f.slots.GetSlot(t.Context(), secondSlot.LeagueID, secondSlot.Division, secondSlot.ID)
	if err != nil {
		t.Fatalf("get slot failed: %v", err)
	}
	if slotAfter.Status == swap.SlotStatusConfirmed {
		t.Fatalf("expected slot not confirmed, got %s", slotAfter.Status)
	}
	requestAfter, _, err := f.slots.GetRequest(t.Context(), secondSlot.LeagueID, secondSlot.Division, secondSlot.ID, secondRequest.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if requestAfter.Status != swap.RequestStatusPending {
		t.Fatalf("expected request still Pending, got %s", requestAfter.Status)
	}

	// A back-to-back window is fine: intervals are half-open.
	adjacent := tigersSlotInput()
	adjacent.OfferingTeamID = "wolves"
	adjacent.StartTime = "11:00"
	adjacent.EndTime = "13:00"
	adjacent.FieldRef = "barcroft/field-6"
	thirdSlot := f.createSlot(t, principalCoachWolves, adjacent)
	thirdRequest := f.createRequest(t, principalCoachBears, thirdSlot, "bears")
	if _, _, err := f.reqSvc.ApproveRequest(
		t.Context(), principalCoachWolves, thirdSlot.LeagueID, thirdSlot.Division, thirdSlot.ID, thirdRequest.ID); err != nil {
		t.Fatalf("expected back-to-back approval to succeed, got %v", err)
	}
}

func TestRequestService_WithdrawRequest(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())
	request := f.createRequest(t, principalCoachBears, slot, "bears")

	// Only the requesting team's coach may withdraw, admins included.
	_, err := f.reqSvc.WithdrawRequest(t.Context(), principalAdmin, slot.LeagueID, slot.Division, slot.ID, request.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin withdraw, got %v", err)
	}

	withdrawn, err := f.reqSvc.WithdrawRequest(t.Context(), principalCoachBears, slot.LeagueID, slot.Division, slot.ID, request.ID)
	if err != nil {
		t.Fatalf("withdraw request failed: %v", err)
	}
	if withdrawn.Status != swap.RequestStatusWithdrawn || withdrawn.DecidedAt == nil {
		t.Fatalf("expected Withdrawn with decision timestamp, got %s %v", withdrawn.Status, withdrawn.DecidedAt)
	}

	_, err = f.reqSvc.WithdrawRequest(t.Context(), principalCoachBears, slot.LeagueID, slot.Division, slot.ID, request.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on second withdraw, got %v", err)
	}
}

func TestRequestService_WithdrawRequest_TerminalSlot(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())
	bearsRequest := f.createRequest(t, principalCoachBears, slot, "bears")
	wolvesRequest := f.createRequest(t, principalCoachWolves, slot, "wolves")

	if _, err := f.slotSvc.CancelSlot(t.Context(), principalCoachTigers, slot.LeagueID, slot.Division, slot.ID); err != nil {
		t.Fatalf("cancel slot failed: %v", err)
	}

	_, err := f.reqSvc.WithdrawRequest(t.Context(), principalCoachBears, slot.LeagueID, slot.Division, slot.ID, bearsRequest.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState withdrawing under cancelled slot, got %v", err)
	}

	_, err = f.reqSvc.WithdrawRequest(t.Context(), principalCoachWolves, slot.LeagueID, slot.Division, slot.ID, wolvesRequest.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState withdrawing under cancelled slot, got %v", err)
	}
}

func TestRequestService_ListRequests(t *testing.T) {
	f := newSwapFixture(t)
	slot := f.createSlot(t, principalCoachTigers, tigersSlotInput())
	f.createRequest(t, principalCoachBears, slot, "bears")
	f.createRequest(t, principalCoachWolves, slot, "wolves")

	requests, err := f.reqSvc.ListRequests(t.Context(), principalViewer, slot.LeagueID, slot.Division, slot.ID)
	if err != nil {
		t.Fatalf("list requests failed: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}

	_, err = f.reqSvc.ListRequests(t.Context(), principalViewer, slot.LeagueID, slot.Division, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown slot, got %v", err)
	}
}

