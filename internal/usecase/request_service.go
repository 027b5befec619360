package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/domain/team"
	"github.com/gameswap/gameswap/internal/domain/user"
	idgen "github.com/gameswap/gameswap/internal/platform/id"
)

const defaultSweepWorkers = 4

type CreateRequestInput struct {
	LeagueID         string
	Division         string
	SlotID           string
	RequestingTeamID string
	Message          string
}

// RequestService owns request creation and the single-winner approval
// protocol. Approval is the linearization point of the whole engine: the
// slot's conditional write arbitrates between concurrent approvers, so no
// lock, lease, or queue is needed.
type RequestService struct {
	slots        swap.Repository
	teams        team.Repository
	authz        *AuthzService
	idGen        idgen.Generator
	logger       *slog.Logger
	now          func() time.Time
	sweepWorkers int
}

func NewRequestService(
	slots swap.Repository,
	teams team.Repository,
	authz *AuthzService,
	idGen idgen.Generator,
	logger *slog.Logger,
) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		slots:        slots,
		teams:        teams,
		authz:        authz,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
		sweepWorkers: defaultSweepWorkers,
	}
}

// WithSweepWorkers overrides the reject sweep pool size.
func (s *RequestService) WithSweepWorkers(workers int) *RequestService {
	if workers > 0 {
		s.sweepWorkers = workers
	}
	return s
}

// CreateRequest registers a team's interest in an open slot. Cross-division
// requests are rejected before anything is written.
func (s *RequestService) CreateRequest(ctx context.Context, principal user.Principal, input CreateRequestInput) (swap.SlotRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.CreateRequest")
	defer span.End()

	input.RequestingTeamID = strings.TrimSpace(input.RequestingTeamID)
	if input.RequestingTeamID == "" {
		return swap.SlotRequest{}, fmt.Errorf("%w: requesting team id is required", ErrInvalidInput)
	}

	caller, err := s.authz.ResolveCaller(ctx, input.LeagueID, principal)
	if err != nil {
		return swap.SlotRequest{}, err
	}
	if !caller.IsLeagueAdmin() && !caller.CoachOf(input.RequestingTeamID) {
		return swap.SlotRequest{}, fmt.Errorf("%w: only a league admin or the requesting team's coach may request a slot", ErrForbidden)
	}

	slot, exists, err := s.slots.GetSlot(ctx, input.LeagueID, input.Division, input.SlotID)
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("get slot %s: %w", input.SlotID, err)
	}
	if !exists {
		return swap.SlotRequest{}, fmt.Errorf("%w: slot %s", ErrNotFound, input.SlotID)
	}

	requestingTeam, exists, err := s.teams.GetByID(ctx, input.LeagueID, input.RequestingTeamID)
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("get requesting team %s: %w", input.RequestingTeamID, err)
	}
	if !exists {
		return swap.SlotRequest{}, fmt.Errorf("%w: team %s", ErrNotFound, input.RequestingTeamID)
	}
	if requestingTeam.Division != slot.Division {
		return swap.SlotRequest{}, fmt.Errorf("%w: team %s plays in division %s, slot is in %s",
			ErrDivisionMismatch, requestingTeam.ID, requestingTeam.Division, slot.Division)
	}
	if input.RequestingTeamID == slot.OfferingTeamID {
		return swap.SlotRequest{}, fmt.Errorf("%w: a team cannot request its own slot", ErrInvalidInput)
	}
	if slot.Terminal() {
		return swap.SlotRequest{}, fmt.Errorf("%w: slot %s is %s", ErrInvalidState, slot.ID, slot.Status)
	}

	requestID, err := s.idGen.NewID()
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("generate request id: %w", err)
	}

	request := swap.SlotRequest{
		LeagueID:         input.LeagueID,
		Division:         input.Division,
		SlotID:           slot.ID,
		ID:               requestID,
		RequestingTeamID: input.RequestingTeamID,
		Message:          strings.TrimSpace(input.Message),
		Status:           swap.RequestStatusPending,
		RequestedAt:      s.now().UTC(),
	}
	if err := request.Validate(); err != nil {
		return swap.SlotRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.slots.CreateRequest(ctx, request); err != nil {
		return swap.SlotRequest{}, fmt.Errorf("create slot request: %w", err)
	}

	// Advisory display state only. If the conditional write loses a race the
	// slot is left as-is; correctness rests on Confirmed/Cancelled plus the
	// request status, never on Pending.
	if slot.Status == swap.SlotStatusOpen {
		slot.Status = swap.SlotStatusPending
		slot.UpdatedAt = s.now().UTC()
		if _, err := s.slots.UpdateSlot(ctx, slot); err != nil {
			s.logger.DebugContext(ctx, "advisory pending transition skipped",
				"slot_id", slot.ID,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "slot request created",
		"league_id", input.LeagueID,
		"division", input.Division,
		"slot_id", slot.ID,
		"request_id", request.ID,
		"requesting_team_id", request.RequestingTeamID,
	)

	return request, nil
}

// ApproveRequest confirms exactly one request for a slot. The sequence is:
// re-read both records fresh, check state, check double-booking for both
// teams, then conditionally write the slot using the token from the re-read.
// Whichever approval lands that write first wins; every concurrent attempt
// observes either ErrConflict (stale token) or ErrInvalidState (already
// confirmed on re-read).
func (s *RequestService) ApproveRequest(ctx context.Context, principal user.Principal, leagueID, division, slotID, requestID string) (swap.Slot, swap.SlotRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.ApproveRequest")
	defer span.End()

	caller, err := s.authz.ResolveCaller(ctx, leagueID, principal)
	if err != nil {
		return swap.Slot{}, swap.SlotRequest{}, err
	}

	slot, exists, err := s.slots.GetSlot(ctx, leagueID, division, slotID)
	if err != nil {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("get slot %s: %w", slotID, err)
	}
	if !exists {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}

	if !caller.IsLeagueAdmin() && !caller.CoachOf(slot.OfferingTeamID) {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: only a league admin or the offering team's coach may approve", ErrForbidden)
	}

	request, exists, err := s.slots.GetRequest(ctx, leagueID, division, slotID, requestID)
	if err != nil {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("get request %s: %w", requestID, err)
	}
	if !exists {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}

	if slot.Terminal() {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: slot %s is %s", ErrInvalidState, slot.ID, slot.Status)
	}
	if request.Status != swap.RequestStatusPending {
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: request %s is %s", ErrInvalidState, request.ID, request.Status)
	}

	for _, teamID := range []string{slot.OfferingTeamID, request.RequestingTeamID} {
		confirmed, err := s.slots.ListConfirmedByTeam(ctx, leagueID, teamID)
		if err != nil {
			return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("list confirmed slots for team %s: %w", teamID, err)
		}
		if swap.Overlaps(confirmed, slot.GameDate, slot.StartMinute, slot.EndMinute) {
			return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: team %s already has a confirmed game overlapping %s %s-%s",
				ErrDoubleBooking, teamID, swap.FormatGameDate(slot.GameDate),
				swap.FormatClock(slot.StartMinute), swap.FormatClock(slot.EndMinute))
		}
	}

	now := s.now().UTC()
	slot.Status = swap.SlotStatusConfirmed
	slot.ConfirmedTeamID = request.RequestingTeamID
	slot.UpdatedAt = now

	confirmedSlot, err := s.slots.UpdateSlot(ctx, slot)
	if err != nil {
		if errors.Is(err, swap.ErrVersionMismatch) {
			return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("%w: slot %s was confirmed or cancelled concurrently", ErrConflict, slot.ID)
		}
		return swap.Slot{}, swap.SlotRequest{}, fmt.Errorf("confirm slot %s: %w", slot.ID, err)
	}

	// The slot is confirmed; everything below is best-effort cleanup. A stray
	// Pending request under a Confirmed slot is implicitly moot on every read
	// path, so failures here are logged and swallowed.
	decidedAt := now
	request.Status = swap.RequestStatusApproved
	request.DecidedAt = &decidedAt
	approvedRequest, err := s.slots.UpdateRequest(ctx, request)
	if err != nil {
		s.logger.WarnContext(ctx, "approved request status write failed",
			"slot_id", slot.ID,
			"request_id", request.ID,
			"error", err,
		)
		approvedRequest = request
	}

	s.rejectSiblings(ctx, confirmedSlot, request.ID, decidedAt)

	s.logger.InfoContext(ctx, "slot confirmed",
		"league_id", leagueID,
		"division", division,
		"slot_id", slot.ID,
		"request_id", request.ID,
		"confirmed_team_id", confirmedSlot.ConfirmedTeamID,
	)

	return confirmedSlot, approvedRequest, nil
}

// WithdrawRequest lets the requesting team's coach pull a bid back before a
// decision. Once the slot is terminal the request is moot and withdrawal is
// rejected rather than rewriting history.
func (s *RequestService) WithdrawRequest(ctx context.Context, principal user.Principal, leagueID, division, slotID, requestID string) (swap.SlotRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.WithdrawRequest")
	defer span.End()

	caller, err := s.authz.ResolveCaller(ctx, leagueID, principal)
	if err != nil {
		return swap.SlotRequest{}, err
	}

	request, exists, err := s.slots.GetRequest(ctx, leagueID, division, slotID, requestID)
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("get request %s: %w", requestID, err)
	}
	if !exists {
		return swap.SlotRequest{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}
	if !caller.CoachOf(request.RequestingTeamID) {
		return swap.SlotRequest{}, fmt.Errorf("%w: only the requesting team's coach may withdraw", ErrForbidden)
	}
	if request.Status != swap.RequestStatusPending {
		return swap.SlotRequest{}, fmt.Errorf("%w: request %s is %s", ErrInvalidState, request.ID, request.Status)
	}

	slot, exists, err := s.slots.GetSlot(ctx, leagueID, division, slotID)
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("get slot %s: %w", slotID, err)
	}
	if exists && slot.Terminal() {
		return swap.SlotRequest{}, fmt.Errorf("%w: slot %s is %s", ErrInvalidState, slot.ID, slot.Status)
	}

	decidedAt := s.now().UTC()
	request.Status = swap.RequestStatusWithdrawn
	request.DecidedAt = &decidedAt

	updated, err := s.slots.UpdateRequest(ctx, request)
	if err != nil {
		if errors.Is(err, swap.ErrVersionMismatch) {
			return swap.SlotRequest{}, fmt.Errorf("%w: request %s changed underneath the withdrawal", ErrConflict, request.ID)
		}
		return swap.SlotRequest{}, fmt.Errorf("withdraw request %s: %w", request.ID, err)
	}

	s.logger.InfoContext(ctx, "slot request withdrawn",
		"league_id", leagueID,
		"slot_id", slotID,
		"request_id", requestID,
	)

	return updated, nil
}

func (s *RequestService) ListRequests(ctx context.Context, principal user.Principal, leagueID, division, slotID string) ([]swap.SlotRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.ListRequests")
	defer span.End()

	if _, err := s.authz.ResolveCaller(ctx, leagueID, principal); err != nil {
		return nil, err
	}

	if _, exists, err := s.slots.GetSlot(ctx, leagueID, division, slotID); err != nil {
		return nil, fmt.Errorf("get slot %s: %w", slotID, err)
	} else if !exists {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}

	requests, err := s.slots.ListRequestsBySlot(ctx, leagueID, division, slotID)
	if err != nil {
		return nil, fmt.Errorf("list requests for slot %s: %w", slotID, err)
	}
	return requests, nil
}

// rejectSiblings deterministically moves every other Pending request under a
// freshly confirmed slot to Rejected. Each write is independent best-effort;
// a lost write leaves a moot Pending request, nothing more.
func (s *RequestService) rejectSiblings(ctx context.Context, slot swap.Slot, approvedRequestID string, decidedAt time.Time) {
	siblings, err := s.slots.ListRequestsBySlot(ctx, slot.LeagueID, slot.Division, slot.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "reject sweep list failed", "slot_id", slot.ID, "error", err)
		return
	}

	pending := make([]swap.SlotRequest, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID != approvedRequestID && sibling.Status == swap.RequestStatusPending {
			pending = append(pending, sibling)
		}
	}
	if len(pending) == 0 {
		return
	}

	workers := s.sweepWorkers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		s.logger.WarnContext(ctx, "reject sweep pool create failed", "slot_id", slot.ID, "error", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, sibling := range pending {
		sibling := sibling
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			sibling.Status = swap.RequestStatusRejected
			sibling.DecidedAt = &decidedAt
			if _, err := s.slots.UpdateRequest(ctx, sibling); err != nil {
				s.logger.WarnContext(ctx, "reject sweep write failed",
					"slot_id", slot.ID,
					"request_id", sibling.ID,
					"error", err,
				)
			}
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "reject sweep submit failed",
				"slot_id", slot.ID,
				"request_id", sibling.ID,
				"error", err,
			)
		}
	}
	wg.Wait()
}
