package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/domain/league"
	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/domain/team"
	"github.com/gameswap/gameswap/internal/domain/user"
	idgen "github.com/gameswap/gameswap/internal/platform/id"
)

type CreateSlotInput struct {
	LeagueID       string
	Division       string
	OfferingTeamID string
	GameDate       string
	StartTime      string
	EndTime        string
	FieldRef       string
	GameType       string
	Notes          string
}

type ListSlotsInput struct {
	LeagueID string
	Division string
	Status   string
}

// SlotService owns slot creation and cancellation: the Open →
// Confirmed/Cancelled lifecycle and its per-slot guards.
type SlotService struct {
	slots   swap.Repository
	leagues league.Repository
	teams   team.Repository
	fields  field.Catalog
	authz   *AuthzService
	idGen   idgen.Generator
	logger  *slog.Logger
	now     func() time.Time
}

func NewSlotService(
	slots swap.Repository,
	leagues league.Repository,
	teams team.Repository,
	fields field.Catalog,
	authz *AuthzService,
	idGen idgen.Generator,
	logger *slog.Logger,
) *SlotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotService{
		slots:   slots,
		leagues: leagues,
		teams:   teams,
		fields:  fields,
		authz:   authz,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateSlot validates the offer and writes a new slot in status Open.
func (s *SlotService) CreateSlot(ctx context.Context, principal user.Principal, input CreateSlotInput) (swap.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.CreateSlot")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Division = strings.TrimSpace(input.Division)
	input.OfferingTeamID = strings.TrimSpace(input.OfferingTeamID)
	input.FieldRef = strings.TrimSpace(input.FieldRef)
	if input.Division == "" {
		return swap.Slot{}, fmt.Errorf("%w: division is required", ErrInvalidInput)
	}
	if input.OfferingTeamID == "" {
		return swap.Slot{}, fmt.Errorf("%w: offering team id is required", ErrInvalidInput)
	}
	if input.FieldRef == "" {
		return swap.Slot{}, fmt.Errorf("%w: field reference is required", ErrInvalidInput)
	}

	caller, err := s.authz.ResolveCaller(ctx, input.LeagueID, principal)
	if err != nil {
		return swap.Slot{}, err
	}
	if !caller.IsLeagueAdmin() && !caller.CoachOf(input.OfferingTeamID) {
		return swap.Slot{}, fmt.Errorf("%w: only a league admin or the offering team's coach may post a slot", ErrForbidden)
	}

	if _, exists, err := s.leagues.GetDivision(ctx, input.LeagueID, input.Division); err != nil {
		return swap.Slot{}, fmt.Errorf("get division %s: %w", input.Division, err)
	} else if !exists {
		return swap.Slot{}, fmt.Errorf("%w: division %s", ErrNotFound, input.Division)
	}

	offeringTeam, exists, err := s.teams.GetByID(ctx, input.LeagueID, input.OfferingTeamID)
	if err != nil {
		return swap.Slot{}, fmt.Errorf("get offering team %s: %w", input.OfferingTeamID, err)
	}
	if !exists {
		return swap.Slot{}, fmt.Errorf("%w: team %s", ErrNotFound, input.OfferingTeamID)
	}
	if offeringTeam.Division != input.Division {
		return swap.Slot{}, fmt.Errorf("%w: team %s does not play in division %s", ErrInvalidInput, input.OfferingTeamID, input.Division)
	}

	gameDate, startMinute, endMinute, err := parseSlotWindow(input.GameDate, input.StartTime, input.EndTime)
	if err != nil {
		return swap.Slot{}, err
	}

	catalogField, exists, err := s.fields.GetByRef(ctx, input.LeagueID, input.FieldRef)
	if err != nil {
		return swap.Slot{}, fmt.Errorf("resolve field %s: %w", input.FieldRef, err)
	}
	if !exists {
		return swap.Slot{}, fmt.Errorf("%w: field %s", ErrNotFound, input.FieldRef)
	}
	if !catalogField.Active() {
		return swap.Slot{}, fmt.Errorf("%w: field %s is inactive", ErrInvalidInput, input.FieldRef)
	}

	slotID, err := s.idGen.NewID()
	if err != nil {
		return swap.Slot{}, fmt.Errorf("generate slot id: %w", err)
	}

	now := s.now().UTC()
	slot := swap.Slot{
		LeagueID:       input.LeagueID,
		Division:       input.Division,
		ID:             slotID,
		OfferingTeamID: input.OfferingTeamID,
		GameDate:       gameDate,
		StartMinute:    startMinute,
		EndMinute:      endMinute,
		FieldRef:       input.FieldRef,
		GameType:       strings.TrimSpace(input.GameType),
		Notes:          strings.TrimSpace(input.Notes),
		Status:         swap.SlotStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := slot.Validate(); err != nil {
		return swap.Slot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.slots.CreateSlot(ctx, slot); err != nil {
		return swap.Slot{}, fmt.Errorf("create slot: %w", err)
	}

	s.logger.InfoContext(ctx, "slot created",
		"league_id", slot.LeagueID,
		"division", slot.Division,
		"slot_id", slot.ID,
		"offering_team_id", slot.OfferingTeamID,
	)

	return slot, nil
}

// CancelSlot moves a slot to its terminal Cancelled status. Cancelling never
// deletes: the record stays for auditability. The write is conditional on the
// concurrency token read here; a mismatch surfaces as ErrConflict and the
// caller must reload before deciding whether to retry.
func (s *SlotService) CancelSlot(ctx context.Context, principal user.Principal, leagueID, division, slotID string) (swap.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.CancelSlot")
	defer span.End()

	caller, err := s.authz.ResolveCaller(ctx, leagueID, principal)
	if err != nil {
		return swap.Slot{}, err
	}

	slot, exists, err := s.slots.GetSlot(ctx, leagueID, division, slotID)
	if err != nil {
		return swap.Slot{}, fmt.Errorf("get slot %s: %w", slotID, err)
	}
	if !exists {
		return swap.Slot{}, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}

	if slot.Status == swap.SlotStatusCancelled {
		return swap.Slot{}, fmt.Errorf("%w: slot %s is already cancelled", ErrInvalidState, slotID)
	}

	allowed := caller.IsLeagueAdmin() || caller.CoachOf(slot.OfferingTeamID)
	if !allowed && slot.Status == swap.SlotStatusConfirmed {
		allowed = caller.CoachOf(slot.ConfirmedTeamID)
	}
	if !allowed {
		return swap.Slot{}, fmt.Errorf("%w: not allowed to cancel slot %s", ErrForbidden, slotID)
	}

	slot.Status = swap.SlotStatusCancelled
	slot.ConfirmedTeamID = ""
	slot.UpdatedAt = s.now().UTC()

	updated, err := s.slots.UpdateSlot(ctx, slot)
	if err != nil {
		if errors.Is(err, swap.ErrVersionMismatch) {
			return swap.Slot{}, fmt.Errorf("%w: slot %s changed underneath the cancel", ErrConflict, slotID)
		}
		return swap.Slot{}, fmt.Errorf("cancel slot %s: %w", slotID, err)
	}

	s.logger.InfoContext(ctx, "slot cancelled",
		"league_id", leagueID,
		"division", division,
		"slot_id", slotID,
	)

	return updated, nil
}

func (s *SlotService) GetSlot(ctx context.Context, principal user.Principal, leagueID, division, slotID string) (swap.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.GetSlot")
	defer span.End()

	if _, err := s.authz.ResolveCaller(ctx, leagueID, principal); err != nil {
		return swap.Slot{}, err
	}

	slot, exists, err := s.slots.GetSlot(ctx, leagueID, division, slotID)
	if err != nil {
		return swap.Slot{}, fmt.Errorf("get slot %s: %w", slotID, err)
	}
	if !exists {
		return swap.Slot{}, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	return slot, nil
}

// ListSlots returns a division's slots, optionally filtered to one status.
func (s *SlotService) ListSlots(ctx context.Context, principal user.Principal, input ListSlotsInput) ([]swap.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.ListSlots")
	defer span.End()

	input.Division = strings.TrimSpace(input.Division)
	if input.Division == "" {
		return nil, fmt.Errorf("%w: division is required", ErrInvalidInput)
	}
	if _, err := s.authz.ResolveCaller(ctx, input.LeagueID, principal); err != nil {
		return nil, err
	}

	slots, err := s.slots.ListSlotsByDivision(ctx, input.LeagueID, input.Division)
	if err != nil {
		return nil, fmt.Errorf("list slots for division %s: %w", input.Division, err)
	}

	status := strings.TrimSpace(input.Status)
	if status == "" || strings.EqualFold(status, "All") {
		return slots, nil
	}

	filtered := make([]swap.Slot, 0, len(slots))
	for _, slot := range slots {
		if strings.EqualFold(string(slot.Status), status) {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}

func parseSlotWindow(gameDate, startTime, endTime string) (time.Time, int, int, error) {
	date, err := swap.ParseGameDate(strings.TrimSpace(gameDate))
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	startMinute, err := swap.ParseClock(strings.TrimSpace(startTime))
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMinute, err := swap.ParseClock(strings.TrimSpace(endTime))
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if startMinute >= endMinute {
		return time.Time{}, 0, 0, fmt.Errorf("%w: start time must be before end time on the same day", ErrInvalidInput)
	}
	return date, startMinute, endMinute, nil
}
