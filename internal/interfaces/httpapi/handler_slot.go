package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/usecase"
)

func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSlot")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSlotRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slot, err := h.slotService.CreateSlot(ctx, principal, usecase.CreateSlotInput{
		LeagueID:       leagueID,
		Division:       req.Division,
		OfferingTeamID: req.OfferingTeamID,
		GameDate:       req.GameDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		FieldRef:       req.Field,
		GameType:       req.GameType,
		Notes:          req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create slot failed", "user_id", principal.UserID, "division", req.Division, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, slotToDTO(slot))
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlots")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	slots, err := h.slotService.ListSlots(ctx, principal, usecase.ListSlotsInput{
		LeagueID: leagueID,
		Division: r.URL.Query().Get("division"),
		Status:   r.URL.Query().Get("status"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list slots failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		items = append(items, slotToDTO(slot))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSlot")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	slot, err := h.slotService.GetSlot(ctx, principal, leagueID, division, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "get slot failed", "user_id", principal.UserID, "division", division, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(slot))
}

func (h *Handler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSlot")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	slot, err := h.slotService.CancelSlot(ctx, principal, leagueID, division, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel slot failed", "user_id", principal.UserID, "division", division, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(slot))
}

type createSlotRequest struct {
	Division       string `json:"division" validate:"required,max=64"`
	OfferingTeamID string `json:"offeringTeamId" validate:"required,max=64"`
	GameDate       string `json:"gameDate" validate:"required"`
	StartTime      string `json:"startTime" validate:"required"`
	EndTime        string `json:"endTime" validate:"required"`
	Field          string `json:"field" validate:"required,max=128"`
	GameType       string `json:"gameType" validate:"omitempty,max=64"`
	Notes          string `json:"notes" validate:"omitempty,max=500"`
}

type slotDTO struct {
	Division        string `json:"division"`
	SlotID          string `json:"slotId"`
	OfferingTeamID  string `json:"offeringTeamId"`
	GameDate        string `json:"gameDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Field           string `json:"field"`
	GameType        string `json:"gameType,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Status          string `json:"status"`
	ConfirmedTeamID string `json:"confirmedTeamId,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	Version         int64  `json:"version"`
}

func slotToDTO(slot swap.Slot) slotDTO {
	return slotDTO{
		Division:        slot.Division,
		SlotID:          slot.ID,
		OfferingTeamID:  slot.OfferingTeamID,
		GameDate:        swap.FormatGameDate(slot.GameDate),
		StartTime:       swap.FormatClock(slot.StartMinute),
		EndTime:         swap.FormatClock(slot.EndMinute),
		Field:           slot.FieldRef,
		GameType:        slot.GameType,
		Notes:           slot.Notes,
		Status:          string(slot.Status),
		ConfirmedTeamID: slot.ConfirmedTeamID,
		CreatedAt:       slot.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       slot.UpdatedAt.UTC().Format(time.RFC3339),
		Version:         slot.Version,
	}
}
