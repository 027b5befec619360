package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/usecase"
)

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRequest")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createRequestRequest
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

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	request, err := h.requestService.CreateRequest(ctx, principal, usecase.CreateRequestInput{
		LeagueID:         leagueID,
		Division:         division,
		SlotID:           slotID,
		RequestingTeamID: req.RequestingTeamID,
		Message:          req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create slot request failed", "user_id", principal.UserID, "division", division, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, requestToDTO(request))
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRequests")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	requests, err := h.requestService.ListRequests(ctx, principal, leagueID, division, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "list slot requests failed", "user_id", principal.UserID, "division", division, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]requestDTO, 0, len(requests))
	for _, request := range requests {
		items = append(items, requestToDTO(request))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveRequest")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	requestID := r.PathValue("requestID")
	slot, request, err := h.requestService.ApproveRequest(ctx, principal, leagueID, division, slotID, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "approve slot request failed",
			"user_id", principal.UserID,
			"division", division,
			"slot_id", slotID,
			"request_id", requestID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, approvalDTO{
		Slot:    slotToDTO(slot),
		Request: requestToDTO(request),
	})
}

func (h *Handler) WithdrawRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawRequest")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	slotID := r.PathValue("slotID")
	requestID := r.PathValue("requestID")
	request, err := h.requestService.WithdrawRequest(ctx, principal, leagueID, division, slotID, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "withdraw slot request failed",
			"user_id", principal.UserID,
			"division", division,
			"slot_id", slotID,
			"request_id", requestID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, requestToDTO(request))
}

type createRequestRequest struct {
	RequestingTeamID string `json:"requestingTeamId" validate:"required,max=64"`
	Message          string `json:"message" validate:"omitempty,max=500"`
}

type requestDTO struct {
	Division         string `json:"division"`
	SlotID           string `json:"slotId"`
	RequestID        string `json:"requestId"`
	RequestingTeamID string `json:"requestingTeamId"`
	Message          string `json:"message,omitempty"`
	Status           string `json:"status"`
	RequestedAt      string `json:"requestedAt"`
	DecidedAt        string `json:"decidedAt,omitempty"`
	Version          int64  `json:"version"`
}

type approvalDTO struct {
	Slot    slotDTO    `json:"slot"`
	Request requestDTO `json:"request"`
}

func requestToDTO(request swap.SlotRequest) requestDTO {
	decidedAt := ""
	if request.DecidedAt != nil {
		decidedAt = request.DecidedAt.UTC().Format(time.RFC3339)
	}
	return requestDTO{
		Division:         request.Division,
		SlotID:           request.SlotID,
		RequestID:        request.ID,
		RequestingTeamID: request.RequestingTeamID,
		Message:          request.Message,
		Status:           string(request.Status),
		RequestedAt:      request.RequestedAt.UTC().Format(time.RFC3339),
		DecidedAt:        decidedAt,
		Version:          request.Version,
	}
}
