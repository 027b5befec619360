package httpapi

import (
	"net/http"

	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/domain/league"
	"github.com/gameswap/gameswap/internal/domain/team"
)

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	divisions, err := h.referenceService.ListDivisions(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list divisions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]divisionDTO, 0, len(divisions))
	for _, d := range divisions {
		items = append(items, divisionToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	division := r.PathValue("division")
	teams, err := h.referenceService.ListTeams(ctx, principal, leagueID, division)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.UserID, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFields")
	defer span.End()

	principal, leagueID, err := h.requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fields, err := h.referenceService.ListFields(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fields failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fieldDTO, 0, len(fields))
	for _, f := range fields {
		items = append(items, fieldToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type divisionDTO struct {
	Name string `json:"name"`
}

type teamDTO struct {
	Division string `json:"division"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
}

type fieldDTO struct {
	Ref    string `json:"ref"`
	Park   string `json:"park"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func divisionToDTO(d league.Division) divisionDTO {
	return divisionDTO{Name: d.Name}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		Division: t.Division,
		TeamID:   t.ID,
		Name:     t.Name,
	}
}

func fieldToDTO(f field.Field) fieldDTO {
	return fieldDTO{
		Ref:    f.Ref,
		Park:   f.Park,
		Name:   f.Name,
		Status: string(f.Status),
	}
}
