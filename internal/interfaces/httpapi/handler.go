package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gameswap/gameswap/internal/domain/user"
	"github.com/gameswap/gameswap/internal/usecase"
)

type Handler struct {
	slotService      *usecase.SlotService
	requestService   *usecase.RequestService
	referenceService *usecase.ReferenceService
	authzService     *usecase.AuthzService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	slotService *usecase.SlotService,
	requestService *usecase.RequestService,
	referenceService *usecase.ReferenceService,
	authzService *usecase.AuthzService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		slotService:      slotService,
		requestService:   requestService,
		referenceService: referenceService,
		authzService:     authzService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthenticated))
		return
	}

	memberships, err := h.authzService.ListMemberships(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list memberships failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]membershipDTO, 0, len(memberships))
	for _, m := range memberships {
		items = append(items, membershipDTO{
			LeagueID: m.LeagueID,
			Role:     string(m.Role),
			TeamID:   m.TeamID,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, meDTO{
		UserID:      principal.UserID,
		Email:       principal.Email,
		Memberships: items,
	})
}

// requestScope pulls the principal and league the middlewares stored; both
// middlewares run on every league route, so absence is a wiring bug.
func (h *Handler) requestScope(ctx context.Context) (user.Principal, string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, "", fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthenticated)
	}
	leagueID, ok := leagueIDFromContext(ctx)
	if !ok {
		return user.Principal{}, "", fmt.Errorf("%w: league id is missing from request context", usecase.ErrInvalidInput)
	}
	return principal, leagueID, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type meDTO struct {
	UserID      string          `json:"userId"`
	Email       string          `json:"email,omitempty"`
	Memberships []membershipDTO `json:"memberships"`
}

type membershipDTO struct {
	LeagueID string `json:"leagueId"`
	Role     string `json:"role"`
	TeamID   string `json:"teamId,omitempty"`
}
