package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/domain/swap"
)

// SwapRepository persists slots and requests with an integer version column
// as the concurrency token. Conditional writes are ordinary UPDATEs guarded
// by `version = $current`; zero affected rows means the token went stale.
type SwapRepository struct {
	db *sqlx.DB
}

func NewSwapRepository(db *sqlx.DB) *SwapRepository {
	return &SwapRepository{db: db}
}

func (r *SwapRepository) CreateSlot(ctx context.Context, slot swap.Slot) error {
	const query = `
INSERT INTO slots (
	league_id, division, slot_id, offering_team_id,
	game_date, start_minute, end_minute,
	field_ref, game_type, notes, status, confirmed_team_id,
	created_at, updated_at, version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		slot.LeagueID, slot.Division, slot.ID, slot.OfferingTeamID,
		slot.GameDate, slot.StartMinute, slot.EndMinute,
		slot.FieldRef, slot.GameType, slot.Notes, string(slot.Status), nullConfirmedTeamID(slot),
		slot.CreatedAt, slot.UpdatedAt, slot.Version,
	)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

func (r *SwapRepository) GetSlot(ctx context.Context, leagueID, division, slotID string) (swap.Slot, bool, error) {
	const query = `
SELECT id, league_id, division, slot_id, offering_team_id,
	game_date, start_minute, end_minute,
	field_ref, game_type, notes, status, confirmed_team_id,
	created_at, updated_at, version
FROM slots
WHERE league_id = $1 AND division = $2 AND slot_id = $3`

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, division, slotID); err != nil {
		if isNotFound(err) {
			return swap.Slot{}, false, nil
		}
		return swap.Slot{}, false, fmt.Errorf("get slot: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SwapRepository) ListSlotsByDivision(ctx context.Context, leagueID, division string) ([]swap.Slot, error) {
	const query = `
SELECT id, league_id, division, slot_id, offering_team_id,
	game_date, start_minute, end_minute,
	field_ref, game_type, notes, status, confirmed_team_id,
	created_at, updated_at, version
FROM slots
WHERE league_id = $1 AND division = $2
ORDER BY game_date, start_minute, slot_id`

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID, division); err != nil {
		return nil, fmt.Errorf("list slots by division: %w", err)
	}

	out := make([]swap.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SwapRepository) ListConfirmedByTeam(ctx context.Context, leagueID, teamID string) ([]swap.Slot, error) {
	const query = `
SELECT id, league_id, division, slot_id, offering_team_id,
	game_date, start_minute, end_minute,
	field_ref, game_type, notes, status, confirmed_team_id,
	created_at, updated_at, version
FROM slots
WHERE league_id = $1
  AND status = $2
  AND (offering_team_id = $3 OR confirmed_team_id = $3)
ORDER BY game_date, start_minute, slot_id`

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID, string(swap.SlotStatusConfirmed), teamID); err != nil {
		return nil, fmt.Errorf("list confirmed slots by team: %w", err)
	}

	out := make([]swap.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SwapRepository) UpdateSlot(ctx context.Context, slot swap.Slot) (swap.Slot, error) {
	const query = `
UPDATE slots
SET status = $1,
	confirmed_team_id = $2,
	notes = $3,
	updated_at = $4,
	version = version + 1
WHERE league_id = $5 AND division = $6 AND slot_id = $7 AND version = $8`

	result, err := r.db.ExecContext(ctx, query,
		string(slot.Status), nullConfirmedTeamID(slot), slot.Notes, slot.UpdatedAt,
		slot.LeagueID, slot.Division, slot.ID, slot.Version,
	)
	if err != nil {
		return swap.Slot{}, fmt.Errorf("update slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return swap.Slot{}, fmt.Errorf("update slot rows affected: %w", err)
	}
	if affected == 0 {
		return swap.Slot{}, swap.ErrVersionMismatch
	}

	slot.Version++
	return slot, nil
}

func (r *SwapRepository) CreateRequest(ctx context.Context, request swap.SlotRequest) error {
	const query = `
INSERT INTO slot_requests (
	league_id, division, slot_id, request_id,
	requesting_team_id, message, status,
	requested_at, decided_at, version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		request.LeagueID, request.Division, request.SlotID, request.ID,
		request.RequestingTeamID, request.Message, string(request.Status),
		request.RequestedAt, request.DecidedAt, request.Version,
	)
	if err != nil {
		return fmt.Errorf("insert slot request: %w", err)
	}
	return nil
}

func (r *SwapRepository) GetRequest(ctx context.Context, leagueID, division, slotID, requestID string) (swap.SlotRequest, bool, error) {
	const query = `
SELECT id, league_id, division, slot_id, request_id,
	requesting_team_id, message, status, requested_at, decided_at, version
FROM slot_requests
WHERE league_id = $1 AND division = $2 AND slot_id = $3 AND request_id = $4`

	var row slotRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, division, slotID, requestID); err != nil {
		if isNotFound(err) {
			return swap.SlotRequest{}, false, nil
		}
		return swap.SlotRequest{}, false, fmt.Errorf("get slot request: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SwapRepository) ListRequestsBySlot(ctx context.Context, leagueID, division, slotID string) ([]swap.SlotRequest, error) {
	const query = `
SELECT id, league_id, division, slot_id, request_id,
	requesting_team_id, message, status, requested_at, decided_at, version
FROM slot_requests
WHERE league_id = $1 AND division = $2 AND slot_id = $3
ORDER BY requested_at, request_id`

	var rows []slotRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID, division, slotID); err != nil {
		return nil, fmt.Errorf("list slot requests: %w", err)
	}

	out := make([]swap.SlotRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SwapRepository) UpdateRequest(ctx context.Context, request swap.SlotRequest) (swap.SlotRequest, error) {
	const query = `
UPDATE slot_requests
SET status = $1,
	decided_at = $2,
	version = version + 1
WHERE league_id = $3 AND division = $4 AND slot_id = $5 AND request_id = $6 AND version = $7`

	result, err := r.db.ExecContext(ctx, query,
		string(request.Status), request.DecidedAt,
		request.LeagueID, request.Division, request.SlotID, request.ID, request.Version,
	)
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("update slot request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return swap.SlotRequest{}, fmt.Errorf("update slot request rows affected: %w", err)
	}
	if affected == 0 {
		return swap.SlotRequest{}, swap.ErrVersionMismatch
	}

	request.Version++
	return request, nil
}
