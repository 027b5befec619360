package postgres

import (
	"time"

	"github.com/gameswap/gameswap/internal/domain/swap"
)

type slotTableModel struct {
	ID              int64      `db:"id"`
	LeagueID        string     `db:"league_id"`
	Division        string     `db:"division"`
	SlotID          string     `db:"slot_id"`
	OfferingTeamID  string     `db:"offering_team_id"`
	GameDate        time.Time  `db:"game_date"`
	StartMinute     int        `db:"start_minute"`
	EndMinute       int        `db:"end_minute"`
	FieldRef        string     `db:"field_ref"`
	GameType        string     `db:"game_type"`
	Notes           string     `db:"notes"`
	Status          string     `db:"status"`
	ConfirmedTeamID *string    `db:"confirmed_team_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	Version         int64      `db:"version"`
}

type slotRequestTableModel struct {
	ID               int64      `db:"id"`
	LeagueID         string     `db:"league_id"`
	Division         string     `db:"division"`
	SlotID           string     `db:"slot_id"`
	RequestID        string     `db:"request_id"`
	RequestingTeamID string     `db:"requesting_team_id"`
	Message          string     `db:"message"`
	Status           string     `db:"status"`
	RequestedAt      time.Time  `db:"requested_at"`
	DecidedAt        *time.Time `db:"decided_at"`
	Version          int64      `db:"version"`
}

func (m slotTableModel) toDomain() swap.Slot {
	slot := swap.Slot{
		LeagueID:       m.LeagueID,
		Division:       m.Division,
		ID:             m.SlotID,
		OfferingTeamID: m.OfferingTeamID,
		GameDate:       m.GameDate.UTC(),
		StartMinute:    m.StartMinute,
		EndMinute:      m.EndMinute,
		FieldRef:       m.FieldRef,
		GameType:       m.GameType,
		Notes:          m.Notes,
		Status:         swap.SlotStatus(m.Status),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
		Version:        m.Version,
	}
	if m.ConfirmedTeamID != nil {
		slot.ConfirmedTeamID = *m.ConfirmedTeamID
	}
	return slot
}

func (m slotRequestTableModel) toDomain() swap.SlotRequest {
	request := swap.SlotRequest{
		LeagueID:         m.LeagueID,
		Division:         m.Division,
		SlotID:           m.SlotID,
		ID:               m.RequestID,
		RequestingTeamID: m.RequestingTeamID,
		Message:          m.Message,
		Status:           swap.RequestStatus(m.Status),
		RequestedAt:      m.RequestedAt.UTC(),
		Version:          m.Version,
	}
	if m.DecidedAt != nil {
		decidedAt := m.DecidedAt.UTC()
		request.DecidedAt = &decidedAt
	}
	return request
}

func nullConfirmedTeamID(slot swap.Slot) *string {
	if slot.ConfirmedTeamID == "" {
		return nil
	}
	confirmed := slot.ConfirmedTeamID
	return &confirmed
}
