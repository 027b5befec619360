package swap

import (
	"fmt"
	"strings"
	"time"
)

// SlotStatus tracks a slot through its exchange lifecycle. Confirmed and
// Cancelled are terminal; Pending is advisory only (see RequestService).
type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "Open"
	SlotStatusPending   SlotStatus = "Pending"
	SlotStatusConfirmed SlotStatus = "Confirmed"
	SlotStatusCancelled SlotStatus = "Cancelled"
)

// RequestStatus tracks a team's bid on a slot.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusApproved  RequestStatus = "Approved"
	RequestStatusRejected  RequestStatus = "Rejected"
	RequestStatusWithdrawn RequestStatus = "Withdrawn"
)

// Slot is an offered block of field time available for another team to claim.
// GameDate is normalized to UTC midnight; the start/end window is stored as
// minutes from midnight so interval comparison never touches time zones.
type Slot struct {
	LeagueID        string
	Division        string
	ID              string
	OfferingTeamID  string
	GameDate        time.Time
	StartMinute     int
	EndMinute       int
	FieldRef        string
	GameType        string
	Notes           string
	Status          SlotStatus
	ConfirmedTeamID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

func (s Slot) Validate() error {
	if strings.TrimSpace(s.LeagueID) == "" {
		return fmt.Errorf("slot league id is required")
	}
	if strings.TrimSpace(s.Division) == "" {
		return fmt.Errorf("slot division is required")
	}
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("slot id is required")
	}
	if strings.TrimSpace(s.OfferingTeamID) == "" {
		return fmt.Errorf("slot offering team id is required")
	}
	if s.GameDate.IsZero() {
		return fmt.Errorf("slot game date is required")
	}
	if s.StartMinute < 0 || s.EndMinute > minutesPerDay {
		return fmt.Errorf("slot window must fall within a single day")
	}
	if s.StartMinute >= s.EndMinute {
		return fmt.Errorf("slot start time must be before end time")
	}
	if strings.TrimSpace(s.FieldRef) == "" {
		return fmt.Errorf("slot field reference is required")
	}
	if s.Status == SlotStatusConfirmed && s.ConfirmedTeamID == "" {
		return fmt.Errorf("confirmed slot must carry a confirmed team id")
	}
	if s.Status != SlotStatusConfirmed && s.ConfirmedTeamID != "" {
		return fmt.Errorf("non-confirmed slot must not carry a confirmed team id")
	}
	return nil
}

// Terminal reports whether the slot can no longer change state (other than
// a Confirmed slot being cancelled, which CancelSlot handles explicitly).
func (s Slot) Terminal() bool {
	return s.Status == SlotStatusConfirmed || s.Status == SlotStatusCancelled
}

// SlotRequest is a team's bid to claim an open slot. At most one request per
// slot ever reaches Approved; the slot's conditional write enforces that.
type SlotRequest struct {
	LeagueID         string
	Division         string
	SlotID           string
	ID               string
	RequestingTeamID string
	Message          string
	Status           RequestStatus
	RequestedAt      time.Time
	DecidedAt        *time.Time
	Version          int64
}

func (r SlotRequest) Validate() error {
	if strings.TrimSpace(r.LeagueID) == "" {
		return fmt.Errorf("request league id is required")
	}
	if strings.TrimSpace(r.Division) == "" {
		return fmt.Errorf("request division is required")
	}
	if strings.TrimSpace(r.SlotID) == "" {
		return fmt.Errorf("request slot id is required")
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("request id is required")
	}
	if strings.TrimSpace(r.RequestingTeamID) == "" {
		return fmt.Errorf("requesting team id is required")
	}
	return nil
}
