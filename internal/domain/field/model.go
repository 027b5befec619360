package field

// Status mirrors the canonical field statuses from the fields catalog.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Field identifies a physical location from the external fields catalog,
// e.g. a named surface inside a park. Ref is the opaque catalog key slots
// point at ("gunston/turf").
type Field struct {
	LeagueID string
	Ref      string
	Park     string
	Name     string
	Status   Status
}

func (f Field) Active() bool {
	return f.Status == StatusActive
}
