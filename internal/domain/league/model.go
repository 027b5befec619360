package league

import "fmt"

// League is the tenant boundary; every other record is scoped by one.
// Leagues are administered by external tooling and read-only here.
type League struct {
	ID   string
	Name string
}

// Division is a named competitive bracket within a league. It scopes team and
// slot compatibility for swaps.
type Division struct {
	LeagueID string
	Name     string
}

func (d Division) Validate() error {
	if d.LeagueID == "" {
		return fmt.Errorf("division league id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("division name is required")
	}
	return nil
}
