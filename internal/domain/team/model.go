package team

// Team belongs to exactly one division within a league. Which caller may act
// for a team is resolved through membership, not stored here.
type Team struct {
	LeagueID string
	Division string
	ID       string
	Name     string
}
