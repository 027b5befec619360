package membership

// Role is a caller's standing within one league.
type Role string

const (
	RoleLeagueAdmin Role = "LeagueAdmin"
	RoleCoach       Role = "Coach"
	RoleViewer      Role = "Viewer"
)

// Membership binds a user to a league with a role. TeamID is populated only
// for coaches with a team assignment.
type Membership struct {
	LeagueID string
	UserID   string
	Role     Role
	TeamID   string
}
