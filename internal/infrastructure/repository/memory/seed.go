package memory

import (
	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/domain/league"
	"github.com/gameswap/gameswap/internal/domain/membership"
	"github.com/gameswap/gameswap/internal/domain/team"
)

// Dev-mode fixtures so the service runs end to end without a database or the
// external catalogs.
const (
	LeagueIDArlington = "arlington-girls-softball"

	DivisionName10U      = "10U"
	DivisionName12U      = "12U"
	DivisionNamePonytail = "Ponytail-4th"
)

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDArlington, Name: "Arlington Girls Softball"},
	}
}

func SeedDivisions() []league.Division {
	return []league.Division{
		{LeagueID: LeagueIDArlington, Name: DivisionName10U},
		{LeagueID: LeagueIDArlington, Name: DivisionName12U},
		{LeagueID: LeagueIDArlington, Name: DivisionNamePonytail},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{LeagueID: LeagueIDArlington, Division: DivisionName10U, ID: "tigers", Name: "Tigers"},
		{LeagueID: LeagueIDArlington, Division: DivisionName10U, ID: "bears", Name: "Bears"},
		{LeagueID: LeagueIDArlington, Division: DivisionName10U, ID: "wolves", Name: "Wolves"},
		{LeagueID: LeagueIDArlington, Division: DivisionName12U, ID: "hawks", Name: "Hawks"},
		{LeagueID: LeagueIDArlington, Division: DivisionName12U, ID: "comets", Name: "Comets"},
		{LeagueID: LeagueIDArlington, Division: DivisionNamePonytail, ID: "sparks", Name: "Sparks"},
	}
}

func SeedFields() []field.Field {
	return []field.Field{
		{LeagueID: LeagueIDArlington, Ref: "gunston/turf", Park: "Gunston Park", Name: "Turf Field", Status: field.StatusActive},
		{LeagueID: LeagueIDArlington, Ref: "gunston/diamond-1", Park: "Gunston Park", Name: "Diamond 1", Status: field.StatusActive},
		{LeagueID: LeagueIDArlington, Ref: "barcroft/field-6", Park: "Barcroft Park", Name: "Field 6", Status: field.StatusActive},
		{LeagueID: LeagueIDArlington, Ref: "tuckahoe/lower", Park: "Tuckahoe Park", Name: "Lower Field", Status: field.StatusInactive},
	}
}

func SeedMemberships() []membership.Membership {
	return []membership.Membership{
		{LeagueID: LeagueIDArlington, UserID: "admin-1", Role: membership.RoleLeagueAdmin},
		{LeagueID: LeagueIDArlington, UserID: "coach-tigers", Role: membership.RoleCoach, TeamID: "tigers"},
		{LeagueID: LeagueIDArlington, UserID: "coach-bears", Role: membership.RoleCoach, TeamID: "bears"},
		{LeagueID: LeagueIDArlington, UserID: "coach-wolves", Role: membership.RoleCoach, TeamID: "wolves"},
		{LeagueID: LeagueIDArlington, UserID: "coach-hawks", Role: membership.RoleCoach, TeamID: "hawks"},
		{LeagueID: LeagueIDArlington, UserID: "viewer-1", Role: membership.RoleViewer},
	}
}
