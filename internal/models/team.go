package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeammate Role = "teammate"
	RoleViewer   Role = "viewer"
)

type Team struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
}

// Teammate is a membership of a user in a team.
type Teammate struct {
	TeamID   string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

// TeamUser is a team member joined with the user's profile.
type TeamUser struct {
	User     User
	Role     Role
	JoinedAt time.Time
}
