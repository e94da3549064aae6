package model

import "time"

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not_started"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusFinished   ProjectStatus = "finished"
)

// ProjectRole is the role a user holds within a project.
type ProjectRole string

const (
	ProjectRoleAdmin          ProjectRole = "Admin"
	ProjectRoleProjectManager ProjectRole = "ProjectManager"
	ProjectRoleMember         ProjectRole = "Member"
)

type Project struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Status    ProjectStatus `json:"status"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	OwnerID   int64         `json:"owner_id"`
	Deleted   bool          `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
