package model

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
	InvitationStatusExpired  InvitationStatus = "expired"
)

type InvitationType string

const (
	InvitationTypeOrganization InvitationType = "organization"
	InvitationTypeProject      InvitationType = "project"
)

type OrganizationInvitation struct {
	ID          int64            `json:"id"`
	InviterID   int64            `json:"inviter_id"`
	InviteeID   *int64           `json:"invitee_id,omitempty"`
	Email       string           `json:"email"`
	Token       string           `json:"token"`
	Type        InvitationType   `json:"type"`
	Status      InvitationStatus `json:"status"`
	Deleted     bool             `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
}

// IsStale reports whether a pending invitation has outlived the retention
// cutoff and should be expired by the cleanup job.
func (i *OrganizationInvitation) IsStale(cutoff time.Time) bool {
	return i.Status == InvitationStatusPending && i.CreatedAt.Before(cutoff)
}
