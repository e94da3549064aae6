package store

import (
	"context"
	"time"

	"stridehq.app/backend/internal/model"
)

// MeetingStore defines the contract for meeting data access
type MeetingStore interface {
	GetByID(ctx context.Context, id int64) (*model.Meeting, error)
	// ListScheduledDue returns non-deleted scheduled meetings whose start
	// time is at or before now.
	ListScheduledDue(ctx context.Context, now time.Time) ([]model.Meeting, error)
	// ListOngoingElapsed returns non-deleted ongoing meetings with no end
	// time that started at or before the cutoff.
	ListOngoingElapsed(ctx context.Context, startedBefore time.Time) ([]model.Meeting, error)
	// ListScheduledStartingBetween returns non-deleted scheduled meetings
	// starting inside [from, to], bounds inclusive.
	ListScheduledStartingBetween(ctx context.Context, from, to time.Time) ([]model.Meeting, error)
	ListAttendeeIDs(ctx context.Context, meetingID int64) ([]int64, error)
	Update(ctx context.Context, meeting *model.Meeting) error
}

// TaskStore defines the contract for project task data access
type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*model.ProjectTask, error)
	// ListOverdueCandidates returns non-deleted tasks whose end date is
	// strictly before now and whose status is neither over_due nor completed.
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]model.ProjectTask, error)
	Update(ctx context.Context, task *model.ProjectTask) error
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	// ListNotStartedDue returns non-deleted not_started projects whose start
	// date is at or before now.
	ListNotStartedDue(ctx context.Context, now time.Time) ([]model.Project, error)
	// ListEndingBetween returns non-deleted in_progress projects whose end
	// date falls inside [from, to], bounds inclusive.
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]model.Project, error)
	ListMemberIDs(ctx context.Context, projectID int64) ([]int64, error)
	Update(ctx context.Context, project *model.Project) error
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	// ListWithExpiredRefreshTokens returns non-deleted users holding a
	// refresh token whose expiry is strictly before now.
	ListWithExpiredRefreshTokens(ctx context.Context, now time.Time) ([]model.User, error)
	ClearRefreshToken(ctx context.Context, userID int64, now time.Time) error
}

// InvitationStore defines the contract for organization invitation data access
type InvitationStore interface {
	GetByID(ctx context.Context, id int64) (*model.OrganizationInvitation, error)
	// ListPendingCreatedBefore returns non-deleted pending invitations
	// created strictly before the cutoff.
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.OrganizationInvitation, error)
	MarkExpired(ctx context.Context, id int64, respondedAt time.Time) error
}

// NotificationStore defines the contract for in-app notification data access
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}
