// Package store is the query gateway the reconciliation jobs scan and mutate
// through. Each entity gets its own store behind a small interface; every
// predicate excludes soft-deleted rows. SQL goes straight through pgx against
// whatever Querier the caller holds, so the same stores work on the pool and
// inside a transaction.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores is the factory handing out per-entity stores bound to one Querier.
type Stores struct {
	q Querier
}

func NewStores(q Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Meetings() MeetingStore {
	return &meetingStore{q: s.q}
}

func (s *Stores) Tasks() TaskStore {
	return &taskStore{q: s.q}
}

func (s *Stores) Projects() ProjectStore {
	return &projectStore{q: s.q}
}

func (s *Stores) Users() UserStore {
	return &userStore{q: s.q}
}

func (s *Stores) Invitations() InvitationStore {
	return &invitationStore{q: s.q}
}

func (s *Stores) Notifications() NotificationStore {
	return &notificationStore{q: s.q}
}
