package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/core/db"
	"stridehq.app/backend/internal/store"
)

// StoreProvider exposes the stores a transactional operation works against.
type StoreProvider interface {
	Meetings() store.MeetingStore
	Tasks() store.TaskStore
	Projects() store.ProjectStore
	Users() store.UserStore
	Invitations() store.InvitationStore
	Notifications() store.NotificationStore
}

// TxRunner runs functions within a transaction and provides stores bound to
// that transaction. Each reconciliation phase runs under one WithTx call, so
// a phase's mutations commit together before the next phase queries.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		stores := store.NewStores(tx)
		return fn(stores)
	})
}
