package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/internal/model"
)

type invitationStore struct {
	q Querier
}

const invitationColumns = `id, inviter_id, invitee_id, email, token, type,
	status, deleted, created_at, responded_at`

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.OrganizationInvitation, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+invitationColumns+`
		 FROM organization_invitations WHERE id = $1 AND deleted = FALSE`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *invitationStore) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.OrganizationInvitation, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+invitationColumns+`
		 FROM organization_invitations
		 WHERE deleted = FALSE
		   AND status = $1
		   AND created_at < $2
		 ORDER BY created_at`,
		model.InvitationStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrganizationInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func (s *invitationStore) MarkExpired(ctx context.Context, id int64, respondedAt time.Time) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE organization_invitations
		 SET status = $2, responded_at = $3
		 WHERE id = $1 AND deleted = FALSE AND status = $4`,
		id, model.InvitationStatusExpired, respondedAt, model.InvitationStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvitation(row pgx.Row) (*model.OrganizationInvitation, error) {
	var inv model.OrganizationInvitation
	err := row.Scan(
		&inv.ID, &inv.InviterID, &inv.InviteeID, &inv.Email, &inv.Token,
		&inv.Type, &inv.Status, &inv.Deleted, &inv.CreatedAt, &inv.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
