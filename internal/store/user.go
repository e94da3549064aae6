package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/internal/model"
)

type userStore struct {
	q Querier
}

const userColumns = `id, name, email, refresh_token, refresh_token_expires_at,
	deleted, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted = FALSE`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.q.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE deleted = FALSE AND id = ANY($1)
		 ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *userStore) ListWithExpiredRefreshTokens(ctx context.Context, now time.Time) ([]model.User, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE deleted = FALSE
		   AND refresh_token IS NOT NULL
		   AND refresh_token_expires_at < $1
		 ORDER BY id`, now)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *userStore) ClearRefreshToken(ctx context.Context, userID int64, now time.Time) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE users
		 SET refresh_token = NULL, refresh_token_expires_at = NULL, updated_at = $2
		 WHERE id = $1 AND deleted = FALSE`,
		userID, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.RefreshToken, &u.RefreshTokenExpiresAt,
		&u.Deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
