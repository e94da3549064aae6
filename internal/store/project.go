package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/internal/model"
)

type projectStore struct {
	q Querier
}

const projectColumns = `id, name, status, start_date, end_date, owner_id,
	deleted, created_at, updated_at`

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND deleted = FALSE`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *projectStore) ListNotStartedDue(ctx context.Context, now time.Time) ([]model.Project, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE deleted = FALSE
		   AND status = $1
		   AND start_date IS NOT NULL
		   AND start_date <= $2
		 ORDER BY start_date`,
		model.ProjectStatusNotStarted, now)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (s *projectStore) ListEndingBetween(ctx context.Context, from, to time.Time) ([]model.Project, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE deleted = FALSE
		   AND status = $1
		   AND end_date IS NOT NULL
		   AND end_date >= $2
		   AND end_date <= $3
		 ORDER BY end_date`,
		model.ProjectStatusInProgress, from, to)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (s *projectStore) ListMemberIDs(ctx context.Context, projectID int64) ([]int64, error) {
	rows, err := s.q.Query(ctx,
		`SELECT user_id FROM project_members WHERE project_id = $1 ORDER BY user_id`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE projects
		 SET name = $2, status = $3, start_date = $4, end_date = $5, updated_at = $6
		 WHERE id = $1 AND deleted = FALSE`,
		project.ID, project.Name, project.Status, project.StartDate,
		project.EndDate, project.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Status, &p.StartDate, &p.EndDate, &p.OwnerID,
		&p.Deleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]model.Project, error) {
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
