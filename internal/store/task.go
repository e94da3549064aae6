package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/internal/model"
)

type taskStore struct {
	q Querier
}

const taskColumns = `id, title, status, start_date, end_date, project_id,
	assignee_id, deleted, created_at, updated_at`

func (s *taskStore) GetByID(ctx context.Context, id int64) (*model.ProjectTask, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM project_tasks WHERE id = $1 AND deleted = FALSE`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *taskStore) ListOverdueCandidates(ctx context.Context, now time.Time) ([]model.ProjectTask, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM project_tasks
		 WHERE deleted = FALSE
		   AND end_date IS NOT NULL
		   AND end_date < $1
		   AND status NOT IN ($2, $3)
		 ORDER BY end_date`,
		now, model.TaskStatusOverDue, model.TaskStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProjectTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *taskStore) Update(ctx context.Context, task *model.ProjectTask) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE project_tasks
		 SET title = $2, status = $3, start_date = $4, end_date = $5,
		     assignee_id = $6, updated_at = $7
		 WHERE id = $1 AND deleted = FALSE`,
		task.ID, task.Title, task.Status, task.StartDate, task.EndDate,
		task.AssigneeID, task.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*model.ProjectTask, error) {
	var t model.ProjectTask
	err := row.Scan(
		&t.ID, &t.Title, &t.Status, &t.StartDate, &t.EndDate, &t.ProjectID,
		&t.AssigneeID, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
