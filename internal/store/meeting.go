package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stridehq.app/backend/internal/model"
)

type meetingStore struct {
	q Querier
}

const meetingColumns = `id, title, description, start_time, end_time, status,
	creator_id, project_id, milestone_id, deleted, created_at, updated_at`

func (s *meetingStore) GetByID(ctx context.Context, id int64) (*model.Meeting, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1 AND deleted = FALSE`, id)
	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *meetingStore) ListScheduledDue(ctx context.Context, now time.Time) ([]model.Meeting, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+meetingColumns+`
		 FROM meetings
		 WHERE deleted = FALSE
		   AND status = $1
		   AND start_time <= $2
		 ORDER BY start_time`,
		model.MeetingStatusScheduled, now)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

func (s *meetingStore) ListOngoingElapsed(ctx context.Context, startedBefore time.Time) ([]model.Meeting, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+meetingColumns+`
		 FROM meetings
		 WHERE deleted = FALSE
		   AND status = $1
		   AND end_time IS NULL
		   AND start_time <= $2
		 ORDER BY start_time`,
		model.MeetingStatusOngoing, startedBefore)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

func (s *meetingStore) ListScheduledStartingBetween(ctx context.Context, from, to time.Time) ([]model.Meeting, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+meetingColumns+`
		 FROM meetings
		 WHERE deleted = FALSE
		   AND status = $1
		   AND start_time >= $2
		   AND start_time <= $3
		 ORDER BY start_time`,
		model.MeetingStatusScheduled, from, to)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

func (s *meetingStore) ListAttendeeIDs(ctx context.Context, meetingID int64) ([]int64, error) {
	rows, err := s.q.Query(ctx,
		`SELECT user_id FROM meeting_attendees WHERE meeting_id = $1 ORDER BY user_id`,
		meetingID)
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

func (s *meetingStore) Update(ctx context.Context, meeting *model.Meeting) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE meetings
		 SET title = $2, description = $3, start_time = $4, end_time = $5,
		     status = $6, milestone_id = $7, updated_at = $8
		 WHERE id = $1 AND deleted = FALSE`,
		meeting.ID, meeting.Title, meeting.Description, meeting.StartTime,
		meeting.EndTime, meeting.Status, meeting.MilestoneID, meeting.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	var m model.Meeting
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.Status,
		&m.CreatorID, &m.ProjectID, &m.MilestoneID, &m.Deleted, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMeetings(rows pgx.Rows) ([]model.Meeting, error) {
	defer rows.Close()

	var out []model.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
