package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/rules"
	"stridehq.app/backend/internal/store"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDates      = errors.New("invalid task dates")
	ErrAssigneeForbidden = errors.New("role may not change the assignee")
)

// TaskService applies user-driven workflow changes to project tasks, guarded
// by the pure transition and date rules. Rejections come back as typed
// errors wrapping the rule's message; they are never thrown as faults.
type TaskService interface {
	ChangeStatus(ctx context.Context, taskID int64, target model.TaskStatus) (*model.ProjectTask, error)
	ChangeAssignee(ctx context.Context, taskID int64, assigneeID *int64, actorRole model.ProjectRole) (*model.ProjectTask, error)
	Reschedule(ctx context.Context, taskID int64, start, end *time.Time) (*model.ProjectTask, error)
}

type taskService struct {
	tx  TxRunner
	now func() time.Time
}

func NewTaskService(tx TxRunner) TaskService {
	return &taskService{tx: tx, now: time.Now}
}

func (s *taskService) ChangeStatus(ctx context.Context, taskID int64, target model.TaskStatus) (*model.ProjectTask, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TaskID:    logger.Ptr(taskID),
		Component: "stride.service.task",
	})

	var updated *model.ProjectTask
	err := s.tx.WithTx(ctx, func(sp StoreProvider) error {
		task, err := sp.Tasks().GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("fetching task: %w", err)
		}

		if !rules.IsValidStatusTransition(task.Status, target) {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, rules.StatusTransitionError(task.Status, target))
		}

		task.Status = target
		task.UpdatedAt = s.now().UTC()
		if err := sp.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "task status changed", "status", updated.Status)
	return updated, nil
}

func (s *taskService) ChangeAssignee(ctx context.Context, taskID int64, assigneeID *int64, actorRole model.ProjectRole) (*model.ProjectTask, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TaskID:    logger.Ptr(taskID),
		Component: "stride.service.task",
	})

	if !rules.CanChangeAssignee(actorRole) {
		return nil, fmt.Errorf("%w: %s", ErrAssigneeForbidden, actorRole)
	}

	var updated *model.ProjectTask
	err := s.tx.WithTx(ctx, func(sp StoreProvider) error {
		task, err := sp.Tasks().GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("fetching task: %w", err)
		}

		task.AssigneeID = assigneeID
		task.UpdatedAt = s.now().UTC()
		if err := sp.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *taskService) Reschedule(ctx context.Context, taskID int64, start, end *time.Time) (*model.ProjectTask, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TaskID:    logger.Ptr(taskID),
		Component: "stride.service.task",
	})

	var updated *model.ProjectTask
	err := s.tx.WithTx(ctx, func(sp StoreProvider) error {
		task, err := sp.Tasks().GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("fetching task: %w", err)
		}

		project, err := sp.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("fetching parent project: %w", err)
		}

		if ok, msg := rules.ValidateTaskDates(start, end, project.StartDate, project.EndDate); !ok {
			return fmt.Errorf("%w: %s", ErrInvalidDates, msg)
		}

		task.StartDate = start
		task.EndDate = end
		task.UpdatedAt = s.now().UTC()
		if err := sp.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
