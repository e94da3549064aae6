package service

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stridehq.app/backend/internal/model"
)

var _ = Describe("TaskService", func() {
	var (
		tasks    *mockTaskStore
		projects *mockProjectStore
		svc      *taskService
		now      time.Time
	)

	BeforeEach(func() {
		now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		tasks = &mockTaskStore{tasks: map[int64]*model.ProjectTask{}}
		projects = &mockProjectStore{projects: map[int64]*model.Project{}}
		runner := &passthroughTxRunner{provider: &mockProvider{tasks: tasks, projects: projects}}
		svc = &taskService{tx: runner, now: func() time.Time { return now }}
	})

	Describe("ChangeStatus", func() {
		BeforeEach(func() {
			tasks.tasks[1] = &model.ProjectTask{ID: 1, Status: model.TaskStatusInProgress, ProjectID: 100}
		})

		It("applies an allowed transition", func() {
			updated, err := svc.ChangeStatus(context.Background(), 1, model.TaskStatusReadyToReview)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(model.TaskStatusReadyToReview))
			Expect(updated.UpdatedAt).To(Equal(now))
			Expect(tasks.updates).To(HaveLen(1))
		})

		It("rejects a forbidden transition with a typed error", func() {
			_, err := svc.ChangeStatus(context.Background(), 1, model.TaskStatusDone)

			Expect(err).To(MatchError(ErrInvalidTransition))
			Expect(err.Error()).To(ContainSubstring("in_progress"))
			Expect(tasks.updates).To(BeEmpty())
		})

		It("returns ErrTaskNotFound for an unknown task", func() {
			_, err := svc.ChangeStatus(context.Background(), 999, model.TaskStatusDone)

			Expect(err).To(MatchError(ErrTaskNotFound))
		})
	})

	Describe("ChangeAssignee", func() {
		BeforeEach(func() {
			tasks.tasks[1] = &model.ProjectTask{ID: 1, Status: model.TaskStatusTodo, ProjectID: 100}
		})

		It("allows admins and project managers", func() {
			updated, err := svc.ChangeAssignee(context.Background(), 1, int64Ptr(7), model.ProjectRoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.AssigneeID).To(Equal(int64(7)))

			updated, err = svc.ChangeAssignee(context.Background(), 1, nil, model.ProjectRoleProjectManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AssigneeID).To(BeNil())
		})

		It("rejects plain members before touching the store", func() {
			_, err := svc.ChangeAssignee(context.Background(), 1, int64Ptr(7), model.ProjectRoleMember)

			Expect(err).To(MatchError(ErrAssigneeForbidden))
			Expect(tasks.updates).To(BeEmpty())
		})
	})

	Describe("Reschedule", func() {
		BeforeEach(func() {
			tasks.tasks[1] = &model.ProjectTask{ID: 1, Status: model.TaskStatusTodo, ProjectID: 100}
			projects.projects[100] = &model.Project{
				ID:        100,
				StartDate: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
				EndDate:   timePtr(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)),
			}
		})

		It("accepts dates inside the project bounds", func() {
			start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
			end := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

			updated, err := svc.Reschedule(context.Background(), 1, &start, &end)

			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.StartDate).To(Equal(start))
			Expect(*updated.EndDate).To(Equal(end))
		})

		It("rejects an end date before the start date", func() {
			start := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
			end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

			_, err := svc.Reschedule(context.Background(), 1, &start, &end)

			Expect(err).To(MatchError(ErrInvalidDates))
			Expect(tasks.updates).To(BeEmpty())
		})

		It("rejects dates outside the project bounds", func() {
			start := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
			end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

			_, err := svc.Reschedule(context.Background(), 1, &start, &end)

			Expect(err).To(MatchError(ErrInvalidDates))
		})
	})
})
