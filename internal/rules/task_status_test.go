package rules_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/rules"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var _ = Describe("IsValidStatusTransition", func() {
	DescribeTable("forbidden transitions are rejected",
		func(current, target model.TaskStatus) {
			Expect(rules.IsValidStatusTransition(current, target)).To(BeFalse())
		},
		Entry("todo cannot skip to ready_to_review", model.TaskStatusTodo, model.TaskStatusReadyToReview),
		Entry("todo cannot skip to done", model.TaskStatusTodo, model.TaskStatusDone),
		Entry("todo cannot skip to re_opened", model.TaskStatusTodo, model.TaskStatusReOpened),
		Entry("in_progress cannot skip review", model.TaskStatusInProgress, model.TaskStatusDone),
		Entry("in_progress cannot reopen", model.TaskStatusInProgress, model.TaskStatusReOpened),
		Entry("ready_to_review cannot fall back to todo", model.TaskStatusReadyToReview, model.TaskStatusTodo),
		Entry("re_opened cannot go straight to review", model.TaskStatusReOpened, model.TaskStatusReadyToReview),
		Entry("re_opened cannot go straight to done", model.TaskStatusReOpened, model.TaskStatusDone),
		Entry("re_opened cannot go back to todo", model.TaskStatusReOpened, model.TaskStatusTodo),
	)

	DescribeTable("everything not in the table is allowed",
		func(current, target model.TaskStatus) {
			Expect(rules.IsValidStatusTransition(current, target)).To(BeTrue())
		},
		Entry("todo to in_progress", model.TaskStatusTodo, model.TaskStatusInProgress),
		Entry("in_progress to ready_to_review", model.TaskStatusInProgress, model.TaskStatusReadyToReview),
		Entry("ready_to_review to done", model.TaskStatusReadyToReview, model.TaskStatusDone),
		Entry("ready_to_review to re_opened", model.TaskStatusReadyToReview, model.TaskStatusReOpened),
		Entry("re_opened to in_progress", model.TaskStatusReOpened, model.TaskStatusInProgress),
		Entry("over_due has no restrictions", model.TaskStatusOverDue, model.TaskStatusCompleted),
		Entry("completed has no restrictions", model.TaskStatusCompleted, model.TaskStatusReOpened),
	)

	It("always allows a same-status transition", func() {
		for _, s := range []model.TaskStatus{
			model.TaskStatusTodo,
			model.TaskStatusInProgress,
			model.TaskStatusReadyToReview,
			model.TaskStatusDone,
			model.TaskStatusReOpened,
			model.TaskStatusOverDue,
			model.TaskStatusCompleted,
		} {
			Expect(rules.IsValidStatusTransition(s, s)).To(BeTrue(), "status %s", s)
		}
	})
})

var _ = Describe("StatusTransitionError", func() {
	It("names both statuses", func() {
		msg := rules.StatusTransitionError(model.TaskStatusTodo, model.TaskStatusDone)
		Expect(msg).To(ContainSubstring("todo"))
		Expect(msg).To(ContainSubstring("done"))
	})
})

var _ = Describe("ValidateTaskDates", func() {
	It("rejects an end date before the start date", func() {
		ok, msg := rules.ValidateTaskDates(
			date(2024, time.February, 10), date(2024, time.February, 1), nil, nil)
		Expect(ok).To(BeFalse())
		Expect(msg).To(ContainSubstring("end date must not be before"))
	})

	It("skips validation when either task date is absent", func() {
		ok, msg := rules.ValidateTaskDates(nil, date(2024, time.February, 1), nil, nil)
		Expect(ok).To(BeTrue())
		Expect(msg).To(BeEmpty())

		ok, _ = rules.ValidateTaskDates(date(2024, time.February, 1), nil,
			date(2024, time.March, 1), date(2024, time.March, 2))
		Expect(ok).To(BeTrue())
	})

	It("rejects a task starting before the project", func() {
		ok, msg := rules.ValidateTaskDates(
			date(2024, time.January, 1), date(2024, time.January, 10),
			date(2024, time.January, 5), nil)
		Expect(ok).To(BeFalse())
		Expect(msg).To(ContainSubstring("project start date"))
	})

	It("rejects a task ending after the project", func() {
		ok, msg := rules.ValidateTaskDates(
			date(2024, time.January, 6), date(2024, time.February, 1),
			date(2024, time.January, 5), date(2024, time.January, 31))
		Expect(ok).To(BeFalse())
		Expect(msg).To(ContainSubstring("project end date"))
	})

	It("accepts a range inside the project bounds", func() {
		ok, msg := rules.ValidateTaskDates(
			date(2024, time.January, 6), date(2024, time.January, 20),
			date(2024, time.January, 5), date(2024, time.January, 31))
		Expect(ok).To(BeTrue())
		Expect(msg).To(BeEmpty())
	})

	It("ignores unset project bounds", func() {
		ok, _ := rules.ValidateTaskDates(
			date(2020, time.January, 1), date(2030, time.January, 1), nil, nil)
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("CanChangeAssignee", func() {
	It("allows project managers and admins only", func() {
		Expect(rules.CanChangeAssignee(model.ProjectRoleProjectManager)).To(BeTrue())
		Expect(rules.CanChangeAssignee(model.ProjectRoleAdmin)).To(BeTrue())
		Expect(rules.CanChangeAssignee(model.ProjectRoleMember)).To(BeFalse())
		Expect(rules.CanChangeAssignee(model.ProjectRole("Guest"))).To(BeFalse())
	})
})
