package jobs

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stridehq.app/backend/internal/model"
)

var _ = Describe("TokenCleanupJob", func() {
	var (
		stores *mockStores
		job    *TokenCleanupJob
		now    time.Time
	)

	token := "opaque-refresh-token"

	BeforeEach(func() {
		now = time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
		stores = newMockStores()
		job = NewTokenCleanupJob(&mockTxRunner{stores: stores}, "0 3 * * *")
		job.now = func() time.Time { return now }
	})

	It("clears tokens whose expiry has passed and keeps the rest", func() {
		expired := now.Add(-time.Hour)
		valid := now.Add(time.Hour)
		stores.users.users = []model.User{
			{ID: 1, RefreshToken: &token, RefreshTokenExpiresAt: &expired},
			{ID: 2, RefreshToken: &token, RefreshTokenExpiresAt: &valid},
			{ID: 3},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.users.cleared).To(ConsistOf(int64(1)))
		Expect(stores.users.users[0].RefreshToken).To(BeNil())
		Expect(stores.users.users[1].RefreshToken).NotTo(BeNil())
	})

	It("does nothing on a second run", func() {
		expired := now.Add(-time.Hour)
		stores.users.users = []model.User{
			{ID: 1, RefreshToken: &token, RefreshTokenExpiresAt: &expired},
		}

		Expect(job.Run(context.Background())).To(Succeed())
		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.users.cleared).To(HaveLen(1))
	})
})

var _ = Describe("InvitationCleanupJob", func() {
	var (
		stores *mockStores
		job    *InvitationCleanupJob
		now    time.Time
	)

	const retention = 7 * 24 * time.Hour

	BeforeEach(func() {
		now = time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
		stores = newMockStores()
		job = NewInvitationCleanupJob(&mockTxRunner{stores: stores}, "0 4 * * *", retention)
		job.now = func() time.Time { return now }
	})

	It("expires pending invitations older than the retention window", func() {
		stores.invitations.invitations = []model.OrganizationInvitation{
			{ID: 1, Status: model.InvitationStatusPending, CreatedAt: now.Add(-8 * 24 * time.Hour)},
			{ID: 2, Status: model.InvitationStatusPending, CreatedAt: now.Add(-3 * 24 * time.Hour)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		stale := stores.invitations.get(1)
		Expect(stale.Status).To(Equal(model.InvitationStatusExpired))
		Expect(stale.RespondedAt).NotTo(BeNil())
		Expect(*stale.RespondedAt).To(Equal(now))
		Expect(stores.invitations.get(2).Status).To(Equal(model.InvitationStatusPending))
	})

	It("never touches answered invitations, however old", func() {
		stores.invitations.invitations = []model.OrganizationInvitation{
			{ID: 1, Status: model.InvitationStatusAccepted, CreatedAt: now.Add(-30 * 24 * time.Hour)},
			{ID: 2, Status: model.InvitationStatusDeclined, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(stores.invitations.get(1).Status).To(Equal(model.InvitationStatusAccepted))
		Expect(stores.invitations.get(2).Status).To(Equal(model.InvitationStatusDeclined))
	})

	It("is terminal: a second run matches nothing", func() {
		stores.invitations.invitations = []model.OrganizationInvitation{
			{ID: 1, Status: model.InvitationStatusPending, CreatedAt: now.Add(-8 * 24 * time.Hour)},
		}

		Expect(job.Run(context.Background())).To(Succeed())
		first := stores.invitations.get(1)

		Expect(job.Run(context.Background())).To(Succeed())
		Expect(stores.invitations.get(1)).To(Equal(first))
	})
})
