package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/lukmanhakim/user-portal/internal"
)

var _ = ginkgo.Describe("Role", func() {
	ginkgo.Describe("ParseRole", func() {
		ginkgo.It("should accept the stored form", func() {
			role, err := ParseRole("ROLE_ADMIN")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(role).To(gomega.Equal(RoleAdmin))
		})

		ginkgo.It("should accept the short form regardless of case", func() {
			role, err := ParseRole("super_admin")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(role).To(gomega.Equal(RoleSuperAdmin))
		})

		ginkgo.It("should trim surrounding whitespace", func() {
			role, err := ParseRole("  manager ")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(role).To(gomega.Equal(RoleManager))
		})

		ginkgo.It("should reject unknown role names", func() {
			_, err := ParseRole("wizard")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnknownRole))
		})
	})

	ginkgo.Describe("Authorities", func() {
		ginkgo.It("should grant nothing to a plain user", func() {
			gomega.Expect(RoleUser.Authorities()).To(gomega.BeEmpty())
		})

		ginkgo.It("should grant each role a superset of the role below it", func() {
			ordered := []Role{RoleUser, RoleHR, RoleManager, RoleAdmin, RoleSuperAdmin}
			for i := 1; i < len(ordered); i++ {
				lower := ordered[i-1].Authorities()
				higher := ordered[i].Authorities()
				gomega.Expect(len(higher)).To(gomega.BeNumerically(">", len(lower)))
				for _, a := range lower {
					gomega.Expect(higher).To(gomega.ContainElement(a))
				}
			}
		})

		ginkgo.It("should grant the full set to a super admin", func() {
			gomega.Expect(RoleSuperAdmin.Authorities()).To(gomega.Equal([]string{
				AuthorityUserRead, AuthorityUserCreate, AuthorityUserUpdate, AuthorityUserDelete,
			}))
		})

		ginkgo.It("should return a copy that cannot mutate the shared table", func() {
			got := RoleAdmin.Authorities()
			got[0] = "tampered"
			gomega.Expect(RoleAdmin.Authorities()[0]).To(gomega.Equal(AuthorityUserRead))
		})
	})
})
