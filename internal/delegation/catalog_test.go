package delegation_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bidquo/rfq-marketplace/internal/delegation"
)

var _ = Describe("Catalog", func() {
	var catalog *delegation.Catalog

	BeforeEach(func() {
		catalog = delegation.NewCatalog()
	})

	Describe("enumeration", func() {
		It("exposes all eight resource types", func() {
			types := catalog.ResourceTypes()
			Expect(types).To(HaveLen(8))

			ids := make([]delegation.ResourceType, len(types))
			for i, rt := range types {
				ids[i] = rt.ID
			}
			Expect(ids).To(ContainElements(
				delegation.ResourceOrganization,
				delegation.ResourceTeam,
				delegation.ResourceRFQ,
				delegation.ResourceBid,
				delegation.ResourceContract,
				delegation.ResourceProductShowcase,
				delegation.ResourceVideo,
				delegation.ResourceAnalytics,
			))
		})

		It("exposes all eight permission kinds with their applicability", func() {
			kinds := catalog.PermissionKinds()
			Expect(kinds).To(HaveLen(8))
			for _, pk := range kinds {
				Expect(pk.AppliesTo).ToNot(BeEmpty())
			}
		})
	})

	Describe("validity", func() {
		It("recognizes known identifiers and rejects unknown ones", func() {
			Expect(catalog.ValidResourceType(delegation.ResourceRFQ)).To(BeTrue())
			Expect(catalog.ValidResourceType("warehouse")).To(BeFalse())
			Expect(catalog.ValidPermission(delegation.PermissionApprove)).To(BeTrue())
			Expect(catalog.ValidPermission("teleport")).To(BeFalse())
		})
	})

	Describe("applicability", func() {
		It("view applies everywhere", func() {
			for _, rt := range catalog.ResourceTypes() {
				Expect(catalog.IsApplicable(delegation.PermissionView, rt.ID)).To(BeTrue())
			}
		})

		It("analytics is read-and-export only", func() {
			Expect(catalog.IsApplicable(delegation.PermissionView, delegation.ResourceAnalytics)).To(BeTrue())
			Expect(catalog.IsApplicable(delegation.PermissionExport, delegation.ResourceAnalytics)).To(BeTrue())
			Expect(catalog.IsApplicable(delegation.PermissionEdit, delegation.ResourceAnalytics)).To(BeFalse())
			Expect(catalog.IsApplicable(delegation.PermissionDelete, delegation.ResourceAnalytics)).To(BeFalse())
		})

		It("membership management is scoped to organizations and teams", func() {
			Expect(catalog.IsApplicable(delegation.PermissionManageMembers, delegation.ResourceOrganization)).To(BeTrue())
			Expect(catalog.IsApplicable(delegation.PermissionManageMembers, delegation.ResourceTeam)).To(BeTrue())
			Expect(catalog.IsApplicable(delegation.PermissionManageMembers, delegation.ResourceRFQ)).To(BeFalse())
		})

		It("approval covers the negotiation objects", func() {
			Expect(catalog.ApplicableResourceTypes(delegation.PermissionApprove)).To(ConsistOf(
				delegation.ResourceRFQ, delegation.ResourceBid, delegation.ResourceContract,
			))
		})

		It("lists the permissions applicable to a resource type", func() {
			kinds := catalog.ApplicablePermissions(delegation.ResourceAnalytics)
			Expect(kinds).To(ConsistOf(delegation.PermissionView, delegation.PermissionExport))
		})

		It("answers false for unknown identifiers rather than panicking", func() {
			Expect(catalog.IsApplicable("teleport", delegation.ResourceRFQ)).To(BeFalse())
			Expect(catalog.ApplicableResourceTypes("teleport")).To(BeNil())
		})
	})

	Describe("native role grants", func() {
		It("admins hold every applicable pair", func() {
			for _, pk := range catalog.PermissionKinds() {
				for _, rt := range pk.AppliesTo {
					Expect(catalog.RoleHolds(delegation.RoleAdmin, pk.ID, rt)).To(BeTrue())
				}
			}
		})

		It("buyers manage the demand side", func() {
			Expect(catalog.RoleHolds(delegation.RoleBuyer, delegation.PermissionCreate, delegation.ResourceRFQ)).To(BeTrue())
			Expect(catalog.RoleHolds(delegation.RoleBuyer, delegation.PermissionApprove, delegation.ResourceBid)).To(BeTrue())
			Expect(catalog.RoleHolds(delegation.RoleBuyer, delegation.PermissionExport, delegation.ResourceAnalytics)).To(BeTrue())
			Expect(catalog.RoleHolds(delegation.RoleBuyer, delegation.PermissionCreate, delegation.ResourceBid)).To(BeFalse())
			Expect(catalog.RoleHolds(delegation.RoleBuyer, delegation.PermissionEdit, delegation.ResourceProductShowcase)).To(BeFalse())
		})

		It("suppliers manage the supply side", func() {
			Expect(catalog.RoleHolds(delegation.RoleSupplier, delegation.PermissionCreate, delegation.ResourceBid)).To(BeTrue())
			Expect(catalog.RoleHolds(delegation.RoleSupplier, delegation.PermissionEdit, delegation.ResourceProductShowcase)).To(BeTrue())
			Expect(catalog.RoleHolds(delegation.RoleSupplier, delegation.PermissionCreate, delegation.ResourceRFQ)).To(BeFalse())
			Expect(catalog.RoleHolds(delegation.RoleSupplier, delegation.PermissionApprove, delegation.ResourceContract)).To(BeFalse())
		})

		It("unknown roles hold nothing", func() {
			Expect(catalog.RoleHolds("INTERN", delegation.PermissionView, delegation.ResourceRFQ)).To(BeFalse())
		})
	})
})

var _ = Describe("Delegation entity", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	Describe("AppliesTo", func() {
		It("wildcard grants cover every query, scoped or not", func() {
			grant := &delegation.Delegation{ResourceType: delegation.ResourceRFQ}
			Expect(grant.IsWildcard()).To(BeTrue())
			Expect(grant.AppliesTo("42")).To(BeTrue())
			Expect(grant.AppliesTo("")).To(BeTrue())
		})

		It("specific grants require an exact, non-empty match", func() {
			id := "42"
			grant := &delegation.Delegation{ResourceType: delegation.ResourceRFQ, ResourceID: &id}
			Expect(grant.IsWildcard()).To(BeFalse())
			Expect(grant.AppliesTo("42")).To(BeTrue())
			Expect(grant.AppliesTo("43")).To(BeFalse())
			Expect(grant.AppliesTo("")).To(BeFalse())
		})
	})

	Describe("IsLive", func() {
		It("is false for inactive grants regardless of expiry", func() {
			grant := &delegation.Delegation{IsActive: false}
			Expect(grant.IsLive(now)).To(BeFalse())
		})

		It("is true for active grants without an expiry", func() {
			grant := &delegation.Delegation{IsActive: true}
			Expect(grant.IsLive(now)).To(BeTrue())
		})

		It("treats the expiry bound as exclusive", func() {
			expiry := now.Add(time.Hour)
			grant := &delegation.Delegation{IsActive: true, ExpiresAt: &expiry}
			Expect(grant.IsLive(expiry.Add(-time.Nanosecond))).To(BeTrue())
			Expect(grant.IsLive(expiry)).To(BeFalse())
			Expect(grant.IsLive(expiry.Add(time.Hour))).To(BeFalse())
		})
	})
})
