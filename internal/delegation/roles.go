package delegation

// Static marketplace roles from the identity store. Role names are stored
// uppercase on the user record.
const (
	RoleAdmin    = "ADMIN"
	RoleBuyer    = "BUYER"
	RoleSupplier = "SUPPLIER"
)

// nativeRoleGrants lists the permissions each role holds by virtue of the
// role alone, without any delegation. Used by the fail-closed grantor
// authority check: a non-admin may only delegate a permission they hold
// natively here or have themselves received via a live delegation.
var nativeRoleGrants = map[string]map[PermissionKind][]ResourceType{
	RoleBuyer: {
		PermissionView: {
			ResourceOrganization, ResourceTeam, ResourceRFQ, ResourceBid,
			ResourceContract, ResourceAnalytics,
		},
		PermissionEdit:    {ResourceRFQ, ResourceContract},
		PermissionCreate:  {ResourceRFQ},
		PermissionDelete:  {ResourceRFQ},
		PermissionApprove: {ResourceRFQ, ResourceBid, ResourceContract},
		PermissionExport:  {ResourceAnalytics, ResourceRFQ, ResourceContract},
	},
	RoleSupplier: {
		PermissionView: {
			ResourceOrganization, ResourceTeam, ResourceRFQ, ResourceBid,
			ResourceContract, ResourceProductShowcase, ResourceVideo,
		},
		PermissionEdit:   {ResourceBid, ResourceProductShowcase, ResourceVideo},
		PermissionCreate: {ResourceBid, ResourceProductShowcase, ResourceVideo},
		PermissionDelete: {ResourceBid, ResourceProductShowcase, ResourceVideo},
	},
}

// RoleHolds reports whether the role natively carries the permission over the
// resource type. ADMIN holds every applicable pair.
func (c *Catalog) RoleHolds(role string, pk PermissionKind, rt ResourceType) bool {
	if role == RoleAdmin {
		return c.IsApplicable(pk, rt)
	}
	grants, ok := nativeRoleGrants[role]
	if !ok {
		return false
	}
	for _, t := range grants[pk] {
		if t == rt {
			return true
		}
	}
	return false
}
