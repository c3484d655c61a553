package delegation

// ResourceType identifies a delegable object class. The set is fixed at
// process start; resource types are never user-created.
type ResourceType string

const (
	ResourceOrganization    ResourceType = "organization"
	ResourceTeam            ResourceType = "team"
	ResourceRFQ             ResourceType = "rfq"
	ResourceBid             ResourceType = "bid"
	ResourceContract        ResourceType = "contract"
	ResourceProductShowcase ResourceType = "product_showcase"
	ResourceVideo           ResourceType = "video"
	ResourceAnalytics       ResourceType = "analytics"
)

// PermissionKind identifies a delegable capability. Each kind applies only
// to a declared subset of resource types.
type PermissionKind string

const (
	PermissionView          PermissionKind = "view"
	PermissionEdit          PermissionKind = "edit"
	PermissionDelete        PermissionKind = "delete"
	PermissionCreate        PermissionKind = "create"
	PermissionAdmin         PermissionKind = "admin"
	PermissionManageMembers PermissionKind = "manage_members"
	PermissionApprove       PermissionKind = "approve"
	PermissionExport        PermissionKind = "export"
)

type ResourceTypeSpec struct {
	ID          ResourceType `json:"id"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description"`
}

type PermissionKindSpec struct {
	ID          PermissionKind `json:"id"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	AppliesTo   []ResourceType `json:"applies_to"`
}

var resourceTypeSpecs = []ResourceTypeSpec{
	{ResourceOrganization, "Organization", "A company-level organization"},
	{ResourceTeam, "Team", "A team within an organization"},
	{ResourceRFQ, "RFQ", "A request for quotation"},
	{ResourceBid, "Bid", "A supplier bid on an RFQ"},
	{ResourceContract, "Contract", "A contract between buyer and supplier"},
	{ResourceProductShowcase, "Product Showcase", "A supplier product showcase"},
	{ResourceVideo, "Video", "A marketing or product video"},
	{ResourceAnalytics, "Analytics", "Reports and analytics dashboards"},
}

var permissionKindSpecs = []PermissionKindSpec{
	{
		ID:          PermissionView,
		DisplayName: "View",
		Description: "Read access to the resource",
		AppliesTo: []ResourceType{
			ResourceOrganization, ResourceTeam, ResourceRFQ, ResourceBid,
			ResourceContract, ResourceProductShowcase, ResourceVideo, ResourceAnalytics,
		},
	},
	{
		ID:          PermissionEdit,
		DisplayName: "Edit",
		Description: "Modify the resource",
		AppliesTo: []ResourceType{
			ResourceOrganization, ResourceTeam, ResourceRFQ, ResourceBid,
			ResourceContract, ResourceProductShowcase, ResourceVideo,
		},
	},
	{
		ID:          PermissionDelete,
		DisplayName: "Delete",
		Description: "Remove the resource",
		AppliesTo: []ResourceType{
			ResourceRFQ, ResourceBid, ResourceContract, ResourceProductShowcase, ResourceVideo,
		},
	},
	{
		ID:          PermissionCreate,
		DisplayName: "Create",
		Description: "Create new resources of this type",
		AppliesTo: []ResourceType{
			ResourceRFQ, ResourceBid, ResourceProductShowcase, ResourceVideo,
		},
	},
	{
		ID:          PermissionAdmin,
		DisplayName: "Administer",
		Description: "Full administrative control",
		AppliesTo:   []ResourceType{ResourceOrganization, ResourceTeam},
	},
	{
		ID:          PermissionManageMembers,
		DisplayName: "Manage Members",
		Description: "Add and remove members",
		AppliesTo:   []ResourceType{ResourceOrganization, ResourceTeam},
	},
	{
		ID:          PermissionApprove,
		DisplayName: "Approve",
		Description: "Approve or sign off on the resource",
		AppliesTo:   []ResourceType{ResourceRFQ, ResourceBid, ResourceContract},
	},
	{
		ID:          PermissionExport,
		DisplayName: "Export",
		Description: "Export the resource's data",
		AppliesTo:   []ResourceType{ResourceAnalytics, ResourceRFQ, ResourceContract},
	},
}

// Catalog is the static permission/resource-type applicability matrix.
// Built once at process start and read-only afterwards, so it is safe for
// concurrent use without locking.
type Catalog struct {
	resourceTypes map[ResourceType]ResourceTypeSpec
	permissions   map[PermissionKind]PermissionKindSpec
	applicable    map[PermissionKind]map[ResourceType]bool
}

func NewCatalog() *Catalog {
	c := &Catalog{
		resourceTypes: make(map[ResourceType]ResourceTypeSpec, len(resourceTypeSpecs)),
		permissions:   make(map[PermissionKind]PermissionKindSpec, len(permissionKindSpecs)),
		applicable:    make(map[PermissionKind]map[ResourceType]bool, len(permissionKindSpecs)),
	}

	for _, rt := range resourceTypeSpecs {
		c.resourceTypes[rt.ID] = rt
	}

	for _, pk := range permissionKindSpecs {
		c.permissions[pk.ID] = pk
		set := make(map[ResourceType]bool, len(pk.AppliesTo))
		for _, rt := range pk.AppliesTo {
			set[rt] = true
		}
		c.applicable[pk.ID] = set
	}

	return c
}

func (c *Catalog) ValidResourceType(rt ResourceType) bool {
	_, ok := c.resourceTypes[rt]
	return ok
}

func (c *Catalog) ValidPermission(pk PermissionKind) bool {
	_, ok := c.permissions[pk]
	return ok
}

// IsApplicable reports whether the permission kind may be delegated over the
// given resource type.
func (c *Catalog) IsApplicable(pk PermissionKind, rt ResourceType) bool {
	set, ok := c.applicable[pk]
	if !ok {
		return false
	}
	return set[rt]
}

func (c *Catalog) ApplicablePermissions(rt ResourceType) []PermissionKind {
	var kinds []PermissionKind
	for _, pk := range permissionKindSpecs {
		if c.applicable[pk.ID][rt] {
			kinds = append(kinds, pk.ID)
		}
	}
	return kinds
}

func (c *Catalog) ApplicableResourceTypes(pk PermissionKind) []ResourceType {
	spec, ok := c.permissions[pk]
	if !ok {
		return nil
	}
	out := make([]ResourceType, len(spec.AppliesTo))
	copy(out, spec.AppliesTo)
	return out
}

// ResourceTypes returns the full resource-type enumeration for callers that
// populate UI choices.
func (c *Catalog) ResourceTypes() []ResourceTypeSpec {
	out := make([]ResourceTypeSpec, len(resourceTypeSpecs))
	copy(out, resourceTypeSpecs)
	return out
}

func (c *Catalog) PermissionKinds() []PermissionKindSpec {
	out := make([]PermissionKindSpec, len(permissionKindSpecs))
	copy(out, permissionKindSpecs)
	return out
}
