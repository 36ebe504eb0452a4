// Package model defines the data structures shared by the contract taxonomy,
// the loader and the binder.
package model

// Role names the abstract domain of a check parameter. Roles never carry
// values; they are resolved to generators at bind time.
type Role string

const (
	// RoleSelf is the type under test. The empty Role means the same thing.
	RoleSelf Role = "ClassUnderTest"
	// RoleElement is a value held by a container.
	RoleElement Role = "ElementT"
	// RoleKey is a mapping key or a sequence index.
	RoleKey Role = "KeyT"
	// RoleValue is a mapping value or a sequence item.
	RoleValue Role = "ValueT"
	// RoleScalar is the scalar ring of a module or vector space.
	RoleScalar Role = "ScalarT"
	// RoleVector is the vector space acting on an affine space.
	RoleVector Role = "VectorSpaceT"
	// RoleDomain is the input of a function under test.
	RoleDomain Role = "DomainT"
	// RoleCodomain is the output of a function under test.
	RoleCodomain Role = "CodomainT"
	// RoleMagnitude is the result type of the absolute value operator.
	RoleMagnitude Role = "MagnitudeT"

	// RoleData marks a parameter that draws extra values during a trial.
	RoleData Role = "data"
)

// Canonical maps the empty role to RoleSelf.
func (r Role) Canonical() Role {
	if r == "" {
		return RoleSelf
	}

	return r
}

func (r Role) String() string {
	return string(r.Canonical())
}

// Relabel renames roles when checks are inherited across a contract edge.
// Roles missing from the map are left unchanged.
type Relabel map[Role]Role

// Apply returns the relabelled role.
func (r Relabel) Apply(role Role) Role {
	role = role.Canonical()
	if to, ok := r[role]; ok {
		return to.Canonical()
	}

	return role
}
