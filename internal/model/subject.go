package model

import (
	"github.com/leanovate/gopter"
)

// Bindings maps a role to the generator of its values.
type Bindings map[Role]gopter.Gen

// Single binds one generator to the type under test.
func Single(gen gopter.Gen) Bindings {
	return Bindings{RoleSelf: gen}
}

// Lookup resolves role, treating the empty role as RoleSelf.
func (b Bindings) Lookup(role Role) (gopter.Gen, bool) {
	role = role.Canonical()
	if gen, ok := b[role]; ok && gen != nil {
		return gen, true
	}

	if role == RoleSelf {
		if gen, ok := b[""]; ok && gen != nil {
			return gen, true
		}
	}

	return nil, false
}

// Override adjusts the checks of one subject without editing the taxonomy.
type Override struct {
	Has       []string `yaml:"has,omitempty" mapstructure:"has"`
	Excluding []string `yaml:"excluding,omitempty" mapstructure:"excluding"`
	Skipping  []string `yaml:"skipping,omitempty" mapstructure:"skipping"`
}

// IsZero reports whether the override carries nothing.
func (o *Override) IsZero() bool {
	return o == nil || (len(o.Has) == 0 && len(o.Excluding) == 0 && len(o.Skipping) == 0)
}

// Subject is one concrete type handed to the loader and the binder.
type Subject struct {
	// Name is the kind the registry is matched against.
	Name string
	// Ancestry lists the kinds the subject also belongs to, most specific first.
	Ancestry []string
	// Doc is the type's documentation, possibly carrying a gentest: block.
	Doc string

	Override *Override
	// Profile overrides the profile computed from Ops.
	Profile *Profile

	Ops      *Ops
	Values   Values
	Bindings Bindings
}

// Kinds returns the subject name followed by its ancestry.
func (s Subject) Kinds() []string {
	kinds := make([]string, 0, len(s.Ancestry)+1)
	kinds = append(kinds, s.Name)

	return append(kinds, s.Ancestry...)
}

// IsA reports whether kind names the subject or one of its ancestors.
func (s Subject) IsA(kind string) bool {
	for _, k := range s.Kinds() {
		if k == kind {
			return true
		}
	}

	return false
}
