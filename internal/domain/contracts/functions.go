package contracts

import (
	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Function contract names.
const (
	ContractFunction   = "Function"
	ContractInjective  = "Injective"
	ContractSurjective = "Surjective"
	ContractBijective  = "Bijective"
)

func domainParam(name string) m.Param {
	return param(name, m.RoleDomain)
}

// sameImage compares two outputs of the function under test.
func sameImage(t *m.Trial, a, b any) bool {
	return t.For(m.RoleCodomain).Equals(a, b)
}

// The subject is the function itself: Apply maps DomainT to CodomainT and
// Inverse maps back.
func functions() []m.Contract {
	return []m.Contract{
		{
			Name:    ContractFunction,
			Parents: []string{domain.ContractEqualsOnly},
			Relabel: m.Relabel{m.RoleSelf: m.RoleDomain},
			Needs:   []m.Op{"Apply"},
			Checks: []m.Check{
				{Number: 8010, Name: "function_deterministic", Params: []m.Param{domainParam("x")}, Law: func(t *m.Trial) error {
					x := t.Arg(0)
					f := t.Ops().Apply
					return t.Expect(sameImage(t, f(x), f(x)), "f(%v) changed", x)
				}},
				{Number: 8020, Name: "function_respects_equality", Params: []m.Param{domainParam("x"), domainParam("y")}, Law: func(t *m.Trial) error {
					x, y := t.Arg(0), t.Arg(1)
					if !same(t, 0, x, y) {
						return nil
					}

					f := t.Ops().Apply
					return t.Expect(sameImage(t, f(x), f(y)), "%v == %v but f(%v) = %v, f(%v) = %v", x, y, x, f(x), y, f(y))
				}},
			},
		},
		{
			Name:    ContractInjective,
			Parents: []string{ContractFunction},
			Checks: []m.Check{
				{Number: 8110, Name: "injective", Params: []m.Param{domainParam("x"), domainParam("y")}, Law: func(t *m.Trial) error {
					x, y := t.Arg(0), t.Arg(1)
					f := t.Ops().Apply
					if !sameImage(t, f(x), f(y)) {
						return nil
					}

					return t.Expect(same(t, 0, x, y), "f(%v) = f(%v) = %v", x, y, f(x))
				}},
			},
		},
		{
			Name:    ContractSurjective,
			Parents: []string{ContractFunction},
			Needs:   []m.Op{"Inverse"},
			Checks: []m.Check{
				{Number: 8210, Name: "surjective", Params: []m.Param{param("y", m.RoleCodomain)}, Law: func(t *m.Trial) error {
					y := t.Arg(0)
					ops := t.Ops()
					x := ops.Inverse(y)
					return t.Expect(sameImage(t, ops.Apply(x), y), "f(%v) = %v, want %v", x, ops.Apply(x), y)
				}},
			},
		},
		{
			Name:    ContractBijective,
			Parents: []string{ContractInjective, ContractSurjective},
			Checks: []m.Check{
				{Number: 8310, Name: "inverse_is_left_inverse", Params: []m.Param{domainParam("x")}, Law: func(t *m.Trial) error {
					x := t.Arg(0)
					ops := t.Ops()
					y := ops.Apply(x)
					return t.Expect(same(t, 0, ops.Inverse(y), x), "inverse(f(%v)) = %v", x, ops.Inverse(y))
				}},
			},
		},
	}
}
