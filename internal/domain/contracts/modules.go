package contracts

import (
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Module and affine space contract names.
const (
	ContractRModule     = "RModule"
	ContractVectorSpace = "VectorSpace"
	ContractAffineSpace = "AffineSpace"
)

func scalar(name string) m.Param {
	return param(name, m.RoleScalar)
}

func vector(name string) m.Param {
	return param(name, m.RoleVector)
}

func modules() []m.Contract {
	return []m.Contract{
		{
			Name:     ContractRModule,
			Doc:      "An abelian group acted on by the ring of ScalarT from the left.",
			Parents:  []string{ContractAdditionAbelianGroup},
			Needs:    []m.Op{"ScalarMul", "ScalarT.Add", "ScalarT.Mul", "ScalarT.Sub"},
			Requires: []string{ValueZero, ValueScalarOne},
			Derived: []m.Derivation{
				{Value: ValueScalarZero, Derive: deriveFrom(ValueScalarOne, func(ops *m.Ops, one any) any {
					return ops.For(m.RoleScalar).Sub(one, one)
				})},
			},
			Checks: []m.Check{
				{Number: 3010, Name: "scalar_identity", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return expectSame(t, 0, t.Ops().ScalarMul(t.Value(ValueScalarOne), a), a)
				}},
				{Number: 3020, Name: "scalar_distributes_over_vector_addition", Params: []m.Param{scalar("r"), param("a", m.RoleSelf), param("b", m.RoleSelf)}, Law: func(t *m.Trial) error {
					r, a, b := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					return expectSame(t, 1, ops.ScalarMul(r, ops.Add(a, b)), ops.Add(ops.ScalarMul(r, a), ops.ScalarMul(r, b)))
				}},
				{Number: 3030, Name: "scalar_addition_distributes", Params: []m.Param{scalar("r"), scalar("s"), param("a", m.RoleSelf)}, Law: func(t *m.Trial) error {
					r, s, a := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					scalars := t.For(m.RoleScalar)
					return expectSame(t, 2, ops.ScalarMul(scalars.Add(r, s), a), ops.Add(ops.ScalarMul(r, a), ops.ScalarMul(s, a)))
				}},
				{Number: 3040, Name: "scalar_multiplication_compatible", Params: []m.Param{scalar("r"), scalar("s"), param("a", m.RoleSelf)}, Law: func(t *m.Trial) error {
					r, s, a := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					scalars := t.For(m.RoleScalar)
					return expectSame(t, 2, ops.ScalarMul(scalars.Mul(r, s), a), ops.ScalarMul(r, ops.ScalarMul(s, a)))
				}},
				{Number: 3050, Name: "scalar_zero_annihilates", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return expectSame(t, 0, t.Ops().ScalarMul(t.Value(ValueScalarZero), a), t.Value(ValueZero))
				}},
			},
		},
		{
			Name:    ContractVectorSpace,
			Doc:     "A module over a field, with scalars accepted on either side.",
			Parents: []string{ContractRModule},
			Needs:   []m.Op{"MulScalar", "DivScalar"},
			Checks: []m.Check{
				{Number: 3110, Name: "mul_scalar_commutes", Params: []m.Param{param("a", m.RoleSelf), scalar("r")}, Law: func(t *m.Trial) error {
					a, r := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.MulScalar(a, r), ops.ScalarMul(r, a))
				}},
				{Number: 3120, Name: "div_scalar_inverts", Params: []m.Param{param("a", m.RoleSelf), scalar("r")}, Law: func(t *m.Trial) error {
					a, r := t.Arg(0), t.Arg(1)
					if err := t.Assume(!t.OpsOf(1).Equals(r, t.Value(ValueScalarZero))); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.DivScalar(ops.MulScalar(a, r), r), a)
				}},
			},
		},
		{
			Name:     ContractAffineSpace,
			Doc:      "Points translated by the vectors of VectorSpaceT.",
			Needs:    []m.Op{"Translate", "Difference", "VectorSpaceT.Add"},
			Requires: []string{ValueVectorSpaceZero},
			Checks: []m.Check{
				{Number: 3210, Name: "translate_by_zero", Params: self("p"), Law: func(t *m.Trial) error {
					p := t.Arg(0)
					return expectSame(t, 0, t.Ops().Translate(p, t.Value(ValueVectorSpaceZero)), p)
				}},
				{Number: 3220, Name: "translate_associative", Params: []m.Param{param("p", m.RoleSelf), vector("v"), vector("w")}, Law: func(t *m.Trial) error {
					p, v, w := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					return expectSame(t, 0, ops.Translate(ops.Translate(p, v), w), ops.Translate(p, t.For(m.RoleVector).Add(v, w)))
				}},
				{Number: 3230, Name: "difference_translates", Params: self("p", "q"), Law: func(t *m.Trial) error {
					p, q := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Translate(q, ops.Difference(p, q)), p)
				}},
				{Number: 3240, Name: "difference_of_self_is_zero", Params: self("p"), Law: func(t *m.Trial) error {
					p := t.Arg(0)
					got, want := t.Ops().Difference(p, p), t.Value(ValueVectorSpaceZero)
					return t.Expect(t.For(m.RoleVector).Equals(got, want), "%v - itself = %v", p, got)
				}},
			},
		},
	}
}
