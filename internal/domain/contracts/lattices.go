package contracts

import (
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Lattice contract names.
const (
	ContractLatticeOr             = "LatticeOr"
	ContractLatticeAnd            = "LatticeAnd"
	ContractLattice               = "Lattice"
	ContractBoundedBelowLattice   = "BoundedBelowLattice"
	ContractBoundedLattice        = "BoundedLattice"
	ContractLatticeWithComplement = "LatticeWithComplement"
	ContractBitShift              = "BitShift"
)

func commutative(number int, name string, op func(*m.Ops) m.Binary) m.Check {
	return m.Check{Number: number, Name: name, Params: self("a", "b"), Law: func(t *m.Trial) error {
		a, b := t.Arg(0), t.Arg(1)
		f := op(t.Ops())
		return expectSame(t, 0, f(a, b), f(b, a))
	}}
}

func associative(number int, name string, op func(*m.Ops) m.Binary) m.Check {
	return m.Check{Number: number, Name: name, Params: self("a", "b", "c"), Law: func(t *m.Trial) error {
		a, b, c := t.Arg(0), t.Arg(1), t.Arg(2)
		f := op(t.Ops())
		return expectSame(t, 0, f(f(a, b), c), f(a, f(b, c)))
	}}
}

func idempotent(number int, name string, op func(*m.Ops) m.Binary) m.Check {
	return m.Check{Number: number, Name: name, Params: self("a"), Law: func(t *m.Trial) error {
		a := t.Arg(0)
		return expectSame(t, 0, op(t.Ops())(a, a), a)
	}}
}

func identity(number int, name, value string, op func(*m.Ops) m.Binary) m.Check {
	return m.Check{Number: number, Name: name, Params: self("a"), Law: func(t *m.Trial) error {
		a, e := t.Arg(0), t.Value(value)
		f := op(t.Ops())

		if err := expectSame(t, 0, f(a, e), a); err != nil {
			return err
		}

		return expectSame(t, 0, f(e, a), a)
	}}
}

func absorbing(number int, name, value string, op func(*m.Ops) m.Binary) m.Check {
	return m.Check{Number: number, Name: name, Params: self("a"), Law: func(t *m.Trial) error {
		a, e := t.Arg(0), t.Value(value)
		return expectSame(t, 0, op(t.Ops())(a, e), e)
	}}
}

func or(o *m.Ops) m.Binary  { return o.Or }
func and(o *m.Ops) m.Binary { return o.And }

func lattices() []m.Contract {
	return []m.Contract{
		{
			Name:  ContractLatticeOr,
			Doc:   "A join semilattice under |.",
			Needs: []m.Op{"Or"},
			Checks: []m.Check{
				commutative(301, "or_commutative", or),
				associative(302, "or_associative", or),
				idempotent(303, "or_idempotent", or),
			},
		},
		{
			Name:  ContractLatticeAnd,
			Doc:   "A meet semilattice under &.",
			Needs: []m.Op{"And"},
			Checks: []m.Check{
				commutative(311, "and_commutative", and),
				associative(312, "and_associative", and),
				idempotent(313, "and_idempotent", and),
			},
		},
		{
			Name:    ContractLattice,
			Parents: []string{ContractLatticeOr, ContractLatticeAnd},
			Checks: []m.Check{
				{Number: 321, Name: "absorption_or_and", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Or(a, ops.And(a, b)), a)
				}},
				{Number: 322, Name: "absorption_and_or", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.And(a, ops.Or(a, b)), a)
				}},
			},
		},
		{
			Name:     ContractBoundedBelowLattice,
			Parents:  []string{ContractLattice},
			Requires: []string{ValueBottom},
			Checks: []m.Check{
				identity(331, "bottom_or_identity", ValueBottom, or),
				absorbing(332, "bottom_and_absorbing", ValueBottom, and),
			},
		},
		{
			Name:     ContractBoundedLattice,
			Parents:  []string{ContractBoundedBelowLattice},
			Requires: []string{ValueTop},
			Checks: []m.Check{
				identity(341, "top_and_identity", ValueTop, and),
				absorbing(342, "top_or_absorbing", ValueTop, or),
			},
		},
		{
			Name:    ContractLatticeWithComplement,
			Doc:     "A Boolean algebra: a bounded lattice where ~ complements.",
			Parents: []string{ContractBoundedLattice},
			Needs:   []m.Op{"Invert"},
			Checks: []m.Check{
				{Number: 351, Name: "complement_or_top", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Or(a, ops.Invert(a)), t.Value(ValueTop))
				}},
				{Number: 352, Name: "complement_and_bottom", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.And(a, ops.Invert(a)), t.Value(ValueBottom))
				}},
				{Number: 353, Name: "complement_involution", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Invert(ops.Invert(a)), a)
				}},
				{Number: 354, Name: "de_morgan", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Invert(ops.Or(a, b)), ops.And(ops.Invert(a), ops.Invert(b)))
				}},
			},
		},
		{
			Name:     ContractBitShift,
			Doc:      "Shifts are multiplication and division by powers of two. Shift counts are drawn from [0, 7].",
			Needs:    []m.Op{"Shl", "Shr", "Add", "Mul"},
			Requires: []string{ValueOne},
			Checks: []m.Check{
				{Number: 401, Name: "shift_by_zero", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()

					if err := expectSame(t, 0, ops.Shl(a, 0), a); err != nil {
						return err
					}

					return expectSame(t, 0, ops.Shr(a, 0), a)
				}},
				{Number: 402, Name: "shl_is_multiplication", Params: []m.Param{param("a", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					n, err := drawInt(t, 0, 7)
					if err != nil {
						return err
					}

					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Shl(a, n), ops.Mul(a, powerOfTwo(ops, t.Value(ValueOne), n)))
				}},
				{Number: 403, Name: "shl_composes", Params: []m.Param{param("a", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					return composedShift(t, t.Ops().Shl)
				}},
				{Number: 404, Name: "shr_composes", Params: []m.Param{param("a", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					return composedShift(t, t.Ops().Shr)
				}},
			},
		},
	}
}

func composedShift(t *m.Trial, shift m.Binary) error {
	i, err := drawInt(t, 0, 7)
	if err != nil {
		return err
	}

	j, err := drawInt(t, 0, 7)
	if err != nil {
		return err
	}

	a := t.Arg(0)

	return expectSame(t, 0, shift(shift(a, i), j), shift(a, i+j))
}
