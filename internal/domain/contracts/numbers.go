package contracts

import (
	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Numeric tower contract names.
const (
	ContractComplex  = "Complex"
	ContractReal     = "Real"
	ContractRational = "Rational"
	ContractIntegral = "Integral"
)

// numbers is the numeric tower. Integral leaves the tower below Rational
// because integer division is not a field inverse.
func numbers() []m.Contract {
	return []m.Contract{
		{
			Name:    ContractComplex,
			Parents: []string{ContractField, ContractAbsoluteValue, domain.ContractEquality},
			Needs:   []m.Op{"Conj"},
			Checks: []m.Check{
				{Number: 5010, Name: "conjugate_involution", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Conj(ops.Conj(a)), a)
				}},
				{Number: 5020, Name: "conjugate_of_sum", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Conj(ops.Add(a, b)), ops.Add(ops.Conj(a), ops.Conj(b)))
				}},
				{Number: 5030, Name: "conjugate_of_product", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Conj(ops.Mul(a, b)), ops.Mul(ops.Conj(a), ops.Conj(b)))
				}},
			},
		},
		{
			Name:     ContractReal,
			Parents:  []string{ContractComplex, domain.ContractTotalOrdering, ContractFloorDivMod},
			Needs:    []m.Op{"Floor", "Ceil", "Trunc", "Sub"},
			Requires: []string{ValueOne},
			Checks: []m.Check{
				{Number: 5110, Name: "floor_not_above", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					f := t.Ops().Floor(a)
					return t.Expect(t.Ops().LessEqual(f, a), "floor(%v) = %v", a, f)
				}},
				{Number: 5120, Name: "ceil_not_below", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					c := t.Ops().Ceil(a)
					return t.Expect(t.Ops().LessEqual(a, c), "ceil(%v) = %v", a, c)
				}},
				{Number: 5130, Name: "floor_ceil_within_one", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					gap := ops.Sub(ops.Ceil(a), ops.Floor(a))
					return t.Expect(ops.LessEqual(gap, t.Value(ValueOne)), "ceil(%v) - floor(%v) = %v", a, a, gap)
				}},
				{Number: 5140, Name: "trunc_rounds_toward_zero", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()

					want := ops.Ceil(a)
					if ops.LessEqual(t.Value(ValueZero), a) {
						want = ops.Floor(a)
					}

					return expectSame(t, 0, ops.Trunc(a), want)
				}},
			},
		},
		{
			Name:    ContractRational,
			Parents: []string{ContractReal},
			Checks: []m.Check{
				{Number: 5210, Name: "floor_idempotent", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					floor := t.Ops().Floor
					return expectSame(t, 0, floor(floor(a)), floor(a))
				}},
				{Number: 5220, Name: "floor_shifts_with_one", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					one := t.Value(ValueOne)
					return expectSame(t, 0, ops.Floor(ops.Add(a, one)), ops.Add(ops.Floor(a), one))
				}},
			},
		},
		{
			Name: ContractIntegral,
			Parents: []string{
				ContractCommutativeRing, domain.ContractTotalOrdering, ContractHashable,
				ContractFloorDivMod, ContractAbsoluteValue, ContractExponentiation, ContractBitShift,
			},
			Checks: []m.Check{
				{Number: 5310, Name: "floor_division_of_multiple", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.FloorDiv(ops.Mul(a, b), b), a)
				}},
				{Number: 5320, Name: "modulo_of_multiple", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.Mod(ops.Mul(a, b), b), t.Value(ValueZero))
				}},
			},
		},
	}
}
