package contracts

import (
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Arithmetic contract names.
const (
	ContractAdditionMonoid       = "AdditionMonoid"
	ContractAdditionGroup        = "AdditionGroup"
	ContractAdditionAbelianGroup = "AdditionAbelianGroup"
	ContractAdditionExtensions   = "AdditionExtensions"
	ContractMultiplicationMonoid = "MultiplicationMonoid"
	ContractRing                 = "Ring"
	ContractCommutativeRing      = "CommutativeRing"
	ContractField                = "Field"
	ContractFloorDivMod          = "FloorDivMod"
	ContractExponentiation       = "Exponentiation"
	ContractAbsoluteValue        = "AbsoluteValue"
)

func add(o *m.Ops) m.Binary { return o.Add }
func mul(o *m.Ops) m.Binary { return o.Mul }

// nonZero discards trials where v is the subject's zero.
func nonZero(t *m.Trial, v any) error {
	return t.Assume(!t.Ops().Equals(v, t.Value(ValueZero)))
}

func arithmetic() []m.Contract {
	return []m.Contract{
		{
			Name:     ContractAdditionMonoid,
			Needs:    []m.Op{"Add"},
			Requires: []string{ValueZero},
			Checks: []m.Check{
				identity(2210, "addition_identity", ValueZero, add),
				associative(2220, "addition_associativity", add),
			},
		},
		{
			Name:    ContractAdditionGroup,
			Parents: []string{ContractAdditionMonoid},
			Needs:   []m.Op{"Neg", "Sub"},
			Checks: []m.Check{
				{Number: 2230, Name: "addition_inverse", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Add(a, ops.Neg(a)), t.Value(ValueZero))
				}},
				{Number: 2240, Name: "subtraction_is_negated_addition", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					return expectSame(t, 0, ops.Sub(a, b), ops.Add(a, ops.Neg(b)))
				}},
				{Number: 2250, Name: "negation_involution", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Neg(ops.Neg(a)), a)
				}},
			},
		},
		{
			Name:    ContractAdditionAbelianGroup,
			Parents: []string{ContractAdditionGroup},
			Checks: []m.Check{
				commutative(2260, "addition_commutativity", add),
			},
		},
		{
			Name:    ContractAdditionExtensions,
			Doc:     "Unary plus on top of an abelian group.",
			Parents: []string{ContractAdditionAbelianGroup},
			Needs:   []m.Op{"Pos"},
			Checks: []m.Check{
				{Number: 2270, Name: "unary_plus_identity", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return expectSame(t, 0, t.Ops().Pos(a), a)
				}},
			},
		},
		{
			Name:     ContractMultiplicationMonoid,
			Needs:    []m.Op{"Mul"},
			Requires: []string{ValueOne},
			Checks: []m.Check{
				identity(2310, "multiplication_identity", ValueOne, mul),
				associative(2320, "multiplication_associativity", mul),
			},
		},
		{
			Name:    ContractRing,
			Parents: []string{ContractAdditionAbelianGroup, ContractMultiplicationMonoid},
			Checks: []m.Check{
				{Number: 2410, Name: "left_distributivity", Params: self("a", "b", "c"), Law: func(t *m.Trial) error {
					a, b, c := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					return expectSame(t, 0, ops.Mul(a, ops.Add(b, c)), ops.Add(ops.Mul(a, b), ops.Mul(a, c)))
				}},
				{Number: 2420, Name: "right_distributivity", Params: self("a", "b", "c"), Law: func(t *m.Trial) error {
					a, b, c := t.Arg(0), t.Arg(1), t.Arg(2)
					ops := t.Ops()
					return expectSame(t, 0, ops.Mul(ops.Add(a, b), c), ops.Add(ops.Mul(a, c), ops.Mul(b, c)))
				}},
				absorbing(2430, "zero_annihilates", ValueZero, mul),
			},
		},
		{
			Name:    ContractCommutativeRing,
			Parents: []string{ContractRing},
			Checks: []m.Check{
				commutative(2440, "multiplication_commutativity", mul),
			},
		},
		{
			Name:    ContractField,
			Doc:     "A commutative ring where every non-zero element has an inverse.",
			Parents: []string{ContractCommutativeRing},
			Needs:   []m.Op{"Div"},
			Checks: []m.Check{
				{Number: 2510, Name: "multiplicative_inverse", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					if err := nonZero(t, a); err != nil {
						return err
					}

					ops := t.Ops()
					one := t.Value(ValueOne)
					return expectSame(t, 0, ops.Mul(a, ops.Div(one, a)), one)
				}},
				{Number: 2520, Name: "division_is_inverse_multiplication", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.Div(a, b), ops.Mul(a, ops.Div(t.Value(ValueOne), b)))
				}},
				{Number: 2530, Name: "division_round_trip", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.Mul(ops.Div(a, b), b), a)
				}},
			},
		},
		{
			Name:     ContractFloorDivMod,
			Doc:      "Floor division and modulo: the remainder takes the sign of the divisor.",
			Needs:    []m.Op{"FloorDiv", "Mod", "DivMod", "Add", "Mul", "LessEqual"},
			Requires: []string{ValueZero},
			Checks: []m.Check{
				{Number: 2610, Name: "floor_division_identity", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					return expectSame(t, 0, ops.Add(ops.Mul(ops.FloorDiv(a, b), b), ops.Mod(a, b)), a)
				}},
				{Number: 2620, Name: "divmod_matches", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					q, r := ops.DivMod(a, b)
					if err := expectSame(t, 0, q, ops.FloorDiv(a, b)); err != nil {
						return err
					}

					return expectSame(t, 0, r, ops.Mod(a, b))
				}},
				{Number: 2630, Name: "modulo_bounded_by_divisor", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if err := nonZero(t, b); err != nil {
						return err
					}

					ops := t.Ops()
					zero := t.Value(ValueZero)
					r := ops.Mod(a, b)

					if ops.LessEqual(zero, b) {
						return t.Expect(ops.LessEqual(zero, r) && ops.LessEqual(r, b), "%v mod %v = %v outside [0, %v]", a, b, r, b)
					}

					return t.Expect(ops.LessEqual(b, r) && ops.LessEqual(r, zero), "%v mod %v = %v outside [%v, 0]", a, b, r, b)
				}},
			},
		},
		{
			Name:     ContractExponentiation,
			Doc:      "Natural powers. Exponents are drawn from [0, 5].",
			Needs:    []m.Op{"Pow", "Mul"},
			Requires: []string{ValueOne},
			Checks: []m.Check{
				{Number: 2710, Name: "power_zero", Params: self("a"), Law: func(t *m.Trial) error {
					return expectSame(t, 0, t.Ops().Pow(t.Arg(0), 0), t.Value(ValueOne))
				}},
				{Number: 2720, Name: "power_one", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return expectSame(t, 0, t.Ops().Pow(a, 1), a)
				}},
				{Number: 2730, Name: "power_addition", Params: []m.Param{param("a", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					i, j, err := drawExponents(t)
					if err != nil {
						return err
					}

					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Pow(a, i+j), ops.Mul(ops.Pow(a, i), ops.Pow(a, j)))
				}},
				{Number: 2740, Name: "power_multiplication", Params: []m.Param{param("a", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					i, j, err := drawExponents(t)
					if err != nil {
						return err
					}

					a := t.Arg(0)
					ops := t.Ops()
					return expectSame(t, 0, ops.Pow(ops.Pow(a, i), j), ops.Pow(a, i*j))
				}},
			},
		},
		{
			Name: ContractAbsoluteValue,
			Doc:  "A multiplicative norm. Results are compared with the ops of MagnitudeT.",
			Needs: []m.Op{
				"Abs", "Neg", "Add", "Mul",
				"MagnitudeT.LessEqual", "MagnitudeT.Add", "MagnitudeT.Mul",
			},
			Requires: []string{ValueZero},
			Derived: []m.Derivation{
				{Value: ValueAbsZero, Derive: deriveFrom(ValueZero, func(ops *m.Ops, zero any) any { return ops.Abs(zero) })},
			},
			Checks: []m.Check{
				{Number: 2810, Name: "abs_non_negative", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					abs := t.Ops().Abs(a)
					return t.Expect(t.For(m.RoleMagnitude).LessEqual(t.Value(ValueAbsZero), abs), "|%v| = %v is negative", a, abs)
				}},
				{Number: 2820, Name: "abs_negation_invariant", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					got, want := ops.Abs(ops.Neg(a)), ops.Abs(a)
					return t.Expect(t.For(m.RoleMagnitude).Equals(got, want), "|-%v| = %v, |%v| = %v", a, got, a, want)
				}},
				{Number: 2830, Name: "abs_is_multiplicative", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					magnitude := t.For(m.RoleMagnitude)
					got, want := ops.Abs(ops.Mul(a, b)), magnitude.Mul(ops.Abs(a), ops.Abs(b))
					return t.Expect(magnitude.Equals(got, want), "|%v * %v| = %v, |%v| * |%v| = %v", a, b, got, a, b, want)
				}},
				{Number: 2840, Name: "abs_triangle_inequality", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					magnitude := t.For(m.RoleMagnitude)
					sum, bound := ops.Abs(ops.Add(a, b)), magnitude.Add(ops.Abs(a), ops.Abs(b))
					return t.Expect(magnitude.LessEqual(sum, bound), "|%v + %v| = %v exceeds %v", a, b, sum, bound)
				}},
			},
		},
	}
}

func drawExponents(t *m.Trial) (int, int, error) {
	i, err := drawInt(t, 0, 5)
	if err != nil {
		return 0, 0, err
	}

	j, err := drawInt(t, 0, 5)
	if err != nil {
		return 0, 0, err
	}

	return i, j, nil
}
