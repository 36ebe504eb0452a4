package contracts

import (
	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// ContractHashable names the hashing contract.
const ContractHashable = "Hashable"

// Relation laws compare through the parameter's own role so that they stay
// valid when a child contract relabels them.
func relations() []m.Contract {
	return []m.Contract{
		{
			Name: domain.ContractEqualsOnly,
			Doc:  "An equivalence relation.",
			Checks: []m.Check{
				{Number: 101, Name: "equality_reflexive", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return t.Expect(same(t, 0, a, a), "%v != itself", a)
				}},
				{Number: 102, Name: "equality_symmetric", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					return t.Expect(same(t, 0, a, b) == same(t, 0, b, a), "%v and %v disagree", a, b)
				}},
				{Number: 103, Name: "equality_transitive", Params: self("a", "b", "c"), Law: func(t *m.Trial) error {
					a, b, c := t.Arg(0), t.Arg(1), t.Arg(2)
					if !same(t, 0, a, b) || !same(t, 0, b, c) {
						return nil
					}

					return t.Expect(same(t, 0, a, c), "%v == %v == %v but %v != %v", a, b, c, a, c)
				}},
			},
		},
		{
			Name:    domain.ContractEquality,
			Doc:     "Equality with a consistent inequality operator.",
			Parents: []string{domain.ContractEqualsOnly},
			Needs:   []m.Op{"NotEqual"},
			Checks: []m.Check{
				{Number: 111, Name: "not_equal_is_negation", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					return t.Expect(t.OpsOf(0).NotEqual(a, b) != same(t, 0, a, b), "%v != %v disagrees with ==", a, b)
				}},
				{Number: 112, Name: "not_equal_irreflexive", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return t.Expect(!t.OpsOf(0).NotEqual(a, a), "%v != itself", a)
				}},
			},
		},
		{
			Name:    ContractHashable,
			Doc:     "Equal values hash alike.",
			Parents: []string{domain.ContractEquality},
			Needs:   []m.Op{"Hash"},
			Checks: []m.Check{
				{Number: 121, Name: "hash_deterministic", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					hash := t.OpsOf(0).Hash
					return t.Expect(hash(a) == hash(a), "hash of %v changed", a)
				}},
				{Number: 122, Name: "hash_consistent_with_equality", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					if !same(t, 0, a, b) {
						return nil
					}

					hash := t.OpsOf(0).Hash
					return t.Expect(hash(a) == hash(b), "%v == %v with hashes %d and %d", a, b, hash(a), hash(b))
				}},
			},
		},
		{
			Name:    domain.ContractLessOrEqual,
			Doc:     "A preorder given by <= that is antisymmetric under ==.",
			Parents: []string{domain.ContractEqualsOnly},
			Needs:   []m.Op{"LessEqual"},
			Checks: []m.Check{
				{Number: 201, Name: "le_reflexive", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return t.Expect(t.OpsOf(0).LessEqual(a, a), "not %v <= %v", a, a)
				}},
				{Number: 202, Name: "le_antisymmetric", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					le := t.OpsOf(0).LessEqual
					if !le(a, b) || !le(b, a) {
						return nil
					}

					return t.Expect(same(t, 0, a, b), "%v <= %v <= %v but not equal", a, b, a)
				}},
				{Number: 203, Name: "le_transitive", Params: self("a", "b", "c"), Law: func(t *m.Trial) error {
					a, b, c := t.Arg(0), t.Arg(1), t.Arg(2)
					le := t.OpsOf(0).LessEqual
					if !le(a, b) || !le(b, c) {
						return nil
					}

					return t.Expect(le(a, c), "%v <= %v <= %v but not %v <= %v", a, b, c, a, c)
				}},
			},
		},
		{
			Name:    domain.ContractPartialOrdering,
			Doc:     "The strict and reversed comparisons agree with <=.",
			Parents: []string{domain.ContractLessOrEqual},
			Needs:   []m.Op{"Less", "Greater", "GreaterEqual"},
			Checks: []m.Check{
				{Number: 211, Name: "lt_is_le_and_not_equal", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.OpsOf(0)
					want := ops.LessEqual(a, b) && !same(t, 0, a, b)
					return t.Expect(ops.Less(a, b) == want, "%v < %v is %t", a, b, !want)
				}},
				{Number: 212, Name: "ge_is_reversed_le", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.OpsOf(0)
					return t.Expect(ops.GreaterEqual(a, b) == ops.LessEqual(b, a), "%v >= %v disagrees with <=", a, b)
				}},
				{Number: 213, Name: "gt_is_reversed_lt", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.OpsOf(0)
					return t.Expect(ops.Greater(a, b) == ops.Less(b, a), "%v > %v disagrees with <", a, b)
				}},
				{Number: 214, Name: "lt_irreflexive", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return t.Expect(!t.OpsOf(0).Less(a, a), "%v < itself", a)
				}},
			},
		},
		{
			Name:    domain.ContractTotalOrdering,
			Doc:     "Every pair is comparable, and Compare agrees with the operators.",
			Parents: []string{domain.ContractPartialOrdering},
			Needs:   []m.Op{"Compare"},
			Checks: []m.Check{
				{Number: 221, Name: "le_total", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					le := t.OpsOf(0).LessEqual
					return t.Expect(le(a, b) || le(b, a), "%v and %v are incomparable", a, b)
				}},
				{Number: 222, Name: "compare_consistent", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.OpsOf(0)

					c := ops.Compare(a, b)
					switch {
					case c < 0:
						return t.Expect(ops.Less(a, b), "compare(%v, %v) = %d but not <", a, b, c)
					case c > 0:
						return t.Expect(ops.Greater(a, b), "compare(%v, %v) = %d but not >", a, b, c)
					}

					return t.Expect(same(t, 0, a, b), "compare(%v, %v) = 0 but not ==", a, b)
				}},
				{Number: 223, Name: "trichotomy", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.OpsOf(0)

					n := 0
					for _, holds := range []bool{ops.Less(a, b), same(t, 0, a, b), ops.Greater(a, b)} {
						if holds {
							n++
						}
					}

					return t.Expect(n == 1, "%d of <, ==, > hold for %v and %v", n, a, b)
				}},
			},
		},
	}
}
