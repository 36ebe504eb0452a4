package contracts

import (
	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Collection contract names beyond the structural ones.
const (
	ContractSizedIterableContainerWithEmpty = "SizedIterableContainerWithEmpty"
	ContractSet                             = "Set"
	ContractMutableSet                      = "MutableSet"
	ContractMapping                         = "Mapping"
	ContractMutableMapping                  = "MutableMapping"
	ContractSequence                        = "Sequence"
)

func element(name string) m.Param {
	return param(name, m.RoleElement)
}

func collect(t *m.Trial, c any) []any {
	var items []any
	for x := range t.Ops().Iter(c) {
		items = append(items, x)
	}

	return items
}

func count(t *m.Trial, c any) int {
	n := 0
	for range t.Ops().Iter(c) {
		n++
	}

	return n
}

// containsIterated reports whether iterating c yields a value equal to x,
// compared with the ops of the role of parameter i.
func containsIterated(t *m.Trial, i int, c, x any) bool {
	for y := range t.Ops().Iter(c) {
		if same(t, i, x, y) {
			return true
		}
	}

	return false
}

// Element parameters are relabelled to keys by mappings and to values by
// sequences.
func collections() []m.Contract {
	return []m.Contract{
		{
			Name:  domain.ContractIterable,
			Needs: []m.Op{"Iter"},
			Checks: []m.Check{
				{Number: 6010, Name: "iteration_repeatable", Params: self("c"), Law: func(t *m.Trial) error {
					c := t.Arg(0)
					first, second := count(t, c), count(t, c)
					return t.Expect(first == second, "iterated %d then %d items", first, second)
				}},
			},
		},
		{
			Name:  domain.ContractSized,
			Needs: []m.Op{"Len"},
			Checks: []m.Check{
				{Number: 6110, Name: "len_non_negative", Params: self("c"), Law: func(t *m.Trial) error {
					n := t.Ops().Len(t.Arg(0))
					return t.Expect(n >= 0, "len = %d", n)
				}},
			},
		},
		{
			Name:  domain.ContractContainer,
			Needs: []m.Op{"Contains"},
			Checks: []m.Check{
				{Number: 6210, Name: "contains_deterministic", Params: []m.Param{param("c", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					c, x := t.Arg(0), t.Arg(1)
					contains := t.Ops().Contains
					return t.Expect(contains(c, x) == contains(c, x), "membership of %v changed", x)
				}},
			},
		},
		{
			Name:    domain.ContractSizedOverIterable,
			Parents: []string{domain.ContractSized, domain.ContractIterable},
			Checks: []m.Check{
				{Number: 6310, Name: "len_matches_iteration", Params: self("c"), Law: func(t *m.Trial) error {
					c := t.Arg(0)
					n, iterated := t.Ops().Len(c), count(t, c)
					return t.Expect(n == iterated, "len = %d but iterated %d items", n, iterated)
				}},
			},
		},
		{
			Name:    domain.ContractContainerOverIterable,
			Parents: []string{domain.ContractContainer, domain.ContractIterable},
			Checks: []m.Check{
				{Number: 6410, Name: "iterated_items_contained", Params: self("c"), Law: func(t *m.Trial) error {
					c := t.Arg(0)
					for _, x := range collect(t, c) {
						if !t.Ops().Contains(c, x) {
							return t.Expect(false, "iterated %v is not contained", x)
						}
					}

					return nil
				}},
				{Number: 6420, Name: "contains_matches_iteration", Params: []m.Param{param("c", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					c, x := t.Arg(0), t.Arg(1)
					contains, iterated := t.Ops().Contains(c, x), containsIterated(t, 1, c, x)
					return t.Expect(contains == iterated, "contains(%v) = %t but iteration says %t", x, contains, iterated)
				}},
			},
		},
		{
			Name:     ContractSizedIterableContainerWithEmpty,
			Parents:  []string{domain.ContractSizedOverIterable, domain.ContractContainerOverIterable},
			Requires: []string{ValueEmpty},
			Checks: []m.Check{
				{Number: 6510, Name: "empty_has_no_length", Params: nil, Law: func(t *m.Trial) error {
					n := t.Ops().Len(t.Value(ValueEmpty))
					return t.Expect(n == 0, "len(empty) = %d", n)
				}},
				{Number: 6520, Name: "empty_contains_nothing", Params: []m.Param{element("x")}, Law: func(t *m.Trial) error {
					x := t.Arg(0)
					return t.Expect(!t.Ops().Contains(t.Value(ValueEmpty), x), "empty contains %v", x)
				}},
			},
		},
		{
			Name:    ContractSet,
			Doc:     "Finite sets ordered by inclusion, with union and intersection as the lattice.",
			Parents: []string{ContractSizedIterableContainerWithEmpty, ContractBoundedBelowLattice, domain.ContractPartialOrdering},
			Needs:   []m.Op{"Or", "And", "Xor", "Disjoint", "Contains"},
			Derived: []m.Derivation{
				{Value: ValueBottom, Derive: deriveFrom(ValueEmpty, func(_ *m.Ops, empty any) any { return empty })},
			},
			Checks: []m.Check{
				{Number: 6610, Name: "union_contains_either", Params: []m.Param{param("a", m.RoleSelf), param("b", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					return setMembership(t, t.Ops().Or, func(inA, inB bool) bool { return inA || inB })
				}},
				{Number: 6620, Name: "intersection_contains_both", Params: []m.Param{param("a", m.RoleSelf), param("b", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					return setMembership(t, t.Ops().And, func(inA, inB bool) bool { return inA && inB })
				}},
				{Number: 6630, Name: "symmetric_difference_contains_exactly_one", Params: []m.Param{param("a", m.RoleSelf), param("b", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					return setMembership(t, t.Ops().Xor, func(inA, inB bool) bool { return inA != inB })
				}},
				{Number: 6640, Name: "disjoint_iff_empty_intersection", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					disjoint, empty := ops.Disjoint(a, b), ops.Len(ops.And(a, b)) == 0
					return t.Expect(disjoint == empty, "disjoint(%v, %v) = %t", a, b, disjoint)
				}},
				{Number: 6650, Name: "subset_iff_union_absorbs", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					subset, absorbs := ops.LessEqual(a, b), same(t, 0, ops.Or(a, b), b)
					return t.Expect(subset == absorbs, "%v <= %v is %t", a, b, subset)
				}},
			},
		},
		{
			Name:    ContractMutableSet,
			Doc:     "In-place set updates. Laws mutate copies only.",
			Parents: []string{ContractSet},
			Needs:   []m.Op{"Insert", "Discard", "Clear", "Copy"},
			Checks: []m.Check{
				{Number: 6710, Name: "insert_then_contains", Params: []m.Param{param("a", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					a, x := t.Arg(0), t.Arg(1)
					ops := t.Ops()

					c := ops.Copy(a)
					ops.Insert(c, x)

					return t.Expect(ops.Contains(c, x), "%v missing after insert", x)
				}},
				{Number: 6720, Name: "discard_then_absent", Params: []m.Param{param("a", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					a, x := t.Arg(0), t.Arg(1)
					ops := t.Ops()

					c := ops.Copy(a)
					ops.Discard(c, x)

					return t.Expect(!ops.Contains(c, x), "%v present after discard", x)
				}},
				{Number: 6730, Name: "clear_empties", Params: self("a"), Law: func(t *m.Trial) error {
					ops := t.Ops()

					c := ops.Copy(t.Arg(0))
					ops.Clear(c)

					return expectSame(t, 0, c, t.Value(ValueEmpty))
				}},
				{Number: 6740, Name: "copy_is_independent", Params: []m.Param{param("a", m.RoleSelf), element("x")}, Law: func(t *m.Trial) error {
					a, x := t.Arg(0), t.Arg(1)
					ops := t.Ops()

					before := ops.Len(a)
					c := ops.Copy(a)
					ops.Insert(c, x)
					ops.Clear(c)

					return t.Expect(ops.Len(a) == before, "copy changed the original from %d to %d items", before, ops.Len(a))
				}},
			},
		},
		{
			Name:    ContractMapping,
			Parents: []string{ContractSizedIterableContainerWithEmpty},
			Relabel: m.Relabel{m.RoleElement: m.RoleKey},
			Needs:   []m.Op{"Get"},
			Checks: []m.Check{
				{Number: 6810, Name: "iterated_keys_resolve", Params: self("m"), Law: func(t *m.Trial) error {
					c := t.Arg(0)
					for _, k := range collect(t, c) {
						if _, ok := t.Ops().Get(c, k); !ok {
							return t.Expect(false, "iterated key %v has no value", k)
						}
					}

					return nil
				}},
				{Number: 6820, Name: "get_matches_contains", Params: []m.Param{param("m", m.RoleSelf), param("k", m.RoleKey)}, Law: func(t *m.Trial) error {
					c, k := t.Arg(0), t.Arg(1)
					ops := t.Ops()
					_, found := ops.Get(c, k)
					return t.Expect(found == ops.Contains(c, k), "get(%v) found = %t", k, found)
				}},
			},
		},
		{
			Name:    ContractMutableMapping,
			Doc:     "In-place mapping updates. Laws mutate copies only.",
			Parents: []string{ContractMapping},
			Needs:   []m.Op{"Set", "Delete", "Clear", "Copy", "Update"},
			Checks: []m.Check{
				{Number: 6910, Name: "set_then_get", Params: []m.Param{param("m", m.RoleSelf), param("k", m.RoleKey), param("v", m.RoleValue)}, Law: func(t *m.Trial) error {
					k, v := t.Arg(1), t.Arg(2)
					ops := t.Ops()

					c := ops.Copy(t.Arg(0))
					ops.Set(c, k, v)

					got, found := ops.Get(c, k)
					return t.Expect(found && same(t, 2, got, v), "get(%v) = %v, %t after set to %v", k, got, found, v)
				}},
				{Number: 6920, Name: "delete_drawn_key", Params: []m.Param{param("m", m.RoleSelf), data()}, Law: func(t *m.Trial) error {
					ops := t.Ops()
					keys := collect(t, t.Arg(0))
					if err := t.Assume(len(keys) > 0); err != nil {
						return err
					}

					i, err := drawInt(t, 0, len(keys)-1)
					if err != nil {
						return err
					}

					c := ops.Copy(t.Arg(0))
					ops.Delete(c, keys[i])

					if ops.Contains(c, keys[i]) {
						return t.Expect(false, "%v present after delete", keys[i])
					}

					return t.Expect(ops.Len(c) == len(keys)-1, "len = %d after deleting one of %d keys", ops.Len(c), len(keys))
				}},
				{Number: 6930, Name: "clear_empties", Params: self("m"), Law: func(t *m.Trial) error {
					ops := t.Ops()

					c := ops.Copy(t.Arg(0))
					ops.Clear(c)

					return t.Expect(ops.Len(c) == 0, "len = %d after clear", ops.Len(c))
				}},
				{Number: 6940, Name: "update_overwrites", Params: self("m", "n"), Law: func(t *m.Trial) error {
					src := t.Arg(1)
					ops := t.Ops()

					c := ops.Copy(t.Arg(0))
					ops.Update(c, src)

					for _, k := range collect(t, src) {
						want, _ := ops.Get(src, k)
						if got, _ := ops.Get(c, k); !t.For(m.RoleValue).Equals(got, want) {
							return t.Expect(false, "get(%v) = %v after update with %v", k, got, want)
						}
					}

					return nil
				}},
			},
		},
		{
			Name:    ContractSequence,
			Parents: []string{ContractSizedIterableContainerWithEmpty},
			Relabel: m.Relabel{m.RoleElement: m.RoleValue},
			Needs:   []m.Op{"Get", "Index", "Count"},
			Checks: []m.Check{
				{Number: 7010, Name: "get_matches_iteration", Params: self("s"), Law: func(t *m.Trial) error {
					s := t.Arg(0)
					for i, x := range collect(t, s) {
						got, ok := t.Ops().Get(s, i)
						if !ok || !t.For(m.RoleValue).Equals(got, x) {
							return t.Expect(false, "s[%d] = %v, iterated %v", i, got, x)
						}
					}

					return nil
				}},
				{Number: 7020, Name: "index_finds_first", Params: []m.Param{param("s", m.RoleSelf), param("x", m.RoleValue)}, Law: func(t *m.Trial) error {
					s, x := t.Arg(0), t.Arg(1)

					want := -1
					for i, y := range collect(t, s) {
						if same(t, 1, x, y) {
							want = i
							break
						}
					}

					got, found := t.Ops().Index(s, x)
					if want < 0 {
						return t.Expect(!found, "index(%v) = %d for a missing value", x, got)
					}

					return t.Expect(found && got == want, "index(%v) = %d, want %d", x, got, want)
				}},
				{Number: 7030, Name: "count_matches_iteration", Params: []m.Param{param("s", m.RoleSelf), param("x", m.RoleValue)}, Law: func(t *m.Trial) error {
					s, x := t.Arg(0), t.Arg(1)

					want := 0
					for _, y := range collect(t, s) {
						if same(t, 1, x, y) {
							want++
						}
					}

					got := t.Ops().Count(s, x)
					return t.Expect(got == want, "count(%v) = %d, want %d", x, got, want)
				}},
			},
		},
	}
}

func setMembership(t *m.Trial, op m.Binary, want func(inA, inB bool) bool) error {
	a, b, x := t.Arg(0), t.Arg(1), t.Arg(2)
	contains := t.Ops().Contains

	expected := want(contains(a, x), contains(b, x))
	got := contains(op(a, b), x)

	return t.Expect(got == expected, "membership of %v is %t, want %t", x, got, expected)
}
