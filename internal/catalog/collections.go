package catalog

import (
	"fmt"
	"iter"
	"maps"
	"math/bits"
	"slices"
	"strings"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func intOps() *m.Ops {
	ops := &m.Ops{}
	ordered[int](ops)

	return ops
}

func stringOps() *m.Ops {
	ops := &m.Ops{}
	ordered[string](ops)

	return ops
}

func seq[T any](items []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func ints(a any) []int {
	return a.([]int)
}

func sliceSubject() m.Subject {
	items := gen.IntRange(-5, 5)

	ops := &m.Ops{
		Equal:    func(a, b any) bool { return slices.Equal(ints(a), ints(b)) },
		Len:      func(a any) int { return len(ints(a)) },
		Iter:     func(a any) iter.Seq[any] { return seq(ints(a)) },
		Contains: func(c, x any) bool { return slices.Contains(ints(c), x.(int)) },
		Get: func(c, k any) (any, bool) {
			s, i := ints(c), k.(int)
			if i < 0 || i >= len(s) {
				return nil, false
			}

			return s[i], true
		},
		Index: func(s, x any) (int, bool) {
			i := slices.Index(ints(s), x.(int))
			return i, i >= 0
		},
		Count: func(s, x any) int {
			n := 0
			for _, y := range ints(s) {
				if y == x.(int) {
					n++
				}
			}

			return n
		},
		Roles: map[m.Role]*m.Ops{m.RoleValue: intOps()},
	}

	return m.Subject{
		Name:     "[]int",
		Ancestry: []string{contracts.ContractSequence},
		Ops:      ops,
		Values:   m.Values{contracts.ValueEmpty: []int{}},
		Bindings: m.Bindings{
			m.RoleSelf:  gen.SliceOf(items),
			m.RoleValue: items,
		},
	}
}

func dict(a any) map[string]int {
	return a.(map[string]int)
}

func mapSubject() m.Subject {
	keys := gen.IntRange(0, 5).Map(func(i int) string { return string(rune('a' + i)) })
	values := gen.IntRange(-9, 9)

	ops := &m.Ops{
		Equal: func(a, b any) bool { return maps.Equal(dict(a), dict(b)) },
		Len:   func(a any) int { return len(dict(a)) },
		// Keys are yielded sorted so that draws over them replay.
		Iter:     func(a any) iter.Seq[any] { return seq(slices.Sorted(maps.Keys(dict(a)))) },
		Contains: func(c, k any) bool {
			_, ok := dict(c)[k.(string)]
			return ok
		},
		Get: func(c, k any) (any, bool) {
			v, ok := dict(c)[k.(string)]
			return v, ok
		},
		Set:    func(c, k, v any) { dict(c)[k.(string)] = v.(int) },
		Delete: func(c, k any) { delete(dict(c), k.(string)) },
		Clear:  func(c any) { clear(dict(c)) },
		Update: func(dst, src any) { maps.Copy(dict(dst), dict(src)) },
		Copy: func(a any) any {
			c := make(map[string]int, len(dict(a)))
			maps.Copy(c, dict(a))

			return c
		},
		Roles: map[m.Role]*m.Ops{
			m.RoleKey:   stringOps(),
			m.RoleValue: intOps(),
		},
	}

	return m.Subject{
		Name:     "map[string]int",
		Ancestry: []string{contracts.ContractMutableMapping, contracts.ContractMapping},
		Ops:      ops,
		Values:   m.Values{contracts.ValueEmpty: map[string]int{}},
		Bindings: m.Bindings{
			m.RoleSelf:  gen.MapOf(keys, values),
			m.RoleKey:   keys,
			m.RoleValue: values,
		},
	}
}

// Set is a finite set of ints.
type Set map[int]struct{}

// NewSet builds a set from its members.
func NewSet(members ...int) Set {
	s := make(Set, len(members))
	for _, x := range members {
		s[x] = struct{}{}
	}

	return s
}

// Members returns the members in ascending order.
func (s Set) Members() []int {
	return slices.Sorted(maps.Keys(s))
}

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, x := range s.Members() {
		parts = append(parts, fmt.Sprint(x))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Set) subsetOf(t Set) bool {
	for x := range s {
		if _, ok := t[x]; !ok {
			return false
		}
	}

	return true
}

func (s Set) filter(keep func(x int) bool, others ...Set) Set {
	out := make(Set)

	for _, other := range append([]Set{s}, others...) {
		for x := range other {
			if keep(x) {
				out[x] = struct{}{}
			}
		}
	}

	return out
}

func set(a any) Set {
	return a.(Set)
}

func frozenSetOps() *m.Ops {
	subset := func(a, b any) bool { return set(a).subsetOf(set(b)) }
	equal := func(a, b any) bool { return len(set(a)) == len(set(b)) && subset(a, b) }

	return &m.Ops{
		Equal:        equal,
		NotEqual:     func(a, b any) bool { return !equal(a, b) },
		LessEqual:    subset,
		Less:         func(a, b any) bool { return subset(a, b) && !equal(a, b) },
		Greater:      func(a, b any) bool { return subset(b, a) && !equal(a, b) },
		GreaterEqual: func(a, b any) bool { return subset(b, a) },

		Or: func(a, b any) any { return set(a).filter(func(int) bool { return true }, set(b)) },
		And: func(a, b any) any {
			return set(a).filter(func(x int) bool {
				_, ok := set(b)[x]
				return ok
			})
		},
		Xor: func(a, b any) any {
			return set(a).filter(func(x int) bool {
				_, inA := set(a)[x]
				_, inB := set(b)[x]

				return inA != inB
			}, set(b))
		},
		Disjoint: func(a, b any) bool {
			for x := range set(a) {
				if _, ok := set(b)[x]; ok {
					return false
				}
			}

			return true
		},

		Len:      func(a any) int { return len(set(a)) },
		Iter:     func(a any) iter.Seq[any] { return seq(set(a).Members()) },
		Contains: func(c, x any) bool {
			_, ok := set(c)[x.(int)]
			return ok
		},
		Roles: map[m.Role]*m.Ops{m.RoleElement: intOps()},
	}
}

var (
	members = gen.IntRange(0, 9)
	sets    = gen.SliceOf(members).Map(func(xs []int) Set { return NewSet(xs...) })
)

func frozenSetSubject() m.Subject {
	return m.Subject{
		Name:     "FrozenSet[int]",
		Ancestry: []string{contracts.ContractSet},
		Ops:      frozenSetOps(),
		Values:   m.Values{contracts.ValueEmpty: Set{}},
		Bindings: m.Bindings{m.RoleSelf: sets, m.RoleElement: members},
	}
}

func setSubject() m.Subject {
	ops := frozenSetOps()
	ops.Insert = func(c, x any) { set(c)[x.(int)] = struct{}{} }
	ops.Discard = func(c, x any) { delete(set(c), x.(int)) }
	ops.Clear = func(c any) { clear(set(c)) }
	ops.Copy = func(a any) any { return NewSet(set(a).Members()...) }

	return m.Subject{
		Name:     "Set[int]",
		Ancestry: []string{contracts.ContractMutableSet, contracts.ContractSet},
		Ops:      ops,
		Values:   m.Values{contracts.ValueEmpty: Set{}},
		Bindings: m.Bindings{m.RoleSelf: sets, m.RoleElement: members},
	}
}

// IntSet is a sorted list of distinct ints. It declares the sized, iterable
// and container operations only.
type IntSet []int

func intSetSubject() m.Subject {
	ops := &m.Ops{
		Len:  func(a any) int { return len(a.(IntSet)) },
		Iter: func(a any) iter.Seq[any] { return seq(a.(IntSet)) },
		Contains: func(c, x any) bool {
			_, found := slices.BinarySearch(c.(IntSet), x.(int))
			return found
		},
		Roles: map[m.Role]*m.Ops{m.RoleElement: intOps()},
	}

	intSets := gen.SliceOf(members).Map(func(xs []int) IntSet {
		return IntSet(NewSet(xs...).Members())
	})

	return m.Subject{
		Name:     "IntSet",
		Ops:      ops,
		Bindings: m.Bindings{m.RoleSelf: intSets, m.RoleElement: members},
	}
}

// BitSet holds the ints 0 to 63 as bits. It is a container with equality
// but cannot be iterated.
type BitSet uint64

func (b BitSet) String() string {
	return fmt.Sprintf("%#x(%d)", uint64(b), bits.OnesCount64(uint64(b)))
}

func bitSetSubject() m.Subject {
	ops := &m.Ops{
		Equal:    func(a, b any) bool { return a.(BitSet) == b.(BitSet) },
		Contains: func(c, x any) bool { return c.(BitSet)&(1<<uint(x.(int))) != 0 },
		Roles:    map[m.Role]*m.Ops{m.RoleElement: intOps()},
	}

	return m.Subject{
		Name: "BitSet",
		Ops:  ops,
		Bindings: m.Bindings{
			m.RoleSelf:    gen.UInt64().Map(func(v uint64) BitSet { return BitSet(v) }),
			m.RoleElement: gen.IntRange(0, 63),
		},
	}
}
