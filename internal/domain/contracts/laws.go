// Package contracts holds the static law tables of the default taxonomy and
// the registry that maps the built-in kinds onto them.
package contracts

import (
	"fmt"

	"github.com/leanovate/gopter/gen"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Value names shared by the law tables.
const (
	ValueZero            = "zero"
	ValueOne             = "one"
	ValueTop             = "top"
	ValueBottom          = "bottom"
	ValueEmpty           = "empty"
	ValueAbsZero         = "abs_zero"
	ValueScalarOne       = "scalar_one"
	ValueScalarZero      = "scalar_zero"
	ValueVectorSpaceZero = "vector_space_zero"
)

func param(name string, role m.Role) m.Param {
	return m.Param{Name: name, Role: role}
}

// self declares parameters over the type under test.
func self(names ...string) []m.Param {
	params := make([]m.Param, len(names))
	for i, name := range names {
		params[i] = m.Param{Name: name}
	}

	return params
}

func data() m.Param {
	return m.Param{Name: "data", Role: m.RoleData}
}

// same compares two values with the equality of the i-th parameter's role.
func same(t *m.Trial, i int, a, b any) bool {
	return t.OpsOf(i).Equals(a, b)
}

func expectSame(t *m.Trial, i int, got, want any) error {
	return t.Expect(same(t, i, got, want), "got %v, want %v", got, want)
}

// powerOfTwo builds 2**n from the subject's one and addition.
func powerOfTwo(ops *m.Ops, one any, n int) any {
	two := ops.Add(one, one)

	p := one
	for range n {
		p = ops.Mul(p, two)
	}

	return p
}

// drawInt draws an int in [lo, hi] through the trial's data parameter.
func drawInt(t *m.Trial, lo, hi int) (int, error) {
	d, err := t.Drawer()
	if err != nil {
		return 0, err
	}

	v, err := d.Draw(gen.IntRange(lo, hi))
	if err != nil {
		return 0, err
	}

	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("drawn %T, want int", v)
	}

	return n, nil
}

func deriveFrom(name string, fn func(ops *m.Ops, v any) any) func(*m.Ops, m.Values) (any, error) {
	return func(ops *m.Ops, values m.Values) (any, error) {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("derivation needs %s", name)
		}

		return fn(ops, v), nil
	}
}
