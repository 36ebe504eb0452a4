package domain

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func intOps() *m.Ops {
	return &m.Ops{
		Equal: func(a, b any) bool { return a.(int) == b.(int) },
		Add:   func(a, b any) any { return a.(int) + b.(int) },
		Sub:   func(a, b any) any { return a.(int) - b.(int) },
		Neg:   func(a any) any { return -a.(int) },
	}
}

func additionLaw(t *m.Trial) error {
	ops := t.Ops()
	a, zero := t.Arg(0), t.Value("zero")

	return t.Expect(ops.Equal(ops.Add(a, zero), a), "%v + 0 != %v", a, a)
}

func additionComposition(t *testing.T, o *m.Override) m.Composition {
	t.Helper()

	tax := built(t,
		m.Contract{
			Name:     "Monoid",
			Requires: []string{"zero"},
			Needs:    []m.Op{"Add", "Equal"},
			Checks: []m.Check{{
				Number: 1, Name: "identity",
				Params: []m.Param{{Name: "a"}},
				Law:    additionLaw,
			}},
		},
		m.Contract{
			Name:    "Module",
			Parents: []string{"Monoid"},
			Needs:   []m.Op{"ScalarT.Add"},
			Checks:  []m.Check{check(2, "scales", m.RoleSelf, m.RoleScalar)},
		},
	)

	loader := NewLoader(tax)
	comp, err := loader.Discover(m.Subject{Name: "int", Override: &m.Override{Has: []string{"Module"}}, Ops: &m.Ops{}})
	require.NoError(t, err)

	comp.Checks = ApplyOverride(checksOf(comp), o)

	return comp
}

func intSubject() m.Subject {
	ops := intOps()
	ops.Roles = map[m.Role]*m.Ops{m.RoleScalar: intOps()}

	return m.Subject{
		Name:   "int",
		Ops:    ops,
		Values: m.Values{"zero": 0},
		Bindings: m.Bindings{
			m.RoleSelf:   gen.IntRange(-10, 10),
			m.RoleScalar: gen.IntRange(0, 3),
		},
	}
}

func TestBind_ResolvesEveryRole(t *testing.T) {
	suite, err := Bind(additionComposition(t, nil), intSubject(), nil)
	require.NoError(t, err)

	require.Len(t, suite.Checks, 2)
	assert.Equal(t, "int", suite.Subject)
	assert.Equal(t, m.SourceOverride, suite.Source)

	for _, c := range suite.Checks {
		assert.Equal(t, len(c.Params), c.Arity())
	}

	identity, ok := suite.Lookup("0001_identity")
	require.True(t, ok)
	require.NoError(t, identity.Invoke([]any{7}))
}

func TestBind_UnboundRole(t *testing.T) {
	subject := intSubject()
	delete(subject.Bindings, m.RoleScalar)

	_, err := Bind(additionComposition(t, nil), subject, nil)
	require.ErrorIs(t, err, ErrUnboundRole)

	var unbound *UnboundRoleError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "0002_scales", unbound.Check)
	assert.Equal(t, "b", unbound.Param)
	assert.Equal(t, m.RoleScalar, unbound.Role)
}

func TestBind_ExplicitBindingsReplaceSubjects(t *testing.T) {
	subject := intSubject()
	subject.Bindings = nil

	_, err := Bind(additionComposition(t, nil), subject, m.Bindings{
		"":           gen.Const(1),
		m.RoleScalar: gen.Const(2),
	})
	require.NoError(t, err)
}

func TestBind_MissingValue(t *testing.T) {
	subject := intSubject()
	subject.Values = nil

	_, err := Bind(additionComposition(t, nil), subject, nil)
	require.ErrorIs(t, err, ErrMissingValue)

	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Monoid", missing.Contract)
	assert.Equal(t, "zero", missing.Value)
}

func TestBind_RequirementsOfInactiveChecksAreIgnored(t *testing.T) {
	subject := intSubject()
	subject.Values = nil

	_, err := Bind(additionComposition(t, &m.Override{Excluding: []string{"identity"}}), subject, nil)
	require.NoError(t, err)
}

func TestBind_MissingOperation(t *testing.T) {
	subject := intSubject()
	subject.Ops.Roles = nil

	_, err := Bind(additionComposition(t, nil), subject, nil)
	require.ErrorIs(t, err, ErrMissingOperation)

	var missing *MissingOperationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, m.Op("ScalarT.Add"), missing.Op)
	assert.Equal(t, "Module", missing.Contract)
}

func TestBind_DerivedValuesReachFixpoint(t *testing.T) {
	comp := additionComposition(t, nil)
	// The second derivation depends on the first, listed after it.
	comp.Derived = []m.Derivation{
		{Value: "two", Derive: func(ops *m.Ops, values m.Values) (any, error) {
			one, ok := values["one"]
			if !ok {
				return nil, errors.New("one missing")
			}

			return ops.Add(one, one), nil
		}},
		{Value: "one", Derive: func(_ *m.Ops, _ m.Values) (any, error) { return 1, nil }},
		{Value: "zero", Derive: func(_ *m.Ops, _ m.Values) (any, error) { return 99, nil }},
	}

	subject := intSubject()
	suite, err := Bind(comp, subject, nil)
	require.NoError(t, err)

	values := suite.Checks[0].values
	assert.Equal(t, 2, values["two"])
	assert.Equal(t, 0, values["zero"], "supplied values are not replaced")
	assert.Equal(t, m.Values{"zero": 0}, subject.Values)
}

func TestBind_DataRoleGetsDrawer(t *testing.T) {
	tax := built(t, m.Contract{
		Name: "Drawing",
		Checks: []m.Check{{
			Number: 1, Name: "draws",
			Params: []m.Param{{Name: "a"}, {Name: "data", Role: m.RoleData}},
			Law: func(t *m.Trial) error {
				d, err := t.Drawer()
				if err != nil {
					return err
				}

				v, err := d.Draw(gen.IntRange(0, 5))
				if err != nil {
					return err
				}

				return t.Expect(v.(int) >= 0 && v.(int) <= 5, "drew %v", v)
			},
		}},
	})

	comp, err := NewLoader(tax).Discover(m.Subject{Name: "int", Override: &m.Override{Has: []string{"Drawing"}}, Ops: &m.Ops{}})
	require.NoError(t, err)

	suite, err := Bind(comp, intSubject(), nil)
	require.NoError(t, err)

	res := suite.Checks[0].Prop().Check(gopter.DefaultTestParameters())
	assert.True(t, res.Passed())

	t.Run("data binding is ignored", func(t *testing.T) {
		subject := intSubject()
		subject.Bindings[m.RoleData] = gen.Const(7)

		suite, err := Bind(comp, subject, nil)
		require.NoError(t, err)

		res := suite.Checks[0].Prop().Check(gopter.DefaultTestParameters())
		assert.True(t, res.Passed())
	})
}

func TestBoundCheck_Prop(t *testing.T) {
	build := func(law m.Law, mode m.Mode) *BoundCheck {
		return &BoundCheck{
			PlannedCheck: m.PlannedCheck{Check: m.Check{Number: 1, Name: "x", Params: []m.Param{{Name: "a"}}, Law: law}, Mode: mode},
			Subject:      "int",
			gens:         []gopter.Gen{gen.IntRange(0, 10)},
			ops:          intOps(),
		}
	}

	params := gopter.DefaultTestParametersWithSeed(3)

	t.Run("discard", func(t *testing.T) {
		res := build(func(*m.Trial) error { return m.ErrDiscard }, m.ModeActive).Prop().Check(params)
		assert.Equal(t, gopter.TestExhausted, res.Status)
	})

	t.Run("violation", func(t *testing.T) {
		res := build(func(t *m.Trial) error { return t.Expect(false, "never") }, m.ModeActive).Prop().Check(params)
		assert.Equal(t, gopter.TestFailed, res.Status)
	})

	t.Run("panic", func(t *testing.T) {
		res := build(func(*m.Trial) error { panic("boom") }, m.ModeActive).Prop().Check(params)
		assert.Equal(t, gopter.TestError, res.Status)
		require.Error(t, res.Error)
		assert.Contains(t, res.Error.Error(), "boom")
	})

	t.Run("excluded passes", func(t *testing.T) {
		res := build(func(t *m.Trial) error { return t.Expect(false, "never") }, m.ModeExcluded).Prop().Check(params)
		assert.True(t, res.Passed())
	})
}
