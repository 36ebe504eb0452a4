package model

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_IDAndSignature(t *testing.T) {
	c := Check{Number: 210, Name: "addition_identity", Params: []Param{{Name: "a"}, {Name: "x", Role: RoleElement}}}

	assert.Equal(t, "0210_addition_identity", c.ID())
	assert.Equal(t, "(a ClassUnderTest, x ElementT)", c.Signature())
	assert.Equal(t, []Role{RoleSelf, RoleElement}, c.Roles())
}

func TestCheck_Relabelled(t *testing.T) {
	c := Check{Number: 1, Name: "x", Params: []Param{{Name: "c"}, {Name: "x", Role: RoleElement}}}

	relabelled := c.Relabelled(Relabel{RoleElement: RoleKey})
	assert.Equal(t, []Role{RoleSelf, RoleKey}, relabelled.Roles())
	assert.Equal(t, RoleElement, c.Params[1].Role, "the original is unchanged")

	assert.True(t, c.SameSignature(c.Relabelled(nil)))
	assert.False(t, c.SameSignature(relabelled))
}

func TestRelabel_SelfIsCanonical(t *testing.T) {
	rule := Relabel{RoleSelf: RoleDomain}

	assert.Equal(t, RoleDomain, rule.Apply(""))
	assert.Equal(t, RoleDomain, rule.Apply(RoleSelf))
	assert.Equal(t, RoleCodomain, rule.Apply(RoleCodomain))
}

func TestBindings_Lookup(t *testing.T) {
	ints := gen.Int()

	b := Bindings{"": ints}
	got, ok := b.Lookup(RoleSelf)
	require.True(t, ok)
	assert.NotNil(t, got)

	_, ok = b.Lookup(RoleScalar)
	assert.False(t, ok)

	_, ok = Bindings{RoleSelf: nil}.Lookup(RoleSelf)
	assert.False(t, ok)
}

func TestOps_HasAndFor(t *testing.T) {
	scalars := &Ops{Add: func(a, b any) any { return a }}
	ops := &Ops{Equal: func(a, b any) bool { return true }, Roles: map[Role]*Ops{RoleScalar: scalars}}

	assert.True(t, ops.Has("Equal"))
	assert.False(t, ops.Has("Add"))
	assert.False(t, ops.Has("Roles"))
	assert.False(t, ops.Has("NoSuchOp"))
	assert.False(t, (*Ops)(nil).Has("Equal"))

	streams := &Ops{Open: func(a any) any { return a }, Members: func() []any { return nil }}
	assert.True(t, streams.Has("Open"))
	assert.True(t, streams.Has("Members"))
	assert.False(t, streams.Has("Parse"))

	assert.Same(t, ops, ops.For(""))
	assert.Same(t, scalars, ops.For(RoleScalar))
	assert.True(t, ops.For(RoleKey).Equals([]int{1}, []int{1}))
	assert.False(t, ops.For(RoleKey).Has("Add"))
}

func TestTrial_ExpectAndAssume(t *testing.T) {
	trial := NewTrial(Check{Number: 7, Name: "law"}, &Ops{}, Values{"zero": 0}, []any{3})

	assert.Equal(t, 3, trial.Arg(0))
	assert.Equal(t, 0, trial.Value("zero"))
	assert.Nil(t, trial.Value("one"))

	require.NoError(t, trial.Expect(true, "unused"))

	err := trial.Expect(false, "%d is odd", 3)
	var violation *Violation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "0007_law", violation.Check)
	assert.Equal(t, "3 is odd", violation.Message)

	assert.NoError(t, trial.Assume(true))
	assert.True(t, errors.Is(trial.Assume(false), ErrDiscard))
}

func TestTrial_Drawer(t *testing.T) {
	check := Check{Number: 1, Name: "draws", Params: []Param{{Name: "a"}, {Name: "data", Role: RoleData}}}
	drawer := NewDrawer(11, 10)

	d, err := NewTrial(check, &Ops{}, nil, []any{1, drawer}).Drawer()
	require.NoError(t, err)
	assert.Same(t, drawer, d)

	_, err = NewTrial(Check{Number: 2, Name: "plain"}, &Ops{}, nil, nil).Drawer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0002_plain")
}

func TestDrawer_ReplaysAfterReset(t *testing.T) {
	d := NewDrawer(5, 30)

	first, err := d.Draw(gen.IntRange(0, 1000))
	require.NoError(t, err)
	_, err = d.Draw(gen.IntRange(0, 1000))
	require.NoError(t, err)

	d.Reset()

	again, err := d.Draw(gen.IntRange(0, 1000))
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Contains(t, d.String(), "draws[")
}

func TestStatus_Text(t *testing.T) {
	for s := Passed; s <= TimedOut; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var unknown Status
	require.NoError(t, unknown.UnmarshalText([]byte("bogus")))
	assert.Equal(t, Errored, unknown)
}

func TestSubject_Kinds(t *testing.T) {
	s := Subject{Name: "int64", Ancestry: []string{"Integral", "Real"}}

	assert.Equal(t, []string{"int64", "Integral", "Real"}, s.Kinds())
	assert.True(t, s.IsA("Real"))
	assert.False(t, s.IsA("Complex"))
}

func TestOverride_IsZero(t *testing.T) {
	assert.True(t, (*Override)(nil).IsZero())
	assert.True(t, (&Override{}).IsZero())
	assert.False(t, (&Override{Skipping: []string{"0220"}}).IsZero())
}
