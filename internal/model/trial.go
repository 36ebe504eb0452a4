package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leanovate/gopter"
)

// Violation is the error a law returns when its property does not hold.
type Violation struct {
	Check   string
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Check, v.Message)
}

// Trial is the view a law has of one set of generated witnesses.
type Trial struct {
	Check  Check
	Args   []any
	ops    *Ops
	values Values
}

// NewTrial prepares the arguments of a single law invocation.
func NewTrial(check Check, ops *Ops, values Values, args []any) *Trial {
	return &Trial{Check: check, Args: args, ops: ops, values: values}
}

// Arg returns the i-th witness.
func (t *Trial) Arg(i int) any {
	return t.Args[i]
}

// Ops returns the capabilities of the type under test.
func (t *Trial) Ops() *Ops {
	return t.ops
}

// OpsOf returns the capabilities of the i-th parameter's role.
func (t *Trial) OpsOf(i int) *Ops {
	return t.ops.For(t.Check.Params[i].Role)
}

// For returns the capabilities of role.
func (t *Trial) For(role Role) *Ops {
	return t.ops.For(role)
}

// Value returns a named constant supplied by the subject.
func (t *Trial) Value(name string) any {
	return t.values[name]
}

// Drawer returns the on-demand draw argument.
func (t *Trial) Drawer() (*Drawer, error) {
	for i, p := range t.Check.Params {
		if p.Role.Canonical() != RoleData {
			continue
		}

		if d, ok := t.Args[i].(*Drawer); ok {
			return d, nil
		}
	}

	return nil, errors.New(t.Check.ID() + " declares no data parameter")
}

// Assume discards the trial unless ok.
func (t *Trial) Assume(ok bool) error {
	if ok {
		return nil
	}

	return ErrDiscard
}

// Expect fails the trial unless ok.
func (t *Trial) Expect(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}

	return &Violation{Check: t.Check.ID(), Message: fmt.Sprintf(format, args...)}
}

// Drawer draws additional values inside one trial. Draws restart from the
// same seed on every invocation so shrinking replays them.
type Drawer struct {
	seed   int64
	size   int
	params *gopter.GenParameters
	drawn  []any
}

// NewDrawer creates a drawer seeded for one trial.
func NewDrawer(seed int64, size int) *Drawer {
	return &Drawer{seed: seed, size: size}
}

// Reset rewinds the drawer to its seed.
func (d *Drawer) Reset() {
	d.params = gopter.DefaultGenParameters().WithSize(d.size).CloneWithSeed(d.seed)
	d.drawn = d.drawn[:0]
}

// Draw produces one value from gen.
func (d *Drawer) Draw(gen gopter.Gen) (any, error) {
	if d.params == nil {
		d.Reset()
	}

	value, ok := gen(d.params).Retrieve()
	if !ok {
		return nil, ErrDiscard
	}

	d.drawn = append(d.drawn, value)

	return value, nil
}

func (d *Drawer) String() string {
	parts := make([]string, len(d.drawn))
	for i, v := range d.drawn {
		parts[i] = fmt.Sprintf("%v", v)
	}

	return "draws[" + strings.Join(parts, " ") + "]"
}
