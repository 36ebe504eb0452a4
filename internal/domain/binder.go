package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// BoundCheck is a composed check with a generator attached to every
// parameter. It runs independently of the other checks of its suite.
type BoundCheck struct {
	m.PlannedCheck

	Subject string

	gens   []gopter.Gen
	ops    *m.Ops
	values m.Values
}

// Suite is the flat list of bound checks produced for one subject.
type Suite struct {
	Subject   string
	Source    m.DiscoverySource
	Contracts []string
	Checks    []*BoundCheck
}

// Bind resolves every role of every check in comp to a generator. When
// bindings is nil the subject's own bindings are used. Neither the
// composition nor the subject is modified.
func Bind(comp m.Composition, subject m.Subject, bindings m.Bindings) (*Suite, error) {
	if bindings == nil {
		bindings = subject.Bindings
	}

	values := deriveValues(comp, subject)

	suite := &Suite{
		Subject:   comp.Subject,
		Source:    comp.Source,
		Contracts: append([]string(nil), comp.Contracts...),
		Checks:    make([]*BoundCheck, 0, len(comp.Checks)),
	}

	if suite.Subject == "" {
		suite.Subject = subject.Name
	}

	checked := make(map[string]bool)

	for _, planned := range comp.Checks {
		gens := make([]gopter.Gen, len(planned.Params))

		for i, param := range planned.Params {
			role := param.Role.Canonical()

			// The data role always draws on demand, whatever the bindings say.
			if role == m.RoleData {
				gens[i] = drawerGen
				continue
			}

			if gen, ok := bindings.Lookup(role); ok {
				gens[i] = gen
				continue
			}

			return nil, &UnboundRoleError{Subject: suite.Subject, Check: planned.ID(), Param: param.Name, Role: role}
		}

		if planned.Mode == m.ModeActive && !checked[planned.Origin] {
			if err := checkRequirements(comp, subject, values, planned.Origin); err != nil {
				return nil, err
			}

			checked[planned.Origin] = true
		}

		suite.Checks = append(suite.Checks, &BoundCheck{
			PlannedCheck: planned,
			Subject:      suite.Subject,
			gens:         gens,
			ops:          subject.Ops,
			values:       values,
		})
	}

	return suite, nil
}

// deriveValues copies the subject values and adds the derivations of the
// composition that can be computed. A derivation may depend on another.
func deriveValues(comp m.Composition, subject m.Subject) m.Values {
	values := make(m.Values, len(subject.Values)+len(comp.Derived))
	maps.Copy(values, subject.Values)

	pending := slices.Clone(comp.Derived)

	for len(pending) > 0 {
		var left []m.Derivation

		for _, d := range pending {
			if _, ok := values[d.Value]; ok {
				continue
			}

			v, err := d.Derive(subject.Ops, values)
			if err != nil {
				left = append(left, d)
				continue
			}

			values[d.Value] = v
		}

		if len(left) == len(pending) {
			break
		}

		pending = left
	}

	return values
}

func checkRequirements(comp m.Composition, subject m.Subject, values m.Values, contract string) error {
	for _, name := range comp.Requirements[contract] {
		if _, ok := values[name]; !ok {
			return &MissingValueError{Subject: comp.Subject, Contract: contract, Value: name}
		}
	}

	for _, op := range comp.Operations[contract] {
		if !hasOp(subject.Ops, op) {
			return &MissingOperationError{Subject: comp.Subject, Contract: contract, Op: op}
		}
	}

	return nil
}

// hasOp accepts either a field name or a role qualified one, e.g.
// "ScalarT.Add".
func hasOp(ops *m.Ops, op m.Op) bool {
	role, field, qualified := strings.Cut(string(op), ".")
	if !qualified {
		return ops.Has(op)
	}

	return ops.For(m.Role(role)).Has(m.Op(field))
}

func drawerGen(p *gopter.GenParameters) *gopter.GenResult {
	return gopter.NewGenResult(m.NewDrawer(p.Rng.Int63(), p.MaxSize), gopter.NoShrinker)
}

// Invoke runs the law once against args. Excluded and skipped checks do
// nothing. A panic in the law is returned as an error.
func (b *BoundCheck) Invoke(args []any) (err error) {
	if b.Mode != m.ModeActive || b.Law == nil {
		return nil
	}

	for _, arg := range args {
		if d, ok := arg.(*m.Drawer); ok {
			d.Reset()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", b.ID(), r)
		}
	}()

	return b.Law(m.NewTrial(b.Check, b.ops, b.values, args))
}

// Arity is the number of generated witnesses per trial.
func (b *BoundCheck) Arity() int {
	return len(b.gens)
}

// Prop exposes the check as a gopter property.
func (b *BoundCheck) Prop() gopter.Prop {
	if b.Mode != m.ModeActive {
		return func(*gopter.GenParameters) *gopter.PropResult {
			return &gopter.PropResult{Status: gopter.PropTrue}
		}
	}

	if len(b.gens) == 0 {
		return gopter.SaveProp(func(*gopter.GenParameters) *gopter.PropResult {
			return b.result(nil)
		})
	}

	return prop.ForAll(func(args []interface{}) *gopter.PropResult {
		return b.result(args)
	}, gopter.CombineGens(b.gens...))
}

func (b *BoundCheck) result(args []any) *gopter.PropResult {
	err := b.Invoke(args)

	var violation *m.Violation

	switch {
	case err == nil:
		return &gopter.PropResult{Status: gopter.PropTrue}
	case errors.Is(err, m.ErrDiscard):
		return &gopter.PropResult{Status: gopter.PropUndecided}
	case errors.As(err, &violation):
		return &gopter.PropResult{Status: gopter.PropFalse, Labels: []string{violation.Message}}
	default:
		return &gopter.PropResult{Status: gopter.PropError, Error: err}
	}
}

// Lookup returns the bound check with the given ID.
func (s *Suite) Lookup(id string) (*BoundCheck, bool) {
	for _, c := range s.Checks {
		if c.ID() == id {
			return c, true
		}
	}

	return nil, false
}
