package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDiscard is returned by a law whose precondition does not hold for the
// generated witnesses. The harness discards the trial instead of failing it.
var ErrDiscard = errors.New("precondition not met")

// Param is one declared parameter of a law.
type Param struct {
	Name string
	Role Role
}

// Law is the body of a check. It returns nil when the property holds.
type Law func(t *Trial) error

// Check is a single named law over zero to four role-tagged parameters.
type Check struct {
	Number int
	Name   string
	Doc    string
	Params []Param
	Law    Law

	// Origin is the contract that declared the check. Set by the taxonomy.
	Origin string
}

// ID is the stable key override fragments are matched against.
func (c Check) ID() string {
	return fmt.Sprintf("%04d_%s", c.Number, c.Name)
}

// Roles returns the canonical parameter roles in declaration order.
func (c Check) Roles() []Role {
	roles := make([]Role, len(c.Params))
	for i, p := range c.Params {
		roles[i] = p.Role.Canonical()
	}

	return roles
}

// Signature renders the roles as a comma separated list.
func (c Check) Signature() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.Name + " " + p.Role.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Relabelled returns a copy of the check with every parameter role passed
// through the rule.
func (c Check) Relabelled(rule Relabel) Check {
	if len(rule) == 0 {
		return c
	}

	params := make([]Param, len(c.Params))
	for i, p := range c.Params {
		params[i] = Param{Name: p.Name, Role: rule.Apply(p.Role)}
	}

	c.Params = params

	return c
}

// SameSignature reports whether both checks take the same roles.
func (c Check) SameSignature(other Check) bool {
	if len(c.Params) != len(other.Params) {
		return false
	}

	for i := range c.Params {
		if c.Params[i].Role.Canonical() != other.Params[i].Role.Canonical() {
			return false
		}
	}

	return true
}
