// Package domain contains the contract taxonomy, the loader, the binder and
// the runner that drives bound checks through the property harness.
package domain

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Taxonomy holds the contract definitions and their flattened check tables.
// Definitions are append-only until the first Build.
type Taxonomy struct {
	mu        sync.RWMutex
	contracts map[string]m.Contract
	order     []string
	flat      map[string]*Flattened
	built     bool
}

// Flattened is the resolved check table of a contract or of an ad-hoc
// composition of contracts.
type Flattened struct {
	Contracts    []string
	Checks       []m.Check
	Requirements map[string][]string
	Operations   map[string][]m.Op
	Derived      []m.Derivation

	lineage map[string]struct{}
}

// NewTaxonomy returns an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		contracts: make(map[string]m.Contract),
		flat:      make(map[string]*Flattened),
	}
}

// Define appends contracts. Names must be unique.
func (t *Taxonomy) Define(contracts ...m.Contract) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.built {
		return ErrTaxonomySealed
	}

	for _, c := range contracts {
		if c.Name == "" {
			return fmt.Errorf("contract without a name: %w", ErrDuplicateContract)
		}

		if _, exists := t.contracts[c.Name]; exists {
			return fmt.Errorf("%s: %w", c.Name, ErrDuplicateContract)
		}

		t.contracts[c.Name] = c
		t.order = append(t.order, c.Name)
	}

	return nil
}

// Build flattens every contract and seals the taxonomy. Conflicting checks,
// unknown parents and inheritance cycles are reported here.
func (t *Taxonomy) Build() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buildLocked()
}

func (t *Taxonomy) buildLocked() error {
	if t.built {
		return nil
	}

	visiting := make(map[string]bool)
	for _, name := range t.order {
		if _, err := t.flatten(name, visiting); err != nil {
			t.flat = make(map[string]*Flattened)
			return err
		}
	}

	t.built = true
	slog.Debug("taxonomy built", "contracts", len(t.order))

	return nil
}

func (t *Taxonomy) ensureBuilt() error {
	t.mu.RLock()
	built := t.built
	t.mu.RUnlock()

	if built {
		return nil
	}

	return t.Build()
}

// Names lists the contract names in definition order.
func (t *Taxonomy) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.order...)
}

// Lookup returns the definition of a contract.
func (t *Taxonomy) Lookup(name string) (m.Contract, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.contracts[name]

	return c, ok
}

// Checks returns the flattened checks of one contract.
func (t *Taxonomy) Checks(name string) ([]m.Check, error) {
	f, err := t.Compose(name)
	if err != nil {
		return nil, err
	}

	return f.Checks, nil
}

// Compose flattens several contracts side by side, as if they were the
// parents of an anonymous contract without a relabel rule. A name already
// reached through another requested contract adds nothing, so {A, B} with B
// containing A composes exactly like {B}.
func (t *Taxonomy) Compose(names ...string) (*Flattened, error) {
	if err := t.ensureBuilt(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, name := range names {
		if _, ok := t.flat[name]; !ok {
			return nil, &UnknownContractError{Name: name}
		}
	}

	names = t.mostSpecific(names)
	if len(names) == 1 {
		return t.flat[names[0]], nil
	}

	parents := make([]*Flattened, 0, len(names))
	for _, name := range names {
		parents = append(parents, t.flat[name])
	}

	return merge(m.Contract{Name: "composition", Parents: names}, parents)
}

// mostSpecific drops duplicates and every name in the lineage of another
// name of the list, keeping the order of the rest.
func (t *Taxonomy) mostSpecific(names []string) []string {
	kept := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}

		covered := false

		for _, other := range names {
			if other == name {
				continue
			}

			if _, ok := t.flat[other].lineage[name]; ok {
				covered = true
				break
			}
		}

		if !covered {
			kept = append(kept, name)
		}
	}

	return kept
}

// Diff lists the check IDs of b that a does not have.
func (t *Taxonomy) Diff(a, b string) ([]string, error) {
	left, err := t.Checks(a)
	if err != nil {
		return nil, err
	}

	right, err := t.Checks(b)
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(left))
	for _, c := range left {
		have[c.ID()] = struct{}{}
	}

	var extra []string

	for _, c := range right {
		if _, ok := have[c.ID()]; !ok {
			extra = append(extra, c.ID())
		}
	}

	return extra, nil
}

func (t *Taxonomy) flatten(name string, visiting map[string]bool) (*Flattened, error) {
	if f, ok := t.flat[name]; ok {
		return f, nil
	}

	c, ok := t.contracts[name]
	if !ok {
		return nil, &UnknownContractError{Name: name}
	}

	if visiting[name] {
		return nil, fmt.Errorf("%s: %w", name, ErrTaxonomyCycle)
	}

	visiting[name] = true
	defer delete(visiting, name)

	parents := make([]*Flattened, 0, len(c.Parents))
	for _, parent := range c.Parents {
		if _, known := t.contracts[parent]; !known {
			return nil, &UnknownContractError{Name: parent, Referrer: name}
		}

		pf, err := t.flatten(parent, visiting)
		if err != nil {
			return nil, err
		}

		parents = append(parents, pf)
	}

	f, err := merge(c, parents)
	if err != nil {
		return nil, err
	}

	f.Contracts = []string{name}
	t.flat[name] = f

	return f, nil
}

// merge builds the table of c from its flattened parents. The child's own
// checks replace inherited ones; an inherited check reached twice is kept
// once when it has the same origin and roles, or when one origin descends
// from the other.
func merge(c m.Contract, parents []*Flattened) (*Flattened, error) {
	own := make(map[string]m.Check, len(c.Checks))
	for _, check := range c.Checks {
		check.Origin = c.Name
		own[check.ID()] = check
	}

	f := &Flattened{
		Contracts:    append([]string(nil), c.Parents...),
		Requirements: make(map[string][]string),
		Operations:   make(map[string][]m.Op),
		lineage:      map[string]struct{}{c.Name: {}},
	}

	if len(c.Requires) > 0 {
		f.Requirements[c.Name] = append([]string(nil), c.Requires...)
	}

	if len(c.Needs) > 0 {
		f.Operations[c.Name] = append([]m.Op(nil), c.Needs...)
	}

	derived := make(map[string]struct{})
	for _, d := range c.Derived {
		derived[d.Value] = struct{}{}
		f.Derived = append(f.Derived, d)
	}

	table := make(map[string]m.Check)
	lineages := make(map[string]map[string]struct{})

	for _, parent := range parents {
		for name := range parent.lineage {
			f.lineage[name] = struct{}{}
		}

		for contract, values := range parent.Requirements {
			f.Requirements[contract] = values
		}

		for contract, ops := range parent.Operations {
			f.Operations[contract] = ops
		}

		for _, d := range parent.Derived {
			if _, seen := derived[d.Value]; seen {
				continue
			}

			derived[d.Value] = struct{}{}
			f.Derived = append(f.Derived, d)
		}

		for _, inherited := range parent.Checks {
			check := inherited.Relabelled(c.Relabel)
			id := check.ID()

			if _, overridden := own[id]; overridden {
				continue
			}

			existing, exists := table[id]
			if !exists {
				table[id] = check
				lineages[id] = parent.lineage

				continue
			}

			kept, err := reconcile(c.Name, existing, lineages[id], check, parent.lineage)
			if err != nil {
				return nil, err
			}

			if kept.Origin != existing.Origin {
				lineages[id] = parent.lineage
			}

			table[id] = kept
		}
	}

	for id, check := range own {
		table[id] = check
	}

	f.Checks = make([]m.Check, 0, len(table))
	for _, check := range table {
		f.Checks = append(f.Checks, check)
	}

	sortChecks(f.Checks)

	return f, nil
}

func reconcile(contract string, existing m.Check, existingLineage map[string]struct{}, candidate m.Check, candidateLineage map[string]struct{}) (m.Check, error) {
	if existing.Origin == candidate.Origin {
		if existing.SameSignature(candidate) {
			return existing, nil
		}

		return m.Check{}, &ConflictError{Contract: contract, Check: existing.ID(), First: existing, Second: candidate}
	}

	// A more specific override reached alongside the check it overrides.
	if _, ok := existingLineage[candidate.Origin]; ok {
		return existing, nil
	}

	if _, ok := candidateLineage[existing.Origin]; ok {
		return candidate, nil
	}

	return m.Check{}, &ConflictError{Contract: contract, Check: existing.ID(), First: existing, Second: candidate}
}

func sortChecks(checks []m.Check) {
	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Number != checks[j].Number {
			return checks[i].Number < checks[j].Number
		}

		return checks[i].Name < checks[j].Name
	})
}
