package domain

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Registration is an explicit affinity between a kind and contracts.
type Registration struct {
	Kind      string
	Contracts []string
}

// Loader maps subjects to compositions.
type Loader struct {
	mu           sync.RWMutex
	taxonomy     *Taxonomy
	registry     []Registration
	overrides    map[string]m.Override
	docOverrides bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDocOverrides makes the loader read override blocks from subject docs.
func WithDocOverrides() LoaderOption {
	return func(l *Loader) {
		l.docOverrides = true
	}
}

// WithOverrides supplies overrides keyed by subject name.
func WithOverrides(overrides map[string]m.Override) LoaderOption {
	return func(l *Loader) {
		for name, o := range overrides {
			l.overrides[name] = o
		}
	}
}

// NewLoader creates a loader over the taxonomy with an empty registry.
func NewLoader(taxonomy *Taxonomy, options ...LoaderOption) *Loader {
	l := &Loader{
		taxonomy:  taxonomy,
		overrides: make(map[string]m.Override),
	}

	for _, option := range options {
		option(l)
	}

	return l
}

// Taxonomy returns the taxonomy the loader resolves names against.
func (l *Loader) Taxonomy() *Taxonomy {
	return l.taxonomy
}

// Register records that subjects of kind are tested with contracts.
// Registrations should run from the most abstract kind to the most specific.
// Registering a kind again replaces its contracts and keeps its position.
func (l *Loader) Register(kind string, contracts ...string) error {
	if len(contracts) == 0 {
		return fmt.Errorf("register %s: %w", kind, ErrNoContract)
	}

	for _, name := range contracts {
		if _, ok := l.taxonomy.Lookup(name); !ok {
			return &UnknownContractError{Name: name, Referrer: kind}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	contracts = append([]string(nil), contracts...)

	for i := range l.registry {
		if l.registry[i].Kind == kind {
			l.registry[i].Contracts = contracts
			return nil
		}
	}

	l.registry = append(l.registry, Registration{Kind: kind, Contracts: contracts})

	return nil
}

// Registrations returns the registry in insertion order.
func (l *Loader) Registrations() []Registration {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Registration, len(l.registry))
	for i, r := range l.registry {
		out[i] = Registration{Kind: r.Kind, Contracts: append([]string(nil), r.Contracts...)}
	}

	return out
}

// Discover resolves the composition of a subject. An override with a has
// list wins, then the most specific registration matching the subject or an
// ancestor, then structural discovery from the subject's profile.
func (l *Loader) Discover(subject m.Subject) (m.Composition, error) {
	override, err := l.OverrideFor(subject)
	if err != nil {
		return m.Composition{}, err
	}

	names, source, err := l.resolve(subject, override)
	if err != nil {
		return m.Composition{}, err
	}

	flat, err := l.taxonomy.Compose(names...)
	if err != nil {
		return m.Composition{}, fmt.Errorf("discover %s: %w", subject.Name, err)
	}

	comp := m.Composition{
		Subject:      subject.Name,
		Source:       source,
		Contracts:    names,
		Checks:       ApplyOverride(flat.Checks, override),
		Requirements: flat.Requirements,
		Operations:   flat.Operations,
		Derived:      flat.Derived,
	}

	counts := comp.Count()
	slog.Debug("discovered composition",
		"subject", subject.Name,
		"source", source,
		"contracts", strings.Join(names, ","),
		"active", counts[m.ModeActive],
		"excluded", counts[m.ModeExcluded],
		"skipped", counts[m.ModeSkipped],
	)

	return comp, nil
}

// OverrideFor returns the override that applies to the subject: its own,
// then the configured one, then the one in its documentation.
func (l *Loader) OverrideFor(subject m.Subject) (*m.Override, error) {
	if !subject.Override.IsZero() {
		return subject.Override, nil
	}

	l.mu.RLock()
	configured, ok := l.overrides[subject.Name]
	l.mu.RUnlock()

	if ok && !configured.IsZero() {
		return &configured, nil
	}

	if !l.docOverrides || subject.Doc == "" {
		return nil, nil
	}

	o, found, err := ParseDocOverride(subject.Doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", subject.Name, err)
	}

	if !found {
		return nil, nil
	}

	return o, nil
}

func (l *Loader) resolve(subject m.Subject, override *m.Override) ([]string, m.DiscoverySource, error) {
	if override != nil && len(override.Has) > 0 {
		names := make([]string, 0, len(override.Has))

		for _, name := range override.Has {
			resolved, err := l.contractName(name)
			if err != nil {
				return nil, "", &UnknownContractError{Name: name, Referrer: subject.Name}
			}

			names = append(names, resolved)
		}

		return names, m.SourceOverride, nil
	}

	l.mu.RLock()
	for i := len(l.registry) - 1; i >= 0; i-- {
		r := l.registry[i]
		if subject.IsA(r.Kind) {
			l.mu.RUnlock()
			slog.Debug("registry match", "subject", subject.Name, "kind", r.Kind)

			return append([]string(nil), r.Contracts...), m.SourceRegistered, nil
		}
	}
	l.mu.RUnlock()

	names := StructuralContracts(m.ProfileOf(subject))
	if len(names) == 0 {
		return nil, "", &NoContractError{Subject: subject.Name}
	}

	return names, m.SourceStructural, nil
}

func (l *Loader) contractName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if _, ok := l.taxonomy.Lookup(name); ok {
		return name, nil
	}

	if trimmed, ok := strings.CutSuffix(name, ContractSuffix); ok {
		if _, found := l.taxonomy.Lookup(trimmed); found {
			return trimmed, nil
		}
	}

	return "", ErrUnknownContract
}
