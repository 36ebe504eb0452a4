package contracts

import (
	"fmt"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Kinds registered for the standard library types the catalog wires.
const (
	KindDuration = "time.Duration"
	KindTime     = "time.Time"
)

// Definitions returns every contract of the default taxonomy, parents
// before children.
func Definitions() []m.Contract {
	var all []m.Contract
	for _, group := range [][]m.Contract{
		relations(), lattices(), arithmetic(), modules(), numbers(), collections(), functions(), streams(), enums(),
	} {
		all = append(all, group...)
	}

	return all
}

// Registrations lists the default registry, most abstract kind first. The
// loader scans it from the end, so later entries are more specific.
func Registrations() []domain.Registration {
	return []domain.Registration{
		{Kind: ContractSet, Contracts: []string{ContractSet}},
		{Kind: ContractMutableSet, Contracts: []string{ContractMutableSet}},
		{Kind: ContractMapping, Contracts: []string{ContractMapping}},
		{Kind: ContractMutableMapping, Contracts: []string{ContractMutableMapping}},
		{Kind: ContractSequence, Contracts: []string{ContractSequence}},
		{Kind: ContractComplex, Contracts: []string{ContractComplex}},
		{Kind: ContractReal, Contracts: []string{ContractReal}},
		{Kind: ContractRational, Contracts: []string{ContractRational}},
		{Kind: ContractIntegral, Contracts: []string{ContractIntegral}},
		{Kind: KindReader, Contracts: []string{ContractReaderStream}},
		{Kind: KindReadSeeker, Contracts: []string{ContractSeekerStream}},
		{Kind: KindReadWriter, Contracts: []string{ContractBufferStream}},
		{Kind: KindReadWriteSeeker, Contracts: []string{ContractReadWriteSeekStream}},
		{Kind: ContractEnum, Contracts: []string{ContractEnum}},
		{Kind: ContractUniqueEnum, Contracts: []string{ContractUniqueEnum}},
		{Kind: ContractFlagEnum, Contracts: []string{ContractFlagEnum}},
		{Kind: KindDuration, Contracts: []string{ContractRModule, domain.ContractTotalOrdering, ContractHashable}},
		{Kind: KindTime, Contracts: []string{ContractAffineSpace, domain.ContractTotalOrdering}},
	}
}

// NewTaxonomy defines and builds the default taxonomy.
func NewTaxonomy() (*domain.Taxonomy, error) {
	taxonomy := domain.NewTaxonomy()

	if err := taxonomy.Define(Definitions()...); err != nil {
		return nil, err
	}

	if err := taxonomy.Build(); err != nil {
		return nil, fmt.Errorf("build taxonomy: %w", err)
	}

	return taxonomy, nil
}

// Default returns a loader over the default taxonomy with the default
// registrations in place.
func Default(options ...domain.LoaderOption) (*domain.Loader, error) {
	taxonomy, err := NewTaxonomy()
	if err != nil {
		return nil, err
	}

	loader := domain.NewLoader(taxonomy, options...)

	for _, r := range Registrations() {
		if err := loader.Register(r.Kind, r.Contracts...); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.Kind, err)
		}
	}

	return loader, nil
}
