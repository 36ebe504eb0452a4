package domain

import m "github.com/steverpalmer/GenericTesting/internal/model"

// Contract names used by structural discovery.
const (
	ContractEqualsOnly            = "EqualsOnly"
	ContractEquality              = "Equality"
	ContractLessOrEqual           = "LessOrEqual"
	ContractPartialOrdering       = "PartialOrdering"
	ContractTotalOrdering         = "TotalOrdering"
	ContractContainer             = "Container"
	ContractIterable              = "Iterable"
	ContractSized                 = "Sized"
	ContractContainerOverIterable = "ContainerOverIterable"
	ContractSizedOverIterable     = "SizedOverIterable"
)

// containerContracts is indexed by model.ContainerFlags.
var containerContracts = [8][]string{
	{},
	{ContractContainer},
	{ContractIterable},
	{ContractContainerOverIterable},
	{ContractSized},
	{ContractSized, ContractContainer},
	{ContractSizedOverIterable},
	{ContractContainerOverIterable, ContractSizedOverIterable},
}

// StructuralContracts selects contracts from the profile alone: the
// container-shaped baseline for its flags, then the relation contracts for
// the comparison operators it defines.
func StructuralContracts(p m.Profile) []string {
	names := append([]string(nil), containerContracts[p.Flags()&7]...)

	if p.DefinesEqual {
		if p.DefinesNotEqual {
			names = append(names, ContractEquality)
		} else {
			names = append(names, ContractEqualsOnly)
		}
	}

	if p.DefinesLessEqual {
		switch {
		case p.DefinesFullOrdering && p.DefinesCompare:
			names = append(names, ContractTotalOrdering)
		case p.DefinesFullOrdering:
			names = append(names, ContractPartialOrdering)
		default:
			names = append(names, ContractLessOrEqual)
		}
	}

	return names
}
