package model

// Values holds the abstract constants a subject supplies, keyed by name
// (zero, one, top, bottom, empty, ...).
type Values map[string]any

// Derivation computes a required value from the others when the subject does
// not supply it, e.g. abs_zero from zero.
type Derivation struct {
	Value  string
	Derive func(ops *Ops, values Values) (any, error)
}

// Contract is a named bundle of checks plus the values and operations a
// subject must supply for them.
type Contract struct {
	Name    string
	Doc     string
	Parents []string
	Checks  []Check

	Requires []string
	Needs    []Op
	Derived  []Derivation

	// Relabel applies to checks inherited from Parents, once per edge.
	Relabel Relabel
}
