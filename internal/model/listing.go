package model

// SubjectListing summarises the composition discovered for one subject.
type SubjectListing struct {
	Subject   string
	Source    DiscoverySource
	Contracts []string
	Active    int
	Excluded  int
	Skipped   int
	Err       error

	// Checks is filled only when the per-check plan was asked for.
	Checks []PlannedCheck
}

// ContractListing describes one contract of the taxonomy.
type ContractListing struct {
	Name    string
	Parents []string
	Own     int
	Total   int
	Checks  []string
}
