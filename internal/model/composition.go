package model

// Mode says how a composed check takes part in a run.
type Mode int

const (
	// ModeActive checks run their law.
	ModeActive Mode = iota
	// ModeExcluded checks are replaced by a no-op that passes.
	ModeExcluded
	// ModeSkipped checks do not run and are reported as skipped.
	ModeSkipped
)

func (m Mode) String() string {
	switch m {
	case ModeActive:
		return "active"
	case ModeExcluded:
		return "excluded"
	case ModeSkipped:
		return "skipped"
	}

	return "unknown"
}

// DiscoverySource records which loader step produced a composition.
type DiscoverySource string

// Discovery sources.
const (
	SourceOverride   DiscoverySource = "override"
	SourceRegistered DiscoverySource = "registered"
	SourceStructural DiscoverySource = "structural"
)

// PlannedCheck is a check with its final roles and its override mode.
type PlannedCheck struct {
	Check
	Mode Mode
	// Matched is the override fragment that set Mode, if any.
	Matched string
}

// Composition is the flattened set of checks resolved for one subject.
type Composition struct {
	Subject   string
	Source    DiscoverySource
	Contracts []string
	Checks    []PlannedCheck

	// Requirements maps a contract to the values its own checks use.
	Requirements map[string][]string
	// Operations maps a contract to the operations its own checks use.
	Operations map[string][]Op
	Derived    []Derivation
}

// Count returns the number of checks per mode.
func (c Composition) Count() map[Mode]int {
	counts := map[Mode]int{}
	for _, check := range c.Checks {
		counts[check.Mode]++
	}

	return counts
}

// IDs lists the check IDs in order.
func (c Composition) IDs() []string {
	ids := make([]string, len(c.Checks))
	for i, check := range c.Checks {
		ids[i] = check.ID()
	}

	return ids
}
