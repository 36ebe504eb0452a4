package model

import "time"

// Status is the outcome of running one check.
type Status int

const (
	// Passed means every trial held.
	Passed Status = iota
	// Failed means a witness falsified the law.
	Failed
	// Excluded checks are neutralised by an override and pass trivially.
	Excluded
	// Skipped checks are not run.
	Skipped
	// Exhausted means too many trials were discarded.
	Exhausted
	// Errored means the law could not be evaluated.
	Errored
	// TimedOut means the check ran out of time.
	TimedOut
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Excluded:
		return "excluded"
	case Skipped:
		return "skipped"
	case Exhausted:
		return "exhausted"
	case Errored:
		return "error"
	case TimedOut:
		return "timeout"
	}

	return "unknown"
}

// MarshalText renders the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for candidate := Passed; candidate <= TimedOut; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}

	*s = Errored

	return nil
}

// CheckResult is the outcome of one bound check.
type CheckResult struct {
	Subject   string        `yaml:"subject"`
	Check     string        `yaml:"check"`
	Status    Status        `yaml:"status"`
	Trials    int           `yaml:"trials"`
	Discarded int           `yaml:"discarded,omitempty"`
	Witness   []string      `yaml:"witness,omitempty"`
	Shrunk    []string      `yaml:"shrunk,omitempty"`
	Message   string        `yaml:"message,omitempty"`
	Duration  time.Duration `yaml:"duration"`
}

// SubjectReport collects the results of one subject.
type SubjectReport struct {
	Subject   string          `yaml:"subject"`
	Source    DiscoverySource `yaml:"source,omitempty"`
	Contracts []string        `yaml:"contracts,omitempty"`
	Results   []CheckResult   `yaml:"results,omitempty"`
	Error     string          `yaml:"error,omitempty"`
}

// Report is a saved run.
type Report struct {
	ID       string          `yaml:"id"`
	Seed     int64           `yaml:"seed"`
	Started  time.Time       `yaml:"started"`
	Subjects []SubjectReport `yaml:"subjects"`
	Score    float64         `yaml:"score"`
}
