package domain

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"golang.org/x/sync/errgroup"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// RunConfig sizes one run of the property harness.
type RunConfig struct {
	Trials          int           `validate:"min=1"`
	MaxSize         int           `validate:"min=1"`
	MaxDiscardRatio float64       `validate:"gte=0"`
	Parallel        int           `validate:"min=1"`
	CheckTimeout    time.Duration `validate:"gte=0"`
	Seed            int64
}

// DefaultRunConfig mirrors the harness defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Trials:          100,
		MaxSize:         30,
		MaxDiscardRatio: 5,
		Parallel:        1,
		CheckTimeout:    30 * time.Second,
		Seed:            1,
	}
}

// Runner drives bound checks through gopter.
type Runner struct {
	cfg     RunConfig
	metrics *Metrics

	mu       sync.Mutex
	observer func(m.CheckResult)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMetrics records every check result in metrics.
func WithMetrics(metrics *Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = metrics
	}
}

// WithObserver calls fn with every result as soon as its check finishes.
// Calls are serialised.
func WithObserver(fn func(m.CheckResult)) RunnerOption {
	return func(r *Runner) {
		r.observer = fn
	}
}

// NewRunner creates a runner. Zero fields of cfg take their defaults.
func NewRunner(cfg RunConfig, options ...RunnerOption) *Runner {
	def := DefaultRunConfig()

	if cfg.Trials <= 0 {
		cfg.Trials = def.Trials
	}

	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}

	if cfg.MaxDiscardRatio <= 0 {
		cfg.MaxDiscardRatio = def.MaxDiscardRatio
	}

	if cfg.Parallel <= 0 {
		cfg.Parallel = def.Parallel
	}

	r := &Runner{cfg: cfg}
	for _, option := range options {
		option(r)
	}

	return r
}

// Config returns the effective configuration.
func (r *Runner) Config() RunConfig {
	return r.cfg
}

// RunSuite runs every check of the suite. Results keep the suite order.
func (r *Runner) RunSuite(ctx context.Context, suite *Suite) m.SubjectReport {
	report := m.SubjectReport{
		Subject:   suite.Subject,
		Source:    suite.Source,
		Contracts: suite.Contracts,
		Results:   make([]m.CheckResult, len(suite.Checks)),
	}

	var group errgroup.Group
	group.SetLimit(r.cfg.Parallel)

	for i, check := range suite.Checks {
		group.Go(func() error {
			report.Results[i] = r.RunCheck(ctx, check)
			return nil
		})
	}

	_ = group.Wait()

	return report
}

// RunCheck runs one check until it passes its trials, fails, or times out.
func (r *Runner) RunCheck(ctx context.Context, check *BoundCheck) m.CheckResult {
	result := m.CheckResult{Subject: check.Subject, Check: check.ID()}

	switch check.Mode {
	case m.ModeSkipped:
		result.Status = m.Skipped
		result.Message = "skipped by " + check.Matched
		r.observe(result)

		return result
	case m.ModeExcluded:
		result.Status = m.Excluded
		result.Message = "excluded by " + check.Matched
		r.observe(result)

		return result
	}

	if r.cfg.CheckTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.cfg.CheckTimeout)
		defer cancel()
	}

	params := r.parameters(check)
	started := time.Now()

	done := make(chan *gopter.TestResult, 1)
	go func() {
		done <- check.Prop().Check(params)
	}()

	select {
	case res := <-done:
		result = fromTestResult(result, res)
	case <-ctx.Done():
		result.Status = m.TimedOut
		result.Message = ctx.Err().Error()
	}

	result.Duration = time.Since(started)

	slog.Debug("check finished",
		"subject", check.Subject,
		"check", result.Check,
		"status", result.Status,
		"trials", result.Trials,
		"duration", result.Duration,
	)

	r.observe(result)

	return result
}

func (r *Runner) parameters(check *BoundCheck) *gopter.TestParameters {
	params := gopter.DefaultTestParametersWithSeed(checkSeed(r.cfg.Seed, check.Subject, check.ID()))
	params.MinSuccessfulTests = r.cfg.Trials
	params.MaxSize = r.cfg.MaxSize
	params.MaxDiscardRatio = r.cfg.MaxDiscardRatio
	params.Workers = 1

	if check.Arity() == 0 {
		params.MinSuccessfulTests = 1
	}

	return params
}

func (r *Runner) observe(result m.CheckResult) {
	if r.metrics != nil {
		r.metrics.Observe(result)
	}

	if r.observer != nil {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.observer(result)
	}
}

// checkSeed gives every check its own stream so results do not depend on
// scheduling order.
func checkSeed(seed int64, subject, id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(subject))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(id))

	return seed ^ int64(h.Sum64()&0x7fffffffffffffff)
}

func fromTestResult(result m.CheckResult, res *gopter.TestResult) m.CheckResult {
	result.Trials = res.Succeeded
	result.Discarded = res.Discarded

	switch res.Status {
	case gopter.TestPassed, gopter.TestProved:
		result.Status = m.Passed
	case gopter.TestFailed:
		result.Status = m.Failed
		result.Message = strings.Join(res.Labels, "; ")
	case gopter.TestExhausted:
		result.Status = m.Exhausted
		result.Message = fmt.Sprintf("gave up after %d passed and %d discarded trials", res.Succeeded, res.Discarded)
	case gopter.TestError:
		result.Status = m.Errored
		if res.Error != nil {
			result.Message = res.Error.Error()
		}
	}

	if len(res.Args) > 0 && (result.Status == m.Failed || result.Status == m.Errored) {
		arg := res.Args[0]
		result.Witness = formatArgs(arg.OrigArg, arg.OrigArgFormatted)
		result.Shrunk = formatArgs(arg.Arg, arg.ArgFormatted)
	}

	return result
}

func formatArgs(arg any, formatted string) []string {
	values, ok := arg.([]interface{})
	if !ok {
		return []string{formatted}
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%v", v)
	}

	return out
}

// Test runs the suite as subtests of t with the default configuration.
func (s *Suite) Test(t *testing.T) {
	t.Helper()

	runner := NewRunner(DefaultRunConfig())

	for _, check := range s.Checks {
		t.Run(check.ID(), func(t *testing.T) {
			result := runner.RunCheck(context.Background(), check)

			switch result.Status {
			case m.Skipped:
				t.Skip(result.Message)
			case m.Passed, m.Excluded:
			default:
				t.Fatalf("%s %s: %s %s (witness %s, shrunk %s)",
					s.Subject, result.Check, result.Status, result.Message, result.Witness, result.Shrunk)
			}
		})
	}
}
