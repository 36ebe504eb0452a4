package domain

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/steverpalmer/GenericTesting/internal/adapter"
	"github.com/steverpalmer/GenericTesting/internal/controller"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// ErrRunFailed is returned by Run when at least one check did not pass.
var ErrRunFailed = errors.New("checks failed")

// ListArgs selects the subjects to list. Checks adds the planned mode of
// every check to each listing.
type ListArgs struct {
	Subjects []string
	Checks   bool
}

// RunArgs contains the arguments for running the checks of a catalog.
type RunArgs struct {
	Subjects        []string
	Reports         m.Path
	Config          RunConfig
	ShardIndex      uint
	TotalShardCount uint
}

// ContractsArgs selects what the contracts command shows. With Diff set to
// two names the check tables of both contracts are compared.
type ContractsArgs struct {
	Name string
	Diff []string
}

// OverridesArgs names the Go sources scanned for gentest: blocks.
type OverridesArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs names the reports directory of a previous run.
type ViewArgs struct {
	Reports m.Path
}

// SubjectProvider supplies the subjects a run works on.
type SubjectProvider interface {
	Subjects() []m.Subject
}

// Workflow is what the commands drive.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Run(ctx context.Context, args RunArgs) error
	Contracts(ctx context.Context, args ContractsArgs) error
	Overrides(ctx context.Context, args OverridesArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	adapter.GoFileAdapter
	controller.UI

	loader   *Loader
	provider SubjectProvider
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	loader *Loader,
	provider SubjectProvider,
	fsAdapter adapter.SourceFSAdapter,
	goFileAdapter adapter.GoFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportStore:     reportStore,
		SourceFSAdapter: fsAdapter,
		GoFileAdapter:   goFileAdapter,
		UI:              ui,
		loader:          loader,
		provider:        provider,
	}
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	subjects, err := w.selectSubjects(args.Subjects)
	if err != nil {
		return err
	}

	listings := make([]m.SubjectListing, 0, len(subjects))

	for _, subject := range subjects {
		listing := m.SubjectListing{Subject: subject.Name}

		comp, err := w.loader.Discover(subject)
		if err != nil {
			listing.Err = err
			listings = append(listings, listing)

			continue
		}

		listing.Source = comp.Source
		listing.Contracts = comp.Contracts

		for _, check := range comp.Checks {
			switch check.Mode {
			case m.ModeActive:
				listing.Active++
			case m.ModeExcluded:
				listing.Excluded++
			case m.ModeSkipped:
				listing.Skipped++
			}
		}

		if args.Checks {
			listing.Checks = comp.Checks
		}

		listings = append(listings, listing)
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}

	defer w.Wait(ctx)
	defer w.Close(ctx)

	return w.DisplaySubjects(ctx, listings)
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	subjects, err := w.selectSubjects(args.Subjects)
	if err != nil {
		return err
	}

	subjects = shardSubjects(subjects, args.ShardIndex, args.TotalShardCount)

	cfg := args.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	metrics := NewMetrics()
	runner := NewRunner(cfg, WithMetrics(metrics), WithObserver(func(result m.CheckResult) {
		w.DisplayCheckResult(ctx, result)
	}))

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		return err
	}

	w.DisplayRunInfo(ctx, runID, len(subjects), runner.Config().Parallel, runner.Config().Seed)

	report := m.Report{
		ID:       runID,
		Seed:     runner.Config().Seed,
		Started:  time.Now(),
		Subjects: make([]m.SubjectReport, 0, len(subjects)),
	}

	for _, subject := range subjects {
		if err := ctx.Err(); err != nil {
			w.Close(ctx)
			return err
		}

		report.Subjects = append(report.Subjects, w.runSubject(ctx, runner, subject))
	}

	report.Score = LawScore(report.Subjects)
	w.DisplayLawScore(ctx, report.Score)
	w.Close(ctx)
	w.Wait(ctx)

	slog.Info("run finished", "id", runID, "subjects", len(subjects), "score", report.Score)

	if err := w.SaveReport(args.Reports, report); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	if err := metrics.WriteTo(string(args.Reports)); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	if !succeeded(report) {
		return ErrRunFailed
	}

	return nil
}

func (w *workflow) runSubject(ctx context.Context, runner *Runner, subject m.Subject) m.SubjectReport {
	comp, err := w.loader.Discover(subject)
	if err != nil {
		w.DisplaySubjectError(ctx, subject.Name, err)
		return m.SubjectReport{Subject: subject.Name, Error: err.Error()}
	}

	suite, err := Bind(comp, subject, nil)
	if err != nil {
		w.DisplaySubjectError(ctx, subject.Name, err)
		return m.SubjectReport{Subject: subject.Name, Source: comp.Source, Contracts: comp.Contracts, Error: err.Error()}
	}

	return runner.RunSuite(ctx, suite)
}

func succeeded(report m.Report) bool {
	for _, subject := range report.Subjects {
		if subject.Error != "" {
			return false
		}

		for _, result := range subject.Results {
			switch result.Status {
			case m.Passed, m.Excluded, m.Skipped:
			default:
				return false
			}
		}
	}

	return true
}

// shardSubjects keeps the subjects whose position falls in the shard.
func shardSubjects(subjects []m.Subject, shardIndex uint, totalShardCount uint) []m.Subject {
	if totalShardCount == 0 {
		return subjects
	}

	var shard []m.Subject

	for i, subject := range subjects {
		if uint(i)%totalShardCount == shardIndex {
			shard = append(shard, subject)
		}
	}

	return shard
}

func (w *workflow) Contracts(ctx context.Context, args ContractsArgs) error {
	taxonomy := w.loader.Taxonomy()

	if len(args.Diff) > 0 {
		diff, err := w.diffContracts(args.Diff)
		if err != nil {
			return err
		}

		if err := w.Start(ctx, controller.WithListMode()); err != nil {
			return err
		}

		defer w.Wait(ctx)
		defer w.Close(ctx)

		return w.DisplayDiff(ctx, diff)
	}

	names := taxonomy.Names()
	if args.Name != "" {
		name, err := w.loader.contractName(args.Name)
		if err != nil {
			return fmt.Errorf("%q: %w", args.Name, err)
		}

		names = []string{name}
	}

	listings := make([]m.ContractListing, 0, len(names))

	for _, name := range names {
		contract, _ := taxonomy.Lookup(name)

		checks, err := taxonomy.Checks(name)
		if err != nil {
			return err
		}

		listing := m.ContractListing{
			Name:    name,
			Parents: contract.Parents,
			Own:     len(contract.Checks),
			Total:   len(checks),
		}

		if args.Name != "" {
			for _, check := range checks {
				listing.Checks = append(listing.Checks, check.ID()+check.Signature())
			}
		}

		listings = append(listings, listing)
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}

	defer w.Wait(ctx)
	defer w.Close(ctx)

	return w.DisplayContracts(ctx, listings)
}

// diffContracts renders a unified diff of the check tables of two contracts
// followed by the checks only the second one has.
func (w *workflow) diffContracts(names []string) (string, error) {
	if len(names) != 2 {
		return "", fmt.Errorf("diff needs exactly two contracts, got %d", len(names))
	}

	taxonomy := w.loader.Taxonomy()
	tables := make([][]string, 2)
	resolved := make([]string, 2)

	for i, raw := range names {
		name, err := w.loader.contractName(raw)
		if err != nil {
			return "", fmt.Errorf("%q: %w", raw, err)
		}

		resolved[i] = name

		checks, err := taxonomy.Checks(name)
		if err != nil {
			return "", err
		}

		for _, check := range checks {
			tables[i] = append(tables[i], check.ID()+check.Signature()+"\n")
		}
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        tables[0],
		B:        tables[1],
		FromFile: resolved[0],
		ToFile:   resolved[1],
		Context:  1,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s %s: %w", resolved[0], resolved[1], err)
	}

	if diff == "" {
		return "", nil
	}

	added, err := taxonomy.Diff(resolved[0], resolved[1])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\n%d check(s) in %s only: %s\n", diff, len(added), resolved[1], strings.Join(added, ", ")), nil
}

func (w *workflow) Overrides(ctx context.Context, args OverridesArgs) error {
	files, err := w.GoFiles(args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	annotations, err := w.scanAnnotations(ctx, files)
	if err != nil {
		return err
	}

	var problems []error

	for _, a := range annotations {
		for _, name := range a.Override.Has {
			if _, err := w.loader.contractName(name); err != nil {
				problems = append(problems, fmt.Errorf("%s:%d %s: %w", a.File, a.Line, a.TypeName, err))
			}
		}
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}

	if err := w.DisplayAnnotations(ctx, annotations); err != nil {
		w.Close(ctx)
		return err
	}

	w.Close(ctx)
	w.Wait(ctx)

	return errors.Join(problems...)
}

// scanAnnotations parses the files concurrently and keeps the documented
// types carrying a well-formed override block.
func (w *workflow) scanAnnotations(ctx context.Context, files []m.File) ([]m.Annotation, error) {
	perFile := make([][]m.Annotation, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)

	for i, file := range files {
		group.Go(func() error {
			src, err := w.ReadFile(file.Path)
			if err != nil {
				return fmt.Errorf("read %s: %w", file.Path, err)
			}

			fset := token.NewFileSet()

			parsed, err := w.Parse(groupCtx, fset, string(file.Path), src)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file.Path, err)
			}

			for _, doc := range w.TypeDocs(fset, parsed) {
				override, found, err := ParseDocOverride(doc.Doc)
				if err != nil {
					return fmt.Errorf("%s:%d %s: %w", file.Path, doc.Line, doc.Name, err)
				}

				if !found {
					continue
				}

				perFile[i] = append(perFile[i], m.Annotation{
					File:     file.Path,
					Line:     doc.Line,
					TypeName: doc.Name,
					Override: *override,
				})
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var annotations []m.Annotation
	for _, a := range perFile {
		annotations = append(annotations, a...)
	}

	return annotations, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	results, err := w.LoadResults(args.Reports)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	score, err := lawScore(results)

	closeErr := results.Close()

	if err != nil {
		return fmt.Errorf("score results: %w", err)
	}

	if closeErr != nil {
		return closeErr
	}

	report.Score = score

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		w.Close(ctx)
		return err
	}

	w.DisplayLawScore(ctx, report.Score)
	w.Close(ctx)
	w.Wait(ctx)

	return nil
}

// selectSubjects returns every subject when names is empty and otherwise the
// subjects that are, or descend from, one of the named kinds.
func (w *workflow) selectSubjects(names []string) ([]m.Subject, error) {
	all := w.provider.Subjects()
	if len(names) == 0 {
		return all, nil
	}

	var (
		selected []m.Subject
		unknown  []string
	)

	for _, name := range names {
		found := false

		for _, subject := range all {
			if subject.IsA(name) {
				found = true
				break
			}
		}

		if !found {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown subject(s): %s", strings.Join(unknown, ", "))
	}

	for _, subject := range all {
		for _, name := range names {
			if subject.IsA(name) {
				selected = append(selected, subject)
				break
			}
		}
	}

	return selected, nil
}
