package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

const (
	header      = "gentest - generic property tests"
	pagerHelp   = "↑/k: up | ↓/j: down | d/u: half page | g: top | G: bottom | q: quit"
	recentLines = 12
)

// TUI implements UI with Bubble Tea: a live view while checks run and a
// pager for listings taller than the terminal.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	mode    StartMode
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the live run view in run mode.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := startConfig(options)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = cfg.mode
	if cfg.mode != ModeRun || p.program != nil {
		return nil
	}

	p.program = tea.NewProgram(newRunModel(), tea.WithOutput(p.output), tea.WithContext(ctx))
	p.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = program.Run()
	}(p.program, p.done)

	return nil
}

// Close ends the live view.
func (p *TUI) Close(_ context.Context) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()

	if program != nil {
		program.Send(finishedMsg{})
	}
}

// Wait blocks until the live view has exited.
func (p *TUI) Wait(ctx context.Context) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	p.mu.Lock()
	p.program = nil
	p.done = nil
	p.mu.Unlock()
}

func (p *TUI) send(msg tea.Msg) bool {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

// DisplaySubjects shows the discovered compositions.
func (p *TUI) DisplaySubjects(ctx context.Context, listings []m.SubjectListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(listings) == 0 {
		return p.show(titled("subjects") + "  no subjects found\n")
	}

	return p.show(titled("subjects") + renderSubjectsTable(listings) + renderPlans(listings))
}

// DisplayContracts shows the taxonomy.
func (p *TUI) DisplayContracts(ctx context.Context, listings []m.ContractListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(titled("contracts"))
	b.WriteString(renderContractsTable(listings))

	if len(listings) == 1 {
		b.WriteString("\n")

		for _, id := range listings[0].Checks {
			fmt.Fprintf(&b, "  %s\n", id)
		}
	}

	return p.show(b.String())
}

// DisplayDiff shows a unified diff of two check tables.
func (p *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return p.show(mutedStyle.Render("no difference") + "\n")
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(titleStyle.Render(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(passStyle.Render(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(failStyle.Render(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		default:
			b.WriteString(line)
		}
	}

	return p.show(b.String())
}

// DisplayAnnotations shows the override blocks found in Go sources.
func (p *TUI) DisplayAnnotations(ctx context.Context, annotations []m.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(annotations) == 0 {
		return p.show(titled("overrides") + "  no annotations found\n")
	}

	return p.show(titled("overrides") + renderAnnotationsTable(annotations))
}

// DisplayRunInfo shows the run settings.
func (p *TUI) DisplayRunInfo(ctx context.Context, runID string, subjects int, parallel int, seed int64) {
	if err := ctx.Err(); err != nil {
		return
	}

	info := runInfoMsg{id: runID, subjects: subjects, parallel: parallel, seed: seed}
	if !p.send(info) {
		_, _ = fmt.Fprintln(p.output, info.String())
	}
}

// DisplayCheckResult adds one finished check to the live view.
func (p *TUI) DisplayCheckResult(ctx context.Context, result m.CheckResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !p.send(resultMsg{result: result}) {
		_, _ = fmt.Fprintln(p.output, formatResult(result))
	}
}

// DisplaySubjectError reports a subject that could not be discovered or bound.
func (p *TUI) DisplaySubjectError(ctx context.Context, subject string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	msg := subjectErrorMsg{subject: subject, err: err}
	if !p.send(msg) {
		_, _ = fmt.Fprintln(p.output, msg.String())
	}
}

// DisplayReport shows a saved report.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(titled("report " + report.ID))
	fmt.Fprintf(&b, "  seed %d, started %s\n\n", report.Seed, report.Started.Format("2006-01-02 15:04:05"))
	b.WriteString(renderReportTable(report))

	for _, subject := range report.Subjects {
		for _, result := range subject.Results {
			if result.Status == m.Failed || result.Status == m.Errored || result.Status == m.TimedOut {
				b.WriteString(formatResult(result))
				b.WriteString("\n")
			}
		}
	}

	fmt.Fprintf(&b, "\n  law score: %.1f%%\n", report.Score*100)

	return p.show(b.String())
}

// DisplayLawScore shows the final law score.
func (p *TUI) DisplayLawScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !p.send(scoreMsg(score)) {
		_, _ = fmt.Fprintf(p.output, "law score: %.1f%%\n", score*100)
	}
}

// show prints content, paging it when it does not fit the terminal.
func (p *TUI) show(content string) error {
	width, height := terminalSize(p.output)
	if height == 0 || strings.Count(content, "\n") < height-2 {
		_, err := fmt.Fprint(p.output, content)
		return err
	}

	program := tea.NewProgram(newPagerModel(content, width, height), tea.WithOutput(p.output), tea.WithAltScreen())
	_, err := program.Run()

	return err
}

func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(f.Fd())
	if err != nil {
		return 0, 0
	}

	return width, height
}

func titled(name string) string {
	return titleStyle.Render(header+" · "+name) + "\n\n"
}

func formatResult(result m.CheckResult) string {
	status := result.Status.String()

	switch result.Status {
	case m.Passed:
		status = passStyle.Render("✓ " + status)
	case m.Failed, m.Errored, m.TimedOut, m.Exhausted:
		status = failStyle.Render("✗ " + status)
	case m.Excluded, m.Skipped:
		status = mutedStyle.Render("- " + status)
	}

	line := fmt.Sprintf("  %s %s %s", status, result.Subject, result.Check)

	if result.Status == m.Failed || result.Status == m.Errored {
		if result.Message != "" {
			line += "\n      " + result.Message
		}

		if len(result.Shrunk) > 0 {
			line += "\n      witness: " + strings.Join(result.Shrunk, ", ")
		}
	}

	return line
}

type (
	resultMsg struct {
		result m.CheckResult
	}
	runInfoMsg struct {
		id       string
		subjects int
		parallel int
		seed     int64
	}
	subjectErrorMsg struct {
		subject string
		err     error
	}
	scoreMsg    float64
	finishedMsg struct{}
)

func (r runInfoMsg) String() string {
	return fmt.Sprintf("run %s: %d subject(s), %d worker(s), seed %d", r.id, r.subjects, r.parallel, r.seed)
}

func (e subjectErrorMsg) String() string {
	return failStyle.Render(fmt.Sprintf("  ✗ %s: %v", e.subject, e.err))
}

// runModel is the live view of a run.
type runModel struct {
	spinner  spinner.Model
	info     string
	counts   map[m.Status]int
	recent   []string
	failures []string
	score    *float64
	finished bool
}

func newRunModel() runModel {
	return runModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		counts:  make(map[m.Status]int),
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		rm.info = msg.String()
		return rm, nil

	case resultMsg:
		return rm.addResult(msg.result), nil

	case subjectErrorMsg:
		rm.failures = append(rm.failures, msg.String())
		return rm, nil

	case scoreMsg:
		score := float64(msg)
		rm.score = &score

		return rm, nil

	case finishedMsg:
		rm.finished = true
		return rm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			rm.finished = true
			return rm, tea.Quit
		}

		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) addResult(result m.CheckResult) runModel {
	counts := make(map[m.Status]int, len(rm.counts)+1)
	for k, v := range rm.counts {
		counts[k] = v
	}

	counts[result.Status]++
	rm.counts = counts

	line := formatResult(result)

	switch result.Status {
	case m.Failed, m.Errored, m.TimedOut, m.Exhausted:
		rm.failures = append(append([]string(nil), rm.failures...), line)
	case m.Passed, m.Excluded, m.Skipped:
	}

	recent := append(append([]string(nil), rm.recent...), line)
	if len(recent) > recentLines {
		recent = recent[len(recent)-recentLines:]
	}

	rm.recent = recent

	return rm
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titled("run"))

	if rm.info != "" {
		fmt.Fprintf(&b, "  %s\n\n", rm.info)
	}

	if !rm.finished {
		for _, line := range rm.recent {
			b.WriteString(line)
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "\n  %s running...\n", rm.spinner.View())
	} else if len(rm.failures) > 0 {
		b.WriteString("  failures:\n")

		for _, line := range rm.failures {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n  passed: %d | failed: %d | excluded: %d | skipped: %d | other: %d\n",
		rm.counts[m.Passed], rm.counts[m.Failed], rm.counts[m.Excluded], rm.counts[m.Skipped],
		rm.counts[m.Exhausted]+rm.counts[m.Errored]+rm.counts[m.TimedOut])

	if rm.score != nil {
		fmt.Fprintf(&b, "  law score: %.1f%%\n", *rm.score*100)
	}

	return b.String()
}

// pagerModel pages long static output.
type pagerModel struct {
	viewport viewport.Model
}

func newPagerModel(content string, width, height int) pagerModel {
	vp := viewport.New(width, height-2)
	vp.SetContent(content)

	return pagerModel{viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = msg.Height - 2

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := fmt.Sprintf("  %3.f%% | %s", pm.viewport.ScrollPercent()*100, pagerHelp)

	return pm.viewport.View() + "\n" + helpStyle.Render(footer)
}
