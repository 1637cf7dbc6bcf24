// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
	"github.com/ctsrd-cheri/cheriloc/internal/latex"
)

// ComputeChangesInput contains the input parameters for ComputeChanges.
type ComputeChangesInput struct {
	Projects []*domain.Project // Projects to analyze, in report order
	// Coverage lists the cheribuild targets the projects must account
	// for. An empty list disables the check.
	Coverage []string
	// CoverageIgnore names targets deliberately left uncounted.
	CoverageIgnore []string
	SourceRoot     string // Directory holding the project checkouts
}

// ComputeChangesOutput contains the aggregated results and the rendered
// LaTeX fragments.
type ComputeChangesOutput struct {
	Reports   []*domain.Report // Per-project reports in table order
	Worst     *domain.Report   // Report with the highest relative change
	TableRows string           // Data rows of the results table
	Table     string           // Complete table environment
	Macros    string           // Per-project newcommand definitions
}

// ComputeChanges produces the CHERI change counts for a set of projects.
// It runs cloc for every project whose reports are not cached yet, parses
// the cached reports, prints the per-project and summary statistics, and
// renders the LaTeX table and macros for the dissertation.
type ComputeChanges struct {
	runner domain.ClocRunner
	refs   domain.RefResolver
	store  domain.ReportStore
	cloc   domain.ClocConfig
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewComputeChanges creates a new ComputeChanges use case.
func NewComputeChanges(
	runner domain.ClocRunner,
	refs domain.RefResolver,
	store domain.ReportStore,
	cloc domain.ClocConfig,
	logger *slog.Logger,
	stdout io.Writer,
	stderr io.Writer,
) *ComputeChanges {
	return &ComputeChanges{
		runner: runner,
		refs:   refs,
		store:  store,
		cloc:   cloc,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// Execute analyzes every project and aggregates the results.
// Processing:
//   - Run (or skip, when cached) the per-project cloc analysis
//   - Check the project list covers the expected cheribuild targets
//   - Print per-project statistics and the summary totals
//   - Render the LaTeX table rows and macro definitions
func (uc *ComputeChanges) Execute(ctx context.Context, in ComputeChangesInput) (*ComputeChangesOutput, error) {
	if err := uc.store.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	covered := make(map[string]bool, len(in.Coverage))
	missing := make(map[string]bool, len(in.Coverage))
	for _, tgt := range in.Coverage {
		covered[tgt] = true
		missing[tgt] = true
	}
	for _, tgt := range in.CoverageIgnore {
		delete(missing, tgt)
	}

	verifier := newRefVerifier(uc.refs, uc.logger, uc.stderr)
	reports := make([]*domain.Report, 0, len(in.Projects))
	for _, p := range in.Projects {
		r, err := uc.runProject(ctx, verifier, in.SourceRoot, p)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
		if len(in.Coverage) == 0 {
			continue
		}
		for _, tgt := range p.CoverageTargets() {
			if !covered[tgt] {
				return nil, fmt.Errorf("not in cheribuild targets: %s", tgt)
			}
			delete(missing, tgt)
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for tgt := range missing {
			names = append(names, tgt)
		}
		sort.Strings(names)
		fmt.Fprintln(uc.stdout, "Did not include:", names)
		return nil, domain.ErrTargetsNotCovered
	}

	total := &domain.Summary{}
	subsets := domain.NewSummarySet()
	for _, r := range reports {
		uc.printReport(r)
		if r.Project.Commented {
			continue
		}
		total.Add(r, false)
		noCheri := r.Project.NoCheriSpecificChanges()
		if noCheri {
			subsets.Get("no CHERI").Add(r, false)
		}
		subsets.Get("CHERI").Add(r, noCheri)
		lang := r.MainLanguage()
		if strings.HasPrefix(lang, "?") {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, r.Project.Name)
		}
		subsets.Get(lang).Add(r, false)
		subsets.Get("CHERI, "+lang).Add(r, noCheri)
	}
	uc.printSummary(total, subsets)

	domain.SortReports(reports)
	rows := latex.Rows(reports)

	var macros strings.Builder
	seen := make(map[string]bool, len(reports))
	var worst *domain.Report
	for _, r := range reports {
		macros.WriteString(latex.Macros(r))
		name := r.Project.DisplayName()
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTableName, name)
		}
		seen[name] = true
		if worst == nil || r.ChangedLOCPercent() > worst.ChangedLOCPercent() {
			worst = r
		}
	}
	if worst != nil {
		macros.WriteString(latex.MaxMacros(worst))
	}

	return &ComputeChangesOutput{
		Reports:   reports,
		Worst:     worst,
		TableRows: rows,
		Table:     latex.Table(rows),
		Macros:    macros.String(),
	}, nil
}

func (uc *ComputeChanges) runProject(ctx context.Context, verifier *refVerifier, sourceRoot string, p *domain.Project) (*domain.Report, error) {
	switch p.Kind() {
	case domain.KindDiff:
		return uc.runDiff(ctx, verifier, sourceRoot, p)
	case domain.KindUnmodified:
		return uc.runUnmodified(ctx, verifier, sourceRoot, p)
	default:
		return uc.runDirectories(ctx, sourceRoot, p)
	}
}

func (uc *ComputeChanges) runDiff(ctx context.Context, verifier *refVerifier, sourceRoot string, p *domain.Project) (*domain.Report, error) {
	repoDir, err := checkoutDir(sourceRoot, p.RepoSubdir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	baseHash, err := verifier.Hash(repoDir, p.Baseline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	cheriHash, err := verifier.Hash(repoDir, p.Cheri)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	outBase := uc.store.OutBase(p.Name)
	diffFile := uc.store.DiffFile(p.Name, baseHash, cheriHash)
	// cloc omits the diff report when nothing changed, so cached counts
	// for both revisions are enough to skip the run.
	cached := uc.store.Exists(diffFile) ||
		(uc.store.Exists(uc.store.CountFile(p.Name, baseHash)) &&
			uc.store.Exists(uc.store.CountFile(p.Name, cheriHash)))

	inv := domain.NewDiffInvocation(repoDir, outBase, baseHash, cheriHash,
		uc.cloc.Processes, uc.cloc.DiffTimeoutSecs, p.ExtraClocArgs)
	if err := uc.runCloc(ctx, inv, p.Name, diffFile, cached); err != nil {
		return nil, err
	}

	baseline, err := uc.store.LoadCount(outBase, "."+baseHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	cheri, err := uc.store.LoadCount(outBase, "."+cheriHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	diff, err := uc.store.LoadDiff(outBase, ".diff."+baseHash+"."+cheriHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	var clocDiff *domain.ClocDiff
	if diff != nil {
		clocDiff = &diff.Sum
	}
	return domain.NewReport(p, *baseline, cheri, clocDiff), nil
}

func (uc *ComputeChanges) runUnmodified(ctx context.Context, verifier *refVerifier, sourceRoot string, p *domain.Project) (*domain.Report, error) {
	repoDir, err := checkoutDir(sourceRoot, p.RepoSubdir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	hash, err := verifier.Hash(repoDir, p.Baseline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	outFile := uc.store.CountFile(p.Name, hash)
	inv := domain.NewCountInvocation(repoDir, outFile, hash, uc.cloc.Processes, p.ExtraClocArgs)
	if err := uc.runCloc(ctx, inv, p.Name, outFile, uc.store.Exists(outFile)); err != nil {
		return nil, err
	}

	baseline, err := uc.store.LoadCount(uc.store.OutBase(p.Name), "."+hash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return domain.NewReport(p, *baseline, nil, nil), nil
}

func (uc *ComputeChanges) runDirectories(ctx context.Context, sourceRoot string, p *domain.Project) (*domain.Report, error) {
	workDir := sourceRoot
	if p.BaseDirectory != "" {
		workDir = filepath.Join(sourceRoot, p.BaseDirectory)
	}

	outFile := uc.store.DirectoriesFile(p.Name, p.Directories)
	inv := domain.NewDirectoriesInvocation(workDir, outFile, uc.cloc.Processes, p.ExtraClocArgs, p.Directories)
	if err := uc.runCloc(ctx, inv, p.Name, outFile, uc.store.Exists(outFile)); err != nil {
		return nil, err
	}

	baseline, err := uc.store.LoadCount(outFile, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return domain.NewReport(p, *baseline, nil, nil), nil
}

// runCloc executes one cloc invocation, or reports why it is skipped when
// the analysis is already cached. The printed command line lets the user
// re-run the analysis by hand.
func (uc *ComputeChanges) runCloc(ctx context.Context, inv domain.ClocInvocation, project, cacheFile string, cached bool) error {
	cmdline := shellCommand(uc.cloc.Path, inv)
	if cached {
		if uc.logger != nil {
			uc.logger.Debug("skipping cloc run, report cached", "project", project, "report", cacheFile)
		}
		fmt.Fprintln(uc.stdout, "CLOC report found, not re-running analysis for ", project)
		fmt.Fprintln(uc.stdout, "Not running: ", cmdline)
		fmt.Fprintln(uc.stdout, "Delete", cacheFile, "to force new analysis run")
		return nil
	}
	if uc.logger != nil {
		uc.logger.Debug("running cloc", "project", project, "command", cmdline)
	}
	fmt.Fprintln(uc.stdout, "Running: ", cmdline)
	if err := uc.runner.Run(ctx, inv, uc.stdout, uc.stderr); err != nil {
		var exitErr *domain.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("cloc failed for %s: exit status %d", project, exitErr.Code)
		}
		return fmt.Errorf("cloc failed for %s: %w", project, err)
	}
	return nil
}

func (uc *ComputeChanges) printReport(r *domain.Report) {
	w := uc.stdout
	langRatios := r.LanguageRatios()
	ratios := make([]string, 0, len(langRatios))
	for _, lr := range langRatios {
		ratios = append(ratios, fmt.Sprintf("%.2f%% %s", lr.Ratio*100, lr.Language))
	}
	fmt.Fprintln(w, "------- ", r.Project.Name, "--------------")
	fmt.Fprintf(w, "Languages           %s\n", strings.Join(ratios, " "))
	fmt.Fprintf(w, "TOTAL SLOC          %s\n", humanize.Comma(int64(r.Baseline.Sum.Code)))
	fmt.Fprintf(w, "SLOC CHANGED        %s\n", humanize.Comma(int64(r.ChangedLOC())))
	fmt.Fprintf(w, "SLOC CHANGED %%      %s\n", humanize.Commaf(r.ChangedLOCPercent()))
	fmt.Fprintf(w, "TOTAL FILES         %s\n", humanize.Comma(int64(r.Baseline.Sum.Files)))
	fmt.Fprintf(w, "SLOC / FILE         %s\n", humanize.Commaf(r.Baseline.Sum.CodePerFile()))
	fmt.Fprintf(w, "FILES CHANGED       %s\n", humanize.Comma(int64(r.ChangedFiles())))
	fmt.Fprintf(w, "FILES CHANGED %%     %s\n", humanize.Commaf(r.ChangedFilesPercent()))
	fmt.Fprintln(w, "-----------------------------")
	fmt.Fprintln(w)
}

func (uc *ComputeChanges) printSummary(total *domain.Summary, subsets *domain.SummarySet) {
	w := uc.stdout
	fmt.Fprintln(w, "------- SUMMARY --------------")
	fmt.Fprintf(w, "TOTAL SLOC            %s\n", humanize.Comma(int64(total.SLOC)))
	fmt.Fprintf(w, "SLOC CHANGED          %s\n", humanize.Comma(int64(total.ChangedSLOC)))
	fmt.Fprintf(w, "SLOC CHANGED %%        %s\n", humanize.Commaf(total.ChangedSLOCPercent()))
	fmt.Fprintf(w, "FILES CHANGED         %s\n", humanize.Comma(int64(total.ChangedFiles)))
	fmt.Fprintf(w, "FILES CHANGED %%       %s\n", humanize.Commaf(total.ChangedFilesPercent()))
	fmt.Fprintf(w, "TOTAL FILES           %s\n", humanize.Comma(int64(total.Files)))
	fmt.Fprintf(w, "SLOC / FILE           %s\n", humanize.Commaf(total.SLOCPerFile()))
	fmt.Fprintln(w)
	for _, name := range subsets.Names() {
		s := subsets.Get(name)
		fmt.Fprintf(w, "TOTAL SLOC   (%s)    %s\n", name, humanize.Comma(int64(s.SLOC)))
		fmt.Fprintf(w, "SLOC CHANGED (%s)    %s\n", name, humanize.Comma(int64(s.ChangedSLOC)))
		fmt.Fprintf(w, "SLOC CHANGED (%s) %%  %s\n", name, humanize.Commaf(s.ChangedSLOCPercent()))
		fmt.Fprintf(w, "TOTAL FILES (%s)     %s\n", name, humanize.Comma(int64(s.Files)))
		fmt.Fprintf(w, "SLOC / FILE (%s)     %s\n", name, humanize.Commaf(s.SLOCPerFile()))
		fmt.Fprintf(w, "FILES CHANGED (%s)   %s\n", name, humanize.Comma(int64(s.ChangedFiles)))
		fmt.Fprintf(w, "FILES CHANGED (%s) %% %s\n", name, humanize.Commaf(s.ChangedFilesPercent()))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "-----------------------------")
	fmt.Fprintln(w)
}

// refVerifier checks pinned refs against the branches they were cut
// from, warning once per repository and branch when a branch has moved.
// Counting always uses the pinned hash so that published numbers stay
// reproducible.
type refVerifier struct {
	refs   domain.RefResolver
	logger *slog.Logger
	errOut io.Writer
	seen   map[string]bool
}

func newRefVerifier(refs domain.RefResolver, logger *slog.Logger, errOut io.Writer) *refVerifier {
	return &refVerifier{refs: refs, logger: logger, errOut: errOut, seen: make(map[string]bool)}
}

// Hash returns the pinned commit hash of ref in the repository at repoDir.
func (v *refVerifier) Hash(repoDir string, ref *domain.GitRef) (string, error) {
	key := repoDir + "@" + ref.Branch
	if !v.seen[key] {
		actual, err := v.refs.Resolve(repoDir, ref.Branch)
		if err != nil {
			return "", err
		}
		v.seen[key] = true
		if v.logger != nil {
			v.logger.Debug("verified pinned ref",
				"repo", repoDir, "branch", ref.Branch, "pinned", ref.Hash, "branch_head", actual)
		}
		if actual != ref.Hash {
			fmt.Fprintln(v.errOut, "BRANCH HASH", actual, "FOR", ref.Branch,
				"DOES NOT MATCH EXPECTED VALUE (updates since last check?)", ref.Hash)
		}
	}
	return ref.Hash, nil
}

func checkoutDir(sourceRoot, repoSubdir string) (string, error) {
	dir := filepath.Join(sourceRoot, repoSubdir)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("checkout not found: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("checkout %s is not a directory", dir)
	}
	return dir, nil
}

// shellCommand renders an invocation as a copy-pasteable shell command.
func shellCommand(clocPath string, inv domain.ClocInvocation) string {
	parts := []string{shellQuote(clocPath)}
	for _, arg := range inv.Args() {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// shellQuote single-quotes s unless every character is safe to leave
// unquoted in a POSIX shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	unsafe := func(r rune) bool {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return false
		case strings.ContainsRune("_@%+=:,./-", r):
			return false
		}
		return true
	}
	if !strings.ContainsFunc(s, unsafe) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
