package domain

import "sort"

// CountedLanguages are the languages whose per-language code counts feed
// the ratio breakdown.
var CountedLanguages = []string{"Assembly", "C", "C++"}

// ClocSummary is one counting bucket of a cloc JSON report.
type ClocSummary struct {
	Blank   int `json:"blank"`
	Comment int `json:"comment"`
	Code    int `json:"code"`
	Files   int `json:"nFiles"`
}

// CodePerFile returns the average code lines per file.
func (s ClocSummary) CodePerFile() float64 {
	if s.Files == 0 {
		return 0
	}
	return float64(s.Code) / float64(s.Files)
}

// ClocDiff holds the four SUM buckets of a --count-and-diff report.
type ClocDiff struct {
	Added    ClocSummary `json:"added"`
	Removed  ClocSummary `json:"removed"`
	Modified ClocSummary `json:"modified"`
	Same     ClocSummary `json:"same"`
}

// CountReport is a parsed cloc count of one revision or directory set.
type CountReport struct {
	// Languages maps each counted language to its code line count.
	Languages map[string]int
	// Sum is the report's SUM entry.
	Sum ClocSummary
}

// DiffReport is a parsed --count-and-diff report. The bucket maps are
// keyed by language, or by file when cloc ran with --by-file.
type DiffReport struct {
	Added    map[string]ClocSummary
	Removed  map[string]ClocSummary
	Modified map[string]ClocSummary
	Same     map[string]ClocSummary
	Sum      ClocDiff
}

// LanguageRatio is one language's share of a project's counted code.
type LanguageRatio struct {
	Language string
	Ratio    float64
}

// Report bundles the parsed cloc results for one project with the change
// metrics derived from them.
type Report struct {
	Project  *Project
	Baseline CountReport
	Cheri    *CountReport
	Diff     *ClocDiff
}

// NewReport derives a project report from parsed cloc output.
//
// cloc counts files whose only changes are whitespace or comments as
// modified even though no code changed; when the diff carries no changed
// code lines the modified file count is zeroed to match.
func NewReport(p *Project, baseline CountReport, cheri *CountReport, diff *ClocDiff) *Report {
	r := &Report{Project: p, Baseline: baseline, Cheri: cheri, Diff: diff}
	if r.Diff != nil && r.ChangedLOC() == 0 && r.Diff.Modified.Files != 0 {
		r.Diff.Modified.Files = 0
	}
	return r
}

// ChangedLOC returns the number of changed code lines: modified plus
// added plus removed.
func (r *Report) ChangedLOC() int {
	if r.Diff == nil {
		return 0
	}
	return r.Diff.Modified.Code + r.Diff.Added.Code + r.Diff.Removed.Code
}

// ChangedFiles returns the number of modified files. The added and
// removed file counts from cloc's git diff mode are not reliable and are
// left out.
func (r *Report) ChangedFiles() int {
	if r.Diff == nil {
		return 0
	}
	return r.Diff.Modified.Files
}

// ChangedLOCPercent returns changed code lines relative to the baseline.
func (r *Report) ChangedLOCPercent() float64 {
	return percent(r.ChangedLOC(), r.Baseline.Sum.Code)
}

// ChangedFilesPercent returns modified files relative to the baseline.
func (r *Report) ChangedFilesPercent() float64 {
	return percent(r.ChangedFiles(), r.Baseline.Sum.Files)
}

// LanguageRatios returns the languages that make up more than one percent
// of the baseline code, largest share first.
func (r *Report) LanguageRatios() []LanguageRatio {
	total := 0
	for _, code := range r.Baseline.Languages {
		total += code
	}
	if total == 0 {
		return nil
	}
	ratios := make([]LanguageRatio, 0, len(r.Baseline.Languages))
	for lang, code := range r.Baseline.Languages {
		ratio := float64(code) / float64(total)
		if ratio > 0.01 {
			ratios = append(ratios, LanguageRatio{Language: lang, Ratio: ratio})
		}
	}
	sort.Slice(ratios, func(i, j int) bool {
		if ratios[i].Ratio != ratios[j].Ratio {
			return ratios[i].Ratio > ratios[j].Ratio
		}
		return ratios[i].Language < ratios[j].Language
	})
	return ratios
}

// MainLanguage returns the dominant language, or "????" when nothing
// recognizable was counted.
func (r *Report) MainLanguage() string {
	ratios := r.LanguageRatios()
	if len(ratios) == 0 {
		return "????"
	}
	return ratios[0].Language
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// SortReports orders reports by main language, then by relative change,
// then by absolute change.
func SortReports(reports []*Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].MainLanguage() != reports[j].MainLanguage() {
			return reports[i].MainLanguage() < reports[j].MainLanguage()
		}
		if reports[i].ChangedLOCPercent() != reports[j].ChangedLOCPercent() {
			return reports[i].ChangedLOCPercent() < reports[j].ChangedLOCPercent()
		}
		return reports[i].ChangedLOC() < reports[j].ChangedLOC()
	})
}
