// Package latex renders change reports as the LaTeX table and macro
// definitions included in the dissertation.
package latex

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

const tableHeader = `
\begin{table}[]
\centering
\begin{tabular}{@{}l|rr|rr@{}}
\FL
                      & \multicolumn{2}{c|}{Total counts} & \multicolumn{2}{c}{CHERI changes} \NN
Project                 & \multicolumn{1}{c}{SLOC}   & \multicolumn{1}{c|}{files}  & \multicolumn{1}{c}{SLOC} &  \multicolumn{1}{c}{files} \ML
`

const tableFooter = `
\end{tabular}
\caption{FOO}
\label{tab:cheri-compat-changes}
\end{table}
`

// LangName returns the rendering of a cloc language name.
func LangName(lang string) string {
	switch lang {
	case "Assembly":
		return "ASM"
	case "C++":
		return `\cpp{}`
	default:
		return lang
	}
}

// MacroName derives a LaTeX macro name from a display name. Separators
// capitalize the following letter and everything non-alphabetic is
// dropped, so "QtBase 5.15 (src only)" becomes "QtBaseSrcOnly".
func MacroName(name string) string {
	var b strings.Builder
	nextUpper := true
	for _, c := range name {
		switch c {
		case '-', ' ', '\t', '_', '.', '(', ')':
			nextUpper = true
			continue
		}
		if !unicode.IsLetter(c) {
			continue
		}
		if nextUpper {
			b.WriteRune(unicode.ToUpper(c))
			nextUpper = false
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// MarkString renders one qualitative cell. Unknown cells stand out in
// red so missing assessments are caught during review.
func MarkString(m domain.Mark) string {
	switch {
	case !m.Known:
		return `\textcolor{red}{?}`
	case m.Text != "":
		return m.Text
	case m.Yes:
		return `\checkmark`
	default:
		return ""
	}
}

// DisplayLanguages returns the language column for a report: the
// dominant languages in descending order, or "????" when nothing was
// counted.
func DisplayLanguages(r *domain.Report) string {
	ratios := r.LanguageRatios()
	if len(ratios) == 0 {
		return "????"
	}
	names := make([]string, 0, len(ratios))
	for _, lr := range ratios {
		names = append(names, LangName(lr.Language))
	}
	return strings.Join(names, ", ")
}

// Row renders one table line: name, languages, kSLOC, file count, then
// changed SLOC and files with percentages, followed by the assessment
// cells.
func Row(r *domain.Report) string {
	base := fmt.Sprintf(`%-35s & %-15s & %8sK & %8s & %8s (%.2f\%%) & %8s (%.1f\%%) `,
		r.Project.DisplayName(),
		DisplayLanguages(r),
		// Half-to-even, like Python's "{:,.0f}" the tables were first
		// generated with.
		humanize.Comma(int64(math.RoundToEven(float64(r.Baseline.Sum.Code)/1000.0))),
		humanize.Comma(int64(r.Baseline.Sum.Files)),
		humanize.Comma(int64(r.ChangedLOC())),
		r.ChangedLOCPercent(),
		humanize.Comma(int64(r.ChangedFiles())),
		r.ChangedFilesPercent(),
	)
	return base + extraCells(r.Project)
}

func extraCells(p *domain.Project) string {
	if p.Kind() != domain.KindDiff {
		return " & & & & & &"
	}
	x := p.Extra
	if x.OverrideText != "" {
		return ` & \multicolumn{6}{l}{` + x.OverrideText + `}`
	}
	return fmt.Sprintf(" & %s & %s & %s & %s & %s & %s",
		MarkString(x.Efficiency),
		MarkString(x.Offset),
		MarkString(x.PtrCmp),
		MarkString(x.Cherish),
		MarkString(x.Other),
		x.Notes,
	)
}

// Rows renders the table body. Commented projects keep their row as a
// LaTeX comment so the numbers stay visible in the source.
func Rows(reports []*domain.Report) string {
	var b strings.Builder
	for i, r := range reports {
		if r.Project.Commented {
			b.WriteString("% ")
		}
		b.WriteString(Row(r))
		if i != len(reports)-1 {
			b.WriteString("\\NN\n")
		}
	}
	b.WriteString("\\LL\n")
	return b.String()
}

// Table wraps a rendered body in the table skeleton.
func Table(body string) string {
	return tableHeader + body + tableFooter
}

// Macros renders the size and change macros for one report.
func Macros(r *domain.Report) string {
	name := MacroName(r.Project.DisplayName())
	lines := []string{
		fmt.Sprintf(`\newcommand*{\TotalSloc%s}{%d}`, name, r.Baseline.Sum.Code),
		fmt.Sprintf(`\newcommand*{\ChangedSloc%s}{%d}`, name, r.ChangedLOC()),
		fmt.Sprintf(`\newcommand*{\ChangedSlocRatio%s}{%.2f\%%}`, name, r.ChangedLOCPercent()),
		fmt.Sprintf(`\newcommand*{\ChangedFiles%s}{%d}`, name, r.ChangedFiles()),
		fmt.Sprintf(`\newcommand*{\ChangedFilesRatio%s}{%.1f\%%}`, name, r.ChangedFilesPercent()),
	}
	return strings.Join(lines, "\n") + "\n"
}

// MaxMacros renders the macros naming the project with the largest
// relative change.
func MaxMacros(worst *domain.Report) string {
	var b strings.Builder
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "\\newcommand*{\\ChangedSlocMax}{%d}\n", worst.ChangedLOC())
	fmt.Fprintf(&b, "\\newcommand*{\\ChangedSlocMaxRatio}{%.2f\\%%}\n", worst.ChangedLOCPercent())
	fmt.Fprintf(&b, "\\newcommand*{\\ChangedSlocMaxProject}{%s}\n", worst.Project.DisplayName())
	return b.String()
}
