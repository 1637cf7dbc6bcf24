package domain

// Summary accumulates code and change totals across project reports.
type Summary struct {
	SLOC         int
	Files        int
	ChangedSLOC  int
	ChangedFiles int
}

// Add accumulates a report's baseline counts. Changes are skipped when
// ignoreChanges is set so that rewrites unrelated to CHERI do not
// inflate the change totals.
func (s *Summary) Add(r *Report, ignoreChanges bool) {
	s.SLOC += r.Baseline.Sum.Code
	s.Files += r.Baseline.Sum.Files
	if !ignoreChanges {
		s.ChangedSLOC += r.ChangedLOC()
		s.ChangedFiles += r.ChangedFiles()
	}
}

// SLOCPerFile returns the average code lines per file.
func (s *Summary) SLOCPerFile() float64 {
	if s.Files == 0 {
		return 0
	}
	return float64(s.SLOC) / float64(s.Files)
}

// ChangedSLOCPercent returns changed code lines relative to the total.
func (s *Summary) ChangedSLOCPercent() float64 {
	return percent(s.ChangedSLOC, s.SLOC)
}

// ChangedFilesPercent returns changed files relative to the total.
func (s *Summary) ChangedFilesPercent() float64 {
	return percent(s.ChangedFiles, s.Files)
}

// SummarySet groups summaries under named subsets, preserving the order
// in which subsets first appear.
type SummarySet struct {
	names  []string
	byName map[string]*Summary
}

// NewSummarySet creates an empty summary set.
func NewSummarySet() *SummarySet {
	return &SummarySet{byName: make(map[string]*Summary)}
}

// Get returns the summary for name, creating it on first use.
func (s *SummarySet) Get(name string) *Summary {
	if sum, ok := s.byName[name]; ok {
		return sum
	}
	sum := &Summary{}
	s.byName[name] = sum
	s.names = append(s.names, name)
	return sum
}

// Names returns the subset names in first-use order.
func (s *SummarySet) Names() []string {
	return s.names
}
