package domain

import (
	"slices"
	"strconv"
)

// Fixed cloc arguments shared by every invocation. Only C, C++, headers
// and assembly are counted; generated files marked "DO NOT EDIT" are
// excluded.
const (
	IncludeLanguages = "C,C++,C/C++ Header,Assembly"
	ExcludeContent   = `\bDO NOT EDIT\b`
	FileEncoding     = "UTF-8"
)

// DiffTimeoutSecs is the default per-file timeout for diff runs. Some
// generated kernel sources take minutes to diff.
const DiffTimeoutSecs = 300

// BenchmarkProcesses is the fixed worker count for the benchmark count.
const BenchmarkProcesses = 8

// SpecBenchmarks lists the SPEC CPU2006 benchmark directories counted by
// the count command, in invocation order.
var SpecBenchmarks = []string{
	"401.bzip",
	"445.gobmk",
	"456.hmmer",
	"458.sjeng",
	"462.libquantum",
	"464.h264ref",
	"471.omnetpp",
	"473.astar",
	"483.xalanbmk",
}

// ClocInvocation describes one run of the external cloc tool.
type ClocInvocation struct {
	// Dir is the working directory for the subprocess.
	Dir string
	// OutFile is passed as --out when set.
	OutFile string
	// DiffBase and DiffHead select a --count-and-diff run.
	DiffBase string
	DiffHead string
	// CountRef selects a single-revision count.
	CountRef string
	// ExtraArgs follow the fixed flags, before the targets.
	ExtraArgs []string
	// Targets are the positional arguments.
	Targets []string
	// Processes is the cloc worker count.
	Processes int
	// DiffTimeout is the per-file diff budget in seconds, emitted when positive.
	DiffTimeout    int
	JSON           bool
	Git            bool
	SkipUniqueness bool
	// PreferGNUTar asks the runner to put GNU tar first on PATH; cloc's
	// git diff mode pipes archives through tar.
	PreferGNUTar bool
}

// Args returns the cloc argument list in canonical order.
func (inv ClocInvocation) Args() []string {
	args := []string{"--include-lang=" + IncludeLanguages}
	if inv.OutFile != "" {
		args = append(args, "--out="+inv.OutFile)
	}
	if inv.SkipUniqueness {
		args = append(args, "--skip-uniqueness")
	}
	args = append(args,
		"--exclude-content="+ExcludeContent,
		"--verbose=1",
		"--file-encoding="+FileEncoding,
		"--processes="+strconv.Itoa(inv.Processes),
	)
	if inv.DiffTimeout > 0 {
		args = append(args, "--diff-timeout", strconv.Itoa(inv.DiffTimeout))
	}
	if inv.JSON {
		args = append(args, "--json")
	}
	if inv.Git {
		args = append(args, "--git")
	}
	if inv.DiffBase != "" {
		args = append(args, "--count-and-diff", inv.DiffBase, inv.DiffHead)
	} else if inv.CountRef != "" {
		args = append(args, inv.CountRef)
	}
	args = append(args, inv.ExtraArgs...)
	args = append(args, inv.Targets...)
	return args
}

// NewBenchmarkInvocation counts the SPEC CPU2006 benchmark tree at dir.
func NewBenchmarkInvocation(dir string) ClocInvocation {
	return ClocInvocation{
		Dir:       dir,
		Processes: BenchmarkProcesses,
		Targets:   slices.Clone(SpecBenchmarks),
	}
}

// NewDiffInvocation counts baseHash and diffs it against cheriHash in the
// repository at repoDir. cloc derives the per-revision and diff report
// names from outBase.
func NewDiffInvocation(repoDir, outBase, baseHash, cheriHash string, processes, diffTimeout int, extraArgs []string) ClocInvocation {
	return ClocInvocation{
		Dir:            repoDir,
		OutFile:        outBase,
		DiffBase:       baseHash,
		DiffHead:       cheriHash,
		ExtraArgs:      extraArgs,
		Processes:      processes,
		DiffTimeout:    diffTimeout,
		JSON:           true,
		Git:            true,
		SkipUniqueness: true,
		PreferGNUTar:   true,
	}
}

// NewCountInvocation counts a single revision of the repository at
// repoDir, writing the report to outFile.
func NewCountInvocation(repoDir, outFile, hash string, processes int, extraArgs []string) ClocInvocation {
	return ClocInvocation{
		Dir:       repoDir,
		OutFile:   outFile,
		CountRef:  hash,
		ExtraArgs: extraArgs,
		Processes: processes,
		JSON:      true,
		Git:       true,
	}
}

// NewDirectoriesInvocation counts dirs relative to workDir, writing the
// report to outFile.
func NewDirectoriesInvocation(workDir, outFile string, processes int, extraArgs, dirs []string) ClocInvocation {
	return ClocInvocation{
		Dir:       workDir,
		OutFile:   outFile,
		ExtraArgs: extraArgs,
		Targets:   slices.Clone(dirs),
		Processes: processes,
		JSON:      true,
	}
}
