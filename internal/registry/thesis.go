package registry

import "github.com/ctsrd-cheri/cheriloc/internal/domain"

// Pinned cheribsd revisions. Every cheribsd row diffs the same baseline
// snapshot against the hybrid or pure-capability change branch, filtered
// to one subtree.
var (
	cheribsdBaseline = domain.GitRef{Branch: "freebsd-head-20190719", Hash: "e10b4e4c363cb013ee6c318100cc04d2bd620588"}
	cheribsdHybrid   = domain.GitRef{Branch: "thesis-diff", Hash: "83c181c7a1985d84312f79a5506dcc0063aeeb76"}
	cheribsdPurecap  = domain.GitRef{Branch: "thesis-diff-purecap", Hash: "b99dab1985e4539c0619971babeba7971d993b09"}
)

func cheribsdHybridSubtree(name, latexName string, commented bool, extraArgs []string, extra domain.ExtraColumns) *domain.Project {
	baseline := cheribsdBaseline
	cheri := cheribsdHybrid
	return &domain.Project{
		Name:          name,
		LatexName:     latexName,
		RepoSubdir:    "cheribsd",
		Baseline:      &baseline,
		Cheri:         &cheri,
		ExtraClocArgs: extraArgs,
		Extra:         extra,
		Commented:     commented,
	}
}

func cheribsdPurecapSubtree(name, latexName string, commented bool, extraArgs []string, extra domain.ExtraColumns) *domain.Project {
	baseline := cheribsdBaseline
	cheri := cheribsdPurecap
	return &domain.Project{
		Name:          name,
		LatexName:     latexName,
		RepoSubdir:    "cheribsd",
		Baseline:      &baseline,
		Cheri:         &cheri,
		ExtraClocArgs: extraArgs,
		Extra:         extra,
		Commented:     commented,
	}
}

// thesisSet returns the projects measured for the original CHERI
// compatibility study (UCAM-CL-TR-949).
func thesisSet() *Set {
	return &Set{
		Name: "thesis",
		Projects: []*domain.Project{
			{
				Name:       "NGINX",
				RepoSubdir: "nginx",
				Baseline:   ref("baseline", "ff16c6f99c6cc0959d1632fb4030730ba27657ef"),
				Cheri:      ref("master", "d5794c5167f10e2230078dd798e4033beb1b1b6b"),
				Extra:      qualitative(yes, yes, yes, no, no, `$\approx$~50\% changes non-essential`),
			},
			{
				Name:       "PostgreSQL",
				RepoSubdir: "postgres",
				Baseline:   ref("baseline", "5329606693fcd132882c284abbb66bd296a24549"),
				Cheri:      ref("96-cheri", "83f3bec1f43a7dc92e95f273d49748dc131c567e"),
				Extra:      qualitative(no, yes, no, no, yes, `\textgreater~50\% changes non-essential`),
			},
			{
				Name:       "SQLite",
				RepoSubdir: "sqlite",
				Baseline:   ref("baseline", "6cbb084d16693e3ce8ea0bcfd96520abc5c3a886"),
				Cheri:      ref("branch-3.19", "41e4b8906c1480487847f1ac8515b1573c3b22f8"),
				Extra:      qualitative(no, no, no, no, no, ""),
			},
			{
				Name:       "QtBase (excluding tests)",
				LatexName:  "QtBase",
				RepoSubdir: "qt5/qtbase",
				Baseline:   ref("upstream/5.10", "4ba535616b8d3dfda7fbe162c6513f3008c1077a"),
				Cheri:      ref("5.10-thesis", "33de53d5ec4c3f58b4960e835911215388e38235"),
				// The bundled sqlite3.c amalgamation times out the diff.
				ExtraClocArgs: []string{"--match-d=/(src|include)(/|$)", "--not-match-f=/src/3rdparty/sqlite/sqlite3.c"},
				Extra:         qualitative(yes, yes, yes, no, yes, ""),
			},
			{
				Name:       "rsync",
				RepoSubdir: "rsync",
				Baseline:   ref("baseline", "c0c6a97c35e8e4fb56ba26dc9c8447e26d94de06"),
				Cheri:      ref("master", "ae924454e0857298515f044a363895687b9bcdf9"),
				Extra:      qualitative(no, no, no, no, yes, "Only required change is a bug-fix"),
			},
			{
				Name:       "libc++ (excluding tests)",
				LatexName:  `\libcxx (lib only)`,
				RepoSubdir: "llvm-project",
				Baseline:   ref("latest-merge", "6b56ad164cedab90a9b79bfd189a1a27622a24fa"),
				Cheri:      ref("master", "82040a73128e2dbb8de98a14639c6b10975d8165"),
				// libc++ headers have no file extension.
				ExtraClocArgs: []string{"--match-d=/libcxx/(src|include|lib)(/|$)", "--lang-no-ext=C/C++ Header"},
				Extra:         qualitative(no, yes, no, yes, no, `\textgreater~20\% changes for \name`),
			},
			{
				Name:          "libc++ (full)",
				LatexName:     `\libcxx (full)`,
				RepoSubdir:    "llvm-project",
				Baseline:      ref("latest-merge", "6b56ad164cedab90a9b79bfd189a1a27622a24fa"),
				Cheri:         ref("master", "82040a73128e2dbb8de98a14639c6b10975d8165"),
				ExtraClocArgs: []string{"--match-d=/libcxx/", "--lang-no-ext=C/C++ Header"},
				Extra:         qualitative(no, yes, no, yes, yes, `\textgreater~60\% test changes non-essential`),
				Commented:     true,
			},
			{
				Name:          "libc++ (test suite)",
				LatexName:     `\libcxx (test suite)`,
				RepoSubdir:    "llvm-project",
				Baseline:      ref("latest-merge", "6b56ad164cedab90a9b79bfd189a1a27622a24fa"),
				Cheri:         ref("master", "82040a73128e2dbb8de98a14639c6b10975d8165"),
				ExtraClocArgs: []string{"--match-d=/libcxx/(test)(/|$)", "--lang-no-ext=C/C++ Header"},
				Extra:         qualitative(no, yes, no, yes, yes, `\textgreater~60\% changes non-essential`),
			},
			{
				Name:          "compiler-rt (excluding tests)",
				LatexName:     "compiler-rt",
				RepoSubdir:    "llvm-project",
				Baseline:      ref("latest-merge", "6b56ad164cedab90a9b79bfd189a1a27622a24fa"),
				Cheri:         ref("master", "82040a73128e2dbb8de98a14639c6b10975d8165"),
				ExtraClocArgs: []string{"--match-d=/compiler-rt/(src|include|lib)(/|$)"},
				Extra:         qualitative(yes, no, yes, no, no, ""),
			},
			{
				Name:       "QtWebkit",
				RepoSubdir: "qt5/qtwebkit",
				Baseline:   ref("baseline", "4ce8ebc4094512b9916bfa5984065e95ac97c9d8"),
				Cheri:      ref("qtwebkit-5.212-cheri", "d6854ceb1cc52a1838316067b41e93f3dc83c2f7"),
				Extra:      qualitative(yes, yes, yes, no, yes, "Many changes for split register file"),
			},
			{
				Name:       "ICU4C",
				RepoSubdir: "icu4c",
				Baseline:   ref("baseline", "9e93ceca26803122e05da9725721a16ad13c190f"),
				Cheri:      ref("master", "9c39ecaf34dc0e3dd4f2bbec474e4ce190473017"),
				Extra:      qualitative(no, no, no, no, yes, "No CHERI-specific changes"),
			},
			cheribsdHybridSubtree("FreeBSD libc", "", false,
				[]string{
					"--match-d=/((lib/libc)|(contrib/libc-vis)|(contrib/tzcode/stdtime)|(contrib/gdtoa)|(contrib/jemalloc))(/|$)",
					// jemalloc ships a massive generated header
					"--not-match-f=size_classes.h",
				},
				qualitative(yes, yes, yes, yes, no, "")),
			cheribsdHybridSubtree("OpenSSH", "", false,
				[]string{"--match-d=/crypto/openssh(/|$)"},
				qualitative(no, no, no, no, no, "")),
			cheribsdHybridSubtree("OpenSSL", "", false,
				[]string{"--match-d=/crypto/openssl(/|$)"},
				qualitative(no, yes, no, yes, no, "")),
			cheribsdHybridSubtree("FreeBSD kernel", "FreeBSD kernel (hybrid, all files)", true,
				[]string{"--match-d=/sys(/|$)", "--not-match-d=test", "--not-match-f=pmap_mips64.c"},
				qualitative(yes, yes, yes, no, yes, "")),
			// Per-file count of the full kernel, used to find the files
			// with the most changes.
			cheribsdHybridSubtree("FreeBSD kernel (full-by-file)", "", true,
				[]string{"--match-d=/sys(/|$)", "--by-file", "--not-match-f=pmap_mips64.c", "--not-match-d=test"},
				domain.ExtraColumns{}),
			cheribsdHybridSubtree("FreeBSD kernel (no drivers)", "FreeBSD kernel (hybrid)", false,
				[]string{"--match-d=/sys(/|$)", "--not-match-f=pmap_mips64.c", "--not-match-d=test", "--exclude-dir=dev"},
				qualitative(yes, yes, yes, no, yes, "")),
			cheribsdPurecapSubtree("purecap kernel", "FreeBSD kernel (pure, all files)", true,
				[]string{"--match-d=/sys(/|$)", "--not-match-d=test", "--not-match-f=pmap_mips64.c"},
				qualitative(yes, yes, yes, yes, yes, "")),
			cheribsdPurecapSubtree("purecap kernel (no drivers)", "FreeBSD kernel (pure)", false,
				[]string{"--match-d=/sys(/|$)", "--not-match-f=pmap_mips64.c", "--not-match-d=test", "--exclude-dir=dev"},
				qualitative(yes, yes, yes, yes, yes, "")),
			{
				// Only needed alloc-size annotations for the precision study.
				Name:       "libxml2",
				LatexName:  "libxml2 (including alloc_size)",
				RepoSubdir: "libxml2",
				Baseline:   ref("baseline", "030b1f7a27c22f9237eddca49ec5e620b6258d7d"),
				Cheri:      ref("master", "a7c68cd6e7ddacba2081bc58e0db90d348ea4830"),
				Extra:      qualitative(unknown, unknown, unknown, no, yes, ""),
				Commented:  true,
			},
		},
	}
}
