package registry

import "github.com/ctsrd-cheri/cheriloc/internal/domain"

// The bundled sqlite3.c amalgamation times out the diff.
const skipQtSqlite = "--not-match-f=/src/3rdparty/sqlite/sqlite3.c"

// Pinned qtbase revisions shared by the per-subtree rows.
var (
	qtbase510Baseline = domain.GitRef{Branch: "upstream/5.10", Hash: "4ba535616b8d3dfda7fbe162c6513f3008c1077a"}
	qtbase510Cheri    = domain.GitRef{Branch: "5.10-thesis", Hash: "33de53d5ec4c3f58b4960e835911215388e38235"}
	qtbase515Baseline = domain.GitRef{Branch: "baseline-5.15", Hash: "970c51ec4861f20ebb33f5299298857669c92aad"}
	qtbase515Cheri    = domain.GitRef{Branch: "5.15", Hash: "d9424709b6be50aa093d9d021cd126bd6570ec96"}
)

func qtbaseSubtree(name string, baseline, cheri domain.GitRef, extraArgs []string, extra domain.ExtraColumns) *domain.Project {
	base := baseline
	head := cheri
	return &domain.Project{
		Name:          name,
		RepoSubdir:    "qt5/qtbase",
		Baseline:      &base,
		Cheri:         &head,
		ExtraClocArgs: extraArgs,
		Extra:         extra,
	}
}

// dsbdSet returns the projects measured for the DSbD desktop report,
// checked against the cheribuild targets of the demo software stack.
func dsbdSet() *Set {
	// Counted for reference only; these overlap the per-subtree rows and
	// must stay out of the totals.
	nonTotal := []*domain.Project{
		qtbaseSubtree("QtBase 5.15 (everything)", qtbase515Baseline, qtbase515Cheri,
			[]string{skipQtSqlite},
			qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes")),
		qtbaseSubtree("QtBase 5.10 (src only)", qtbase510Baseline, qtbase510Cheri,
			[]string{"--match-d=/(src|include)(/|$)", skipQtSqlite},
			qualitative(yes, yes, yes, no, yes, "")),
		qtbaseSubtree("QtBase 5.10 (tests only)", qtbase510Baseline, qtbase510Cheri,
			[]string{"--match-d=/(tests)(/|$)", skipQtSqlite},
			qualitative(yes, yes, yes, no, yes, "")),
		qtbaseSubtree("QtBase 5.10 (examples only)", qtbase510Baseline, qtbase510Cheri,
			[]string{"--match-d=/(examples)(/|$)", skipQtSqlite},
			qualitative(yes, yes, yes, no, yes, "")),
		qtbaseSubtree("QtBase 5.10 (everything)", qtbase510Baseline, qtbase510Cheri,
			[]string{skipQtSqlite},
			qualitative(yes, yes, yes, no, yes, "")),
		{
			Name:       "XVnc server (all)",
			RepoSubdir: "xvnc-server",
			Baseline:   ref("xorg-server-1.20.12", "5e516c7be478eb66088e9898407202b07ba8c790"),
			Cheri:      ref("server-1.20-branch", "1250bc8fdb1ecb1b94e29c32e3d15403ee0c64fc"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Fix realloc"),
		},
	}
	for _, p := range nonTotal {
		p.Commented = true
	}

	projects := append(nonTotal, []*domain.Project{
		{
			Name:       "QtSvg",
			RepoSubdir: "qt5/qtsvg",
			Baseline:   ref("baseline", "aceea78cc05ac8ff947cee9de8149b48771781a8"),
			Cheri:      ref("5.15", "05a9d31286044c18acbc93cd996e7db23ff3cff6"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Fix out-of-bounds read for empty strings"),
		},
		{
			Name:       "QtDeclarative",
			RepoSubdir: "qt5/qtdeclarative",
			Baseline:   ref("baseline", "6683c414c5cc6ab46197c41bb1361c518ca84d3e"),
			Cheri:      ref("5.15", "f968686b677a07728173985043ec0c6c0a2a1485"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes"),
		},
		{
			Name:           "QtGraphicalEffects",
			RepoSubdir:     "qt5/qtgraphicaleffects",
			Baseline:       ref("baseline", "c36998dc1581167b12cc3de8e4ac68c2a5d9f76e"),
			Cheri:          ref("5.15", "7dffbb886337c3527956f3ff32e35ab2e9979aa0"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes"),
			NoCheriChanges: true,
		},
		qtbaseSubtree("QtBase 5.15 (src only)", qtbase515Baseline, qtbase515Cheri,
			[]string{"--match-d=/(src|include)(/|$)", skipQtSqlite},
			qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes")),
		qtbaseSubtree("QtBase 5.15 (tests only)", qtbase515Baseline, qtbase515Cheri,
			[]string{"--match-d=/(tests)(/|$)", skipQtSqlite},
			qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes")),
		qtbaseSubtree("QtBase 5.15 (examples only)", qtbase515Baseline, qtbase515Cheri,
			[]string{"--match-d=/(examples)(/|$)", skipQtSqlite},
			qualitative(unknown, unknown, unknown, unknown, unknown, "Lots of changes")),
		{
			Name:       "TigerVNC",
			RepoSubdir: "tigervnc",
			Baseline:   ref("master", "dccb95f345f7a9c5aa785a19d1bfa3fdecd8f8e0"),
		},
		{
			Name:          "XVnc server",
			RepoSubdir:    "xvnc-server",
			Baseline:      ref("xorg-server-1.20.12", "5e516c7be478eb66088e9898407202b07ba8c790"),
			Cheri:         ref("server-1.20-branch", "1250bc8fdb1ecb1b94e29c32e3d15403ee0c64fc"),
			ExtraClocArgs: []string{"--fullpath", "--not-match-d=/hw/.*"},
			Extra:         qualitative(unknown, unknown, unknown, unknown, unknown, "Fix realloc"),
		},
		{
			Name:       "LibXFont",
			RepoSubdir: "libxfont",
			Baseline:   ref("baseline", "ce7a3265019e4d66198c1581d9e8c859c34e8ef1"),
			Cheri:      ref("master", "daff8876379c64c7bee126319af804896f83b5da"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Fix OOB read"),
		},
		{
			Name:       "xorgproto",
			RepoSubdir: "xorgproto",
			Baseline:   ref("xorgproto-2021.4.99.2", "47cc19608e6dde565296ed46839105663eae772f"),
			Cheri:      ref("master", "a0ed054ee2c334941dfe9eaa7bcfdbbe6907e1b5"),
			// The repository only contains C headers.
			ExtraClocArgs: []string{"--force-lang=C,h"},
			Extra:         qualitative(unknown, unknown, unknown, unknown, unknown, "Fix 64-bit long detection"),
		},
		{
			Name:       "LibX11",
			RepoSubdir: "libx11",
			Baseline:   ref("baseline", "401f58f8ba258d4e7ce56a8f756595b72e544c15"),
			Cheri:      ref("my-fdo-fork/fix-realloc-ub", "d01d23374107f6fc55511f02559cf75be7bdf448"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Fix 64-bit long detection and realloc abuse"),
		},
		{
			Name:       "LibXt",
			RepoSubdir: "libxt",
			Baseline:   ref("libXt-1.2.1", "edd70bdfbbd16247e3d9564ca51d864f82626eb7"),
			Cheri:      ref("master", "1d5bb760ee996927dd5dfa5b3c219b3d6ef63d11"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "fix long detection and Fix long vs pointer"),
		},
		{
			Name:       "KWin (security fix)",
			RepoSubdir: "kde-frameworks/kwin",
			Baseline:   ref("mykde/master", "2ba13f4a089b4ab4d833a8d1fbb7e05cf5b52ee0"),
			Cheri:      ref("master", "00b832a19ef10f8050cf1bf4144b17e514f457b7"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "fix long detection and Fix long vs pointer"),
		},
		{
			Name:       "KWin (build system + optional)",
			RepoSubdir: "kde-frameworks/kwin",
			Baseline:   ref("baseline", "ed57ac39e2ac98aee56e4f44789e3199df11a117"),
			Cheri:      ref("mykde/master", "2ba13f4a089b4ab4d833a8d1fbb7e05cf5b52ee0"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "fix long detection and Fix long vs pointer"),
			Commented:  true,
		},
		{
			Name:           "Plasma-framework",
			RepoSubdir:     "kde-frameworks/plasma-framework",
			Baseline:       ref("upstream/master", "75c31c08d560d51fcdeba2dc3d54e5c9d31fb3ca"),
			Cheri:          ref("mykde/master", "eea1c51ab140c193d8e4da8f0347f7d9bbee3dae"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "misc optional deps"),
			NoCheriChanges: true,
		},
		{
			Name:           "Plasma-workspace",
			RepoSubdir:     "kde-frameworks/plasma-workspace",
			Baseline:       ref("upstream/master", "270fe778fabc656e58d287e6b1221a3755e54106"),
			Cheri:          ref("mykde/master", "3c8f68f43086e919b65204d00fafd90381481197"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "misc"),
			NoCheriChanges: true,
		},
		{
			Name:           "Plasma-desktop",
			RepoSubdir:     "kde-frameworks/plasma-desktop",
			Baseline:       ref("upstream/master", "4dd957eb2d00fc9b6bea803c2997af409c7cb379"),
			Cheri:          ref("mykde/master", "307ee111ca94d62649222626b2b0a9171e14eb84"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "misc"),
			NoCheriChanges: true,
		},
		{
			Name:           "Dolphin",
			RepoSubdir:     "kde-frameworks/dolphin",
			Baseline:       ref("baseline", "d284e22f8730e98336fab515a339143341f55ec1"),
			Cheri:          ref("dbus-fix", "3fdd93db97bab9ca15e65047d69774cfbfe22f27"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "dbus"),
			NoCheriChanges: true,
		},
		{
			Name:           "Gwenview",
			RepoSubdir:     "kde-frameworks/gwenview",
			Baseline:       ref("baseline", "a4f13057a0bcf189a3249f2ec8d6ca5a5bfb1a0f"),
			Cheri:          ref("optional-deps", "4128e0baf993a154edeba7c8491684818ce039cc"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "dbus and opengl optional"),
			NoCheriChanges: true,
		},
		{
			Name:           "Okular",
			RepoSubdir:     "kde-frameworks/okular",
			Baseline:       ref("baseline", "21bc8bd023eee97dc7fbb34955488e0cf6214c04"),
			Cheri:          ref("optional-deps", "3b3dc10a712683c7a27bc0cd3d64dee7dec0a2cc"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "dbus optional"),
			NoCheriChanges: true,
		},
		{
			Name:           "Systemsettings",
			RepoSubdir:     "kde-frameworks/systemsettings",
			Baseline:       ref("origin/master", "6047a73514ab75037d5217624fd31e0ee2ea79d8"),
			Cheri:          ref("mykde/master", "dfda380f08abdf4fa67e4b1eb4f1627e7ee3ff68"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "dbus optional"),
			NoCheriChanges: true,
		},
		{
			Name:           "Poppler",
			RepoSubdir:     "poppler",
			Baseline:       ref("baseline", "f35567dc6033cf8f856f5694af058fda2528cbe7"),
			Cheri:          ref("master", "cc1807002f038787de53a81128ab46a5d96ea759"),
			Extra:          qualitative(unknown, unknown, unknown, unknown, unknown, "Silence warning"),
			NoCheriChanges: true,
		},
		{
			Name:       "fontconfig",
			RepoSubdir: "fontconfig",
			Baseline:   ref("my-fdo-fork/baseline", "3a7ad1b49f727eef20b3e3918794d984e367b619"),
			Cheri:      ref("my-fdo-fork/cheri-fixes", "6c2bbc30672fb210565cb788b36480898b647398"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "c11 atomics and provenance fixes"),
		},
		{
			Name:       "freetype2",
			RepoSubdir: "freetype2",
			Baseline:   ref("my-fdo-fork/baseline", "5d27b10f4c6c8e140bd48a001b98037ac0d54118"),
			Cheri:      ref("my-fdo-fork/cheri-fixes", "f7c6a06cb7458c8972955ebd698058d0957a0a47"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "c11 atomics and provenance fixes"),
		},
		{
			Name:       "libjpeg-turbo",
			RepoSubdir: "libjpeg-turbo",
			Baseline:   ref("mygithub/baseline", "4d9f256b0184bf8ee6e59e8cdf34c7d577d81b27"),
			Cheri:      ref("mygithub/cheri-fixes", "a72816ed07d71e34de07324ede020780d73c5c21"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Cast via uintptr_t for alignment"),
		},
		{
			Name:       "libpng",
			RepoSubdir: "libpng",
			Baseline:   ref("origin/libpng16", "a37d4836519517bdce6cb9d956092321eca3e73b"),
			Cheri:      ref("libpng16", "128a7128021d1aab082af720732023d4771fd8ac"),
			Extra:      qualitative(unknown, unknown, unknown, unknown, unknown, "Cast via uintptr_t"),
		},
		{
			Name:       "IceWM",
			RepoSubdir: "icewm",
			Baseline:   ref("icewm-1-4-BRANCH", "0af76ceb261ae1a5a2f863e2a5c5eee1b9de0be2"),
		},
		{
			Name:          "unmodified framworks",
			BaseDirectory: "kde-frameworks",
			Directories:   unmodifiedFrameworks,
		},
		{
			Name: "unmodified x11 pt1",
			Directories: []string{
				"libxau", "libxcb", "libxtrans", "libxext", "libxfixes",
				"libxi", "libxrender", "libice", "libsm", "libxmu",
				"build/libxcb-riscv64-purecap-build",
			},
		},
		{
			Name: "unmodified x11 pt2",
			Directories: []string{
				"libxpm", "libxft", "libxrandr", "libxcomposite", "libxdamage",
				"libxcb-render-util", "xorg-macros", "libxcursor",
				"libxcb-keysyms", "libxcb-wm", "xbitmaps", "xkeyboard-config",
				"xcbproto", "libfontenc", "libxcb-cursor", "libxcb-image",
				"libxcb-util", "libxkbcommon", "libxkbfile", "libxtst",
				"xorg-font-util", "xorg-pthread-stubs",
			},
		},
		{
			Name:        "X11 programs",
			Directories: []string{"xev", "xeyes", "xprop", "xauth", "xkbcomp", "twm", "xsetroot"},
		},
		{
			Name: "unmodified libraries",
			Directories: []string{
				"openjpeg", "pixman", "lcms2", "libudev-devd", "mtdev",
				"libevdev", "libintl-lite", "libexpat",
				"libinput", "shared-mime-info", "exiv2", "epoll-shim",
				"qt5/qtx11extras", "qt5/qtquickcontrols2",
				"qt5/qttools", "qt5/qtquickcontrols",
			},
		},
	}...)

	return &Set{
		Name:     "dsbd",
		Projects: projects,
		Coverage: allCheribuildTargets,
		// sqlite was not ported as part of this project.
		CoverageIgnore: []string{"sqlite"},
	}
}

// unmodifiedFrameworks lists the KDE frameworks that build without any
// source changes.
var unmodifiedFrameworks = []string{
	"attica",
	"breeze",
	"breeze-icons",
	"extra-cmake-modules",
	"kactivities",
	"kactivities-stats",
	"karchive",
	"kauth",
	"kbookmarks",
	"kcmutils",
	"kcodecs",
	"kcompletion",
	"kconfig",
	"kconfigwidgets",
	"kcoreaddons",
	"kcrash",
	"kdbusaddons",
	"kdeclarative",
	"kdecoration",
	"kded",
	"kfilemetadata",
	"kframeworkintegration",
	"kglobalaccel",
	"kguiaddons",
	"ki18n",
	"kiconthemes",
	"kidletime",
	"kimageformats",
	"kinit",
	"kio",
	"kio-extras",
	"kirigami",
	"kitemmodels",
	"kitemviews",
	"kjobwidgets",
	"knewstuff",
	"knotifications",
	"knotifyconfig",
	"kpackage",
	"kparts",
	"kpeople",
	"krunner",
	"kscreenlocker",
	"kservice",
	"ksyndication",
	"ksyntaxhighlighting",
	"ktextwidgets",
	"kunitconversion",
	"kwidgetsaddons",
	"kwindowsystem",
	"kxmlgui",
	"libkscreen",
	"libksysguard",
	"libqrencode",
	"phonon",
	"prison",
	"qqc2-desktop-style",
	"solid",
	"sonnet",
	"threadweaver",
}

// allCheribuildTargets are the cheribuild targets of the DSbD desktop
// stack. The dsbd set must account for every one of them.
var allCheribuildTargets = []string{
	"attica", "breeze", "breeze-icons", "dolphin", "epoll-shim", "exiv2", "extra-cmake-modules",
	"fontconfig", "freetype2", "gwenview", "icewm", "kactivities", "kactivities-stats", "karchive", "kauth",
	"kbookmarks", "kcmutils", "kcodecs", "kcompletion", "kconfig", "kconfigwidgets", "kcoreaddons", "kcrash",
	"kdbusaddons", "kdeclarative", "kdecoration", "kded", "kfilemetadata", "kframeworkintegration", "kglobalaccel",
	"kguiaddons", "ki18n", "kiconthemes", "kidletime", "kimageformats", "kinit", "kio", "kio-extras", "kirigami",
	"kitemmodels", "kitemviews", "kjobwidgets", "knewstuff", "knotifications", "knotifyconfig", "kpackage", "kparts",
	"kpeople", "krunner", "kscreenlocker", "kservice", "ksyndication", "ksyntaxhighlighting", "ktextwidgets",
	"kunitconversion", "kwidgetsaddons", "kwin", "kwindowsystem", "kxmlgui", "lcms2", "libevdev", "libexpat",
	"libfontenc", "libice", "libinput", "libintl-lite", "libjpeg-turbo", "libkscreen", "libksysguard", "libpng",
	"libqrencode", "libsm", "libudev-devd", "libx11", "libxau", "libxcb", "libxcb-cursor", "libxcb-image",
	"libxcb-keysyms", "libxcb-render-util", "libxcb-util", "libxcb-wm", "libxcomposite", "libxcursor", "libxdamage",
	"libxext", "libxfixes", "libxfont", "libxft", "libxi", "libxkbcommon", "libxkbfile", "libxmu", "libxpm",
	"libxrandr", "libxrender", "libxt", "libxtrans", "libxtst", "mtdev", "okular", "openjpeg", "phonon", "pixman",
	"plasma-desktop", "plasma-framework", "plasma-workspace", "poppler", "prison", "qqc2-desktop-style", "qtbase",
	"qtdeclarative", "qtgraphicaleffects", "qtquickcontrols", "qtquickcontrols2", "qtsvg", "qttools", "qtx11extras",
	"shared-mime-info", "solid", "sonnet", "sqlite", "systemsettings", "threadweaver", "tigervnc", "twm", "xbitmaps",
	"xcbproto", "xev", "xeyes", "xkbcomp", "xkeyboard-config", "xorg-font-util", "xorg-macros", "xorg-pthread-stubs",
	"xorgproto", "xprop", "xsetroot", "xvnc-server",
	// Fake target for the generated xcb C source code:
	"libxcb-riscv64-purecap-build",
	"xauth", // needed for ssh forwarding
}
