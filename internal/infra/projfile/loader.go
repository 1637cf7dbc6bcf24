// Package projfile loads project sets from YAML files, so change
// measurements are not limited to the built-in sets.
package projfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
	"github.com/ctsrd-cheri/cheriloc/internal/registry"
)

type fileSet struct {
	Name           string        `yaml:"name"`
	Coverage       []string      `yaml:"coverage"`
	CoverageIgnore []string      `yaml:"coverage_ignore"`
	Projects       []fileProject `yaml:"projects"`
}

type fileProject struct {
	Name           string    `yaml:"name"`
	LatexName      string    `yaml:"latex_name"`
	Repo           string    `yaml:"repo"`
	BaseDirectory  string    `yaml:"base_directory"`
	Baseline       *fileRef  `yaml:"baseline"`
	Cheri          *fileRef  `yaml:"cheri"`
	Directories    []string  `yaml:"directories"`
	ExtraClocArgs  []string  `yaml:"extra_cloc_args"`
	Extra          fileExtra `yaml:"extra"`
	Commented      bool      `yaml:"commented"`
	NoCheriChanges bool      `yaml:"no_cheri_changes"`
}

type fileRef struct {
	Branch string `yaml:"branch"`
	Hash   string `yaml:"hash"`
}

type fileExtra struct {
	OverrideText string    `yaml:"override_text"`
	Efficiency   markValue `yaml:"efficiency"`
	Offset       markValue `yaml:"offset"`
	PtrCmp       markValue `yaml:"ptr_cmp"`
	Cherish      markValue `yaml:"cherish"`
	Other        markValue `yaml:"other"`
	Notes        string    `yaml:"notes"`
}

// markValue decodes an assessment cell: null (or absent) is unknown,
// booleans are yes and no, and strings are free text.
type markValue domain.Mark

func (m *markValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Tag {
	case "!!null":
		*m = markValue{}
		return nil
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			*m = markValue(domain.MarkYes())
		} else {
			*m = markValue(domain.MarkNo())
		}
		return nil
	case "!!str":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*m = markValue(domain.MarkText(s))
		return nil
	default:
		return fmt.Errorf("cannot decode %s as an assessment mark", value.Tag)
	}
}

// Load reads a project set from a YAML file. Unknown keys are errors,
// and every project must pass the same validation as the built-in sets.
func Load(path string) (*registry.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project file: %w", err)
	}

	var fs fileSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		return nil, fmt.Errorf("parse project file %s: %w", path, err)
	}

	name := fs.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	set := &registry.Set{
		Name:           name,
		Coverage:       fs.Coverage,
		CoverageIgnore: fs.CoverageIgnore,
	}
	for i, fp := range fs.Projects {
		project := fp.toDomain()
		if err := project.Validate(); err != nil {
			return nil, fmt.Errorf("project file %s: project %d: %w", path, i+1, err)
		}
		set.Projects = append(set.Projects, project)
	}
	return set, nil
}

func (fp fileProject) toDomain() *domain.Project {
	return &domain.Project{
		Name:          fp.Name,
		LatexName:     fp.LatexName,
		RepoSubdir:    fp.Repo,
		BaseDirectory: fp.BaseDirectory,
		Baseline:      fp.Baseline.toDomain(),
		Cheri:         fp.Cheri.toDomain(),
		Directories:   fp.Directories,
		ExtraClocArgs: fp.ExtraClocArgs,
		Extra: domain.ExtraColumns{
			OverrideText: fp.Extra.OverrideText,
			Efficiency:   domain.Mark(fp.Extra.Efficiency),
			Offset:       domain.Mark(fp.Extra.Offset),
			PtrCmp:       domain.Mark(fp.Extra.PtrCmp),
			Cherish:      domain.Mark(fp.Extra.Cherish),
			Other:        domain.Mark(fp.Extra.Other),
			Notes:        fp.Extra.Notes,
		},
		Commented:      fp.Commented,
		NoCheriChanges: fp.NoCheriChanges,
	}
}

func (fr *fileRef) toDomain() *domain.GitRef {
	if fr == nil {
		return nil
	}
	return &domain.GitRef{Branch: fr.Branch, Hash: fr.Hash}
}
