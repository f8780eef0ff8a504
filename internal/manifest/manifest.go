// Package manifest loads declarative unit manifests from YAML files
// and turns them into validated service and timer definitions.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/trly/unit-ops/internal/unit"
)

// Unit kinds a manifest entry can declare, inferred from the entry
// name's suffix.
const (
	KindService = "service"
	KindTimer   = "timer"
)

// entryNamePattern matches complete generated unit names. Only the two
// generated kinds are accepted here; references to other unit types
// belong in unit options, not entry names.
var entryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9@_\-\.]+\.(service|timer)$`)

// Document is one parsed manifest file.
type Document struct {
	Units []Entry `yaml:"units"`
}

// Entry declares a single unit. The name carries the kind via its
// suffix; exactly the matching options section must be present.
type Entry struct {
	Name    string              `yaml:"name"`
	Unit    unit.UnitConfig     `yaml:"unit"`
	Service *unit.ServiceConfig `yaml:"service,omitempty"`
	Timer   *unit.TimerConfig   `yaml:"timer,omitempty"`
	Install *unit.InstallConfig `yaml:"install,omitempty"`
}

// BuiltUnit is a validated unit ready to render, paired with the
// manifest file it came from.
type BuiltUnit struct {
	SourcePath string

	service *unit.ServiceUnit
	timer   *unit.TimerUnit
	name    string
}

// Name returns the complete unit name, including the kind suffix.
func (b *BuiltUnit) Name() string {
	return b.name
}

// Kind returns KindService or KindTimer.
func (b *BuiltUnit) Kind() string {
	if b.timer != nil {
		return KindTimer
	}
	return KindService
}

// Render returns the unit file text.
func (b *BuiltUnit) Render() string {
	if b.timer != nil {
		return b.timer.Render()
	}
	return b.service.Render()
}

// Parse decodes one manifest document from r. Decoding is strict:
// unknown keys anywhere in the document are an error, which catches
// misspelled directive names before they silently disappear from the
// rendered unit.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &Document{}, nil
		}
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads one manifest file and builds every entry in it.
func LoadFile(path string) ([]*BuiltUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &notFoundError{path: path, cause: err}
		}
		return nil, &pathError{path: path, cause: err}
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &invalidYAMLError{path: path, cause: err}
	}

	units := make([]*BuiltUnit, 0, len(doc.Units))
	seen := make(map[string]struct{}, len(doc.Units))
	for i := range doc.Units {
		entry := &doc.Units[i]
		built, err := buildEntry(entry)
		if err != nil {
			return nil, &entryError{path: path, name: entry.Name, cause: err}
		}
		if _, dup := seen[built.Name()]; dup {
			return nil, &entryError{path: path, name: built.Name(), cause: fmt.Errorf("duplicate unit name")}
		}
		seen[built.Name()] = struct{}{}
		built.SourcePath = path
		units = append(units, built)
	}
	return units, nil
}

// LoadDir loads every *.yaml and *.yml manifest directly under dir, in
// lexical file order. Subdirectories are not descended into. A unit
// name declared by two files is an error, since both would claim the
// same unit file.
func LoadDir(dir string) ([]*BuiltUnit, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &notFoundError{path: dir, cause: err}
		}
		return nil, &pathError{path: dir, cause: err}
	}
	if !info.IsDir() {
		return nil, &pathError{path: dir, cause: fmt.Errorf("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &pathError{path: dir, cause: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	var units []*BuiltUnit
	owners := make(map[string]string)
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, built := range loaded {
			if owner, dup := owners[built.Name()]; dup {
				return nil, &entryError{
					path:  path,
					name:  built.Name(),
					cause: fmt.Errorf("unit already declared in %s", owner),
				}
			}
			owners[built.Name()] = path
			units = append(units, built)
		}
	}
	return units, nil
}

func buildEntry(entry *Entry) (*BuiltUnit, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("entry name is required")
	}
	if !entryNamePattern.MatchString(entry.Name) {
		return nil, fmt.Errorf("entry name must be a valid unit name ending in .service or .timer")
	}

	install := unit.InstallConfig{}
	if entry.Install != nil {
		install = *entry.Install
	}

	switch filepath.Ext(entry.Name) {
	case ".service":
		if entry.Timer != nil {
			return nil, fmt.Errorf("timer options are not valid for a service entry")
		}
		if entry.Service == nil {
			return nil, fmt.Errorf("service entry is missing its service options")
		}
		svc, err := unit.NewServiceUnit(entry.Unit, *entry.Service, install)
		if err != nil {
			return nil, err
		}
		return &BuiltUnit{service: svc, name: entry.Name}, nil
	default:
		if entry.Service != nil {
			return nil, fmt.Errorf("service options are not valid for a timer entry")
		}
		if entry.Timer == nil {
			return nil, fmt.Errorf("timer entry is missing its timer options")
		}
		timer, err := unit.NewTimerUnit(entry.Unit, *entry.Timer, install)
		if err != nil {
			return nil, err
		}
		return &BuiltUnit{timer: timer, name: entry.Name}, nil
	}
}
