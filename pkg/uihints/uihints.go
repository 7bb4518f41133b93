// Package uihints loads YAML hint overlays and applies them to field
// descriptors before dispatch. Overlays let hosts steer widget selection
// (textarea, slider, select variants, steps, delimiters) without touching
// the schema the descriptors came from.
package uihints

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
)

// document mirrors the overlay file layout:
//
//	records:
//	  Article:
//	    fields:
//	      content: { input: textarea }
//	      rating:  { input: slider, step: 0.5 }
type document struct {
	Records map[string]recordHints `yaml:"records"`
}

type recordHints struct {
	Fields map[string]map[string]any `yaml:"fields"`
}

// Store holds the merged hint overlays keyed by record name.
type Store struct {
	records map[string]map[string]field.Hints
}

// LoadFS reads every .yaml/.yml document under the file system root and
// merges them into a Store. Later files win per field.
func LoadFS(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, fmt.Errorf("uihints: file system is required")
	}

	store := &Store{records: make(map[string]map[string]field.Hints)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("uihints: read %s: %w", p, err)
		}

		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("uihints: parse %s: %w", p, err)
		}
		store.merge(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) merge(doc document) {
	for record, hints := range doc.Records {
		record = strings.TrimSpace(record)
		if record == "" || len(hints.Fields) == 0 {
			continue
		}
		target, ok := s.records[record]
		if !ok {
			target = make(map[string]field.Hints)
			s.records[record] = target
		}
		for name, raw := range hints.Fields {
			name = strings.TrimSpace(name)
			if name == "" || len(raw) == 0 {
				continue
			}
			merged, ok := target[name]
			if !ok {
				merged = make(field.Hints, len(raw))
				target[name] = merged
			}
			for key, value := range raw {
				merged[key] = value
			}
		}
	}
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.records) == 0
}

// Apply decorates the descriptors of a record with the stored hints and
// returns the decorated copies. Hints already present on a descriptor win
// over overlay values; overlays only fill gaps.
func (s *Store) Apply(record string, fields []field.Descriptor) []field.Descriptor {
	if s.Empty() || len(fields) == 0 {
		return fields
	}
	overlay, ok := s.records[record]
	if !ok {
		return fields
	}

	out := make([]field.Descriptor, len(fields))
	for i, d := range fields {
		if extra, ok := overlay[d.Name]; ok {
			d.Hints = mergeHints(d.Hints, extra)
		}
		out[i] = d
	}
	return out
}

func mergeHints(existing field.Hints, overlay field.Hints) field.Hints {
	merged := make(field.Hints, len(existing)+len(overlay))
	for key, value := range overlay {
		merged[key] = value
	}
	for key, value := range existing {
		merged[key] = value
	}
	return merged
}
