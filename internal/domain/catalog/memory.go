package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/platform/errors"
)

// Memory is an in-process Lookup over a fixed entry list, loaded once at
// startup and never mutated afterwards.
type Memory struct {
	entries []Entry
	colors  []domaincolor.RGB
	byID    map[string]int
}

func NewMemory(entries []Entry) (*Memory, error) {
	const op = "catalog.new"

	if len(entries) == 0 {
		return nil, errors.New(errors.KindConfig, op, "catalog has no entries")
	}

	m := &Memory{
		entries: entries,
		colors:  make([]domaincolor.RGB, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, errors.New(errors.KindConfig, op, fmt.Sprintf("entry %d has no id", i))
		}
		if _, dup := m.byID[e.ID]; dup {
			return nil, errors.New(errors.KindConfig, op, fmt.Sprintf("duplicate entry id %q", e.ID))
		}
		c, err := domaincolor.ParseHex(e.Hex)
		if err != nil {
			return nil, errors.Wrap(errors.KindConfig, op,
				fmt.Sprintf("entry %q has invalid hex %q", e.ID, e.Hex), err)
		}
		m.colors[i] = c
		m.byID[e.ID] = i
	}
	return m, nil
}

// LoadFile reads a YAML dye list.
func LoadFile(path string) (*Memory, error) {
	const op = "catalog.load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.KindConfig, op, "read catalog file", err)
	}

	var doc struct {
		Dyes []Entry `yaml:"dyes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.KindConfig, op, "parse catalog file", err)
	}
	return NewMemory(doc.Dyes)
}

func (m *Memory) Nearest(target domaincolor.RGB, exclude map[string]struct{}) (Entry, bool) {
	best := -1
	bestDistance := 0.0
	for i, e := range m.entries {
		if _, skip := exclude[e.ID]; skip {
			continue
		}
		d := domaincolor.Distance(target, m.colors[i])
		if best == -1 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best == -1 {
		return Entry{}, false
	}
	return m.entries[best], true
}

func (m *Memory) ByID(id string) (Entry, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Len reports the catalog size.
func (m *Memory) Len() int {
	return len(m.entries)
}
