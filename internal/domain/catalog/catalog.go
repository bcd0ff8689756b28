// Package catalog matches extracted colors against the externally owned
// reference dye catalog. Entries are read-only; this package never creates,
// mutates or deletes them.
package catalog

import (
	domaincolor "dyelens/internal/domain/color"
)

// Entry is one reference dye record.
type Entry struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Hex      string `yaml:"hex" json:"hex"`
	Category string `yaml:"category" json:"category"`
}

// Lookup is the port onto the external nearest-neighbor catalog service:
// return the entry closest to target that is not in the exclusion set.
type Lookup interface {
	Nearest(target domaincolor.RGB, exclude map[string]struct{}) (Entry, bool)
	ByID(id string) (Entry, bool)
}
