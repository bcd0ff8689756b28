package catalog

import (
	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/domain/palette"
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// maxAttempts bounds the skip-and-retry loop when candidates keep landing
// in the excluded category.
const maxAttempts = 15

// Match pairs a catalog entry with its kernel-computed distance to the
// target color.
type Match struct {
	Entry    Entry
	Distance float64
}

// PaletteMatch is one extracted color matched against the catalog.
type PaletteMatch struct {
	Extracted domaincolor.RGB
	Dominance float64
	Entry     Entry
	Distance  float64
}

// Matcher resolves extracted colors to catalog entries. The catalog client
// is injected so tests can run against a fake.
type Matcher struct {
	lookup           Lookup
	excludedCategory string
	logger           *logging.Logger
}

func NewMatcher(lookup Lookup, excludedCategory string, logger *logging.Logger) *Matcher {
	return &Matcher{
		lookup:           lookup,
		excludedCategory: excludedCategory,
		logger:           logger,
	}
}

// MatchOne finds the closest catalog entry to target that is not already
// excluded and not in the suppressed category. "No match after the attempt
// budget" is an expected outcome, not an error.
func (m *Matcher) MatchOne(target domaincolor.RGB, excludeIDs []string) (Match, bool) {
	exclude := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}
	return m.matchNext(target, exclude)
}

func (m *Matcher) matchNext(target domaincolor.RGB, exclude map[string]struct{}) (Match, bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		entry, ok := m.lookup.Nearest(target, exclude)
		if !ok {
			return Match{}, false
		}
		if m.excludedCategory != "" && entry.Category == m.excludedCategory {
			exclude[entry.ID] = struct{}{}
			continue
		}

		// Recompute the distance with the kernel rather than trusting the
		// lookup, so the two subsystems cannot silently disagree.
		entryColor, err := domaincolor.ParseHex(entry.Hex)
		if err != nil {
			m.logger.Warn("catalog entry %q carries invalid hex %q, skipping", entry.ID, entry.Hex)
			exclude[entry.ID] = struct{}{}
			continue
		}
		return Match{Entry: entry, Distance: domaincolor.Distance(target, entryColor)}, true
	}

	m.logger.Debug("catalog match attempts exhausted for %s", target.Hex())
	return Match{}, false
}

// MatchMany finds up to count distinct entries closest to target. Each
// accepted match joins the exclusion set before the next slot, so no entry
// repeats. A short catalog yields a short result, never an error.
func (m *Matcher) MatchMany(target domaincolor.RGB, count int) []Match {
	exclude := make(map[string]struct{})
	matches := make([]Match, 0, count)
	for len(matches) < count {
		match, ok := m.matchNext(target, exclude)
		if !ok {
			break
		}
		matches = append(matches, match)
		exclude[match.Entry.ID] = struct{}{}
	}
	return matches
}

// MatchPalette matches each extracted color against the catalog, keeping
// the dominance weights and diversifying the result: once an entry is
// chosen for one color it is excluded for the rest.
func (m *Matcher) MatchPalette(colors []palette.Color) ([]PaletteMatch, error) {
	const op = "match_palette"

	if len(colors) == 0 {
		return nil, errors.New(errors.KindNoColors, op, "no extracted colors to match")
	}

	exclude := make(map[string]struct{})
	matches := make([]PaletteMatch, 0, len(colors))
	for _, c := range colors {
		match, ok := m.matchNext(c.RGB, exclude)
		if !ok {
			continue
		}
		exclude[match.Entry.ID] = struct{}{}
		matches = append(matches, PaletteMatch{
			Extracted: c.RGB,
			Dominance: c.Dominance,
			Entry:     match.Entry,
			Distance:  match.Distance,
		})
	}

	if len(matches) == 0 {
		return nil, errors.New(errors.KindNoMatch, op, "no catalog entry matched any extracted color")
	}
	return matches, nil
}
