package catalog

import (
	"testing"

	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/domain/palette"
	"dyelens/internal/platform/errors"
	platformtest "dyelens/internal/platform/testing"
)

func testMatcher(t *testing.T, entries []Entry) *Matcher {
	t.Helper()

	m, err := NewMemory(entries)
	if err != nil {
		t.Fatalf("NewMemory error: %v", err)
	}
	return NewMatcher(m, "Pearlescent", platformtest.SetupTestLogger(t))
}

func TestMatcher_MatchOne_SkipsExcludedCategory(t *testing.T) {
	m := testMatcher(t, testEntries())

	// Near-white input: the raw nearest entry is pearl white, which sits in
	// the suppressed category, so the plain white must win instead.
	target := domaincolor.RGB{R: 0xF0, G: 0xEB, B: 0xE3}
	match, ok := m.MatchOne(target, nil)
	if !ok {
		t.Fatal("MatchOne found nothing")
	}
	if match.Entry.ID != "snow-white" {
		t.Errorf("match = %q, expected snow-white", match.Entry.ID)
	}
	if match.Distance <= 0 {
		t.Errorf("distance = %v, expected > 0", match.Distance)
	}
}

func TestMatcher_MatchOne_RespectsCallerExclusions(t *testing.T) {
	m := testMatcher(t, testEntries())

	target := domaincolor.RGB{R: 0xB7, G: 0x41, B: 0x0E}
	match, ok := m.MatchOne(target, []string{"rust-red"})
	if !ok {
		t.Fatal("MatchOne found nothing")
	}
	if match.Entry.ID == "rust-red" {
		t.Error("caller-excluded entry was returned")
	}
}

func TestMatcher_MatchMany_DistinctEntries(t *testing.T) {
	m := testMatcher(t, testEntries())

	matches := m.MatchMany(domaincolor.RGB{R: 0x80, G: 0x80, B: 0x80}, 3)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, expected 3", len(matches))
	}
	seen := make(map[string]struct{})
	for _, match := range matches {
		if _, dup := seen[match.Entry.ID]; dup {
			t.Errorf("entry %q returned twice", match.Entry.ID)
		}
		seen[match.Entry.ID] = struct{}{}
		if match.Entry.Category == "Pearlescent" {
			t.Errorf("suppressed category leaked: %q", match.Entry.ID)
		}
	}

	// Distances come back in non-decreasing order since each round picks
	// the nearest remaining entry.
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("distances out of order: %v then %v", matches[i-1].Distance, matches[i].Distance)
		}
	}
}

func TestMatcher_MatchMany_ShortCatalog(t *testing.T) {
	m := testMatcher(t, testEntries())

	// Five entries, one suppressed: asking for ten yields four.
	matches := m.MatchMany(domaincolor.RGB{}, 10)
	if len(matches) != 4 {
		t.Errorf("got %d matches, expected 4", len(matches))
	}
}

func TestMatcher_MatchPalette(t *testing.T) {
	m := testMatcher(t, testEntries())

	colors := []palette.Color{
		{RGB: domaincolor.RGB{R: 0xB0, G: 0x45, B: 0x12}, Dominance: 61.5},
		{RGB: domaincolor.RGB{R: 0x30, G: 0x52, B: 0x68}, Dominance: 38.5},
	}
	matches, err := m.MatchPalette(colors)
	if err != nil {
		t.Fatalf("MatchPalette error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, expected 2", len(matches))
	}
	if matches[0].Entry.ID != "rust-red" || matches[1].Entry.ID != "dragoon-blue" {
		t.Errorf("matches = %q, %q", matches[0].Entry.ID, matches[1].Entry.ID)
	}
	if matches[0].Dominance != 61.5 {
		t.Errorf("dominance = %v, expected 61.5", matches[0].Dominance)
	}
	if matches[0].Entry.ID == matches[1].Entry.ID {
		t.Error("palette matches must be distinct entries")
	}
}

func TestMatcher_MatchPalette_Errors(t *testing.T) {
	m := testMatcher(t, testEntries())

	_, err := m.MatchPalette(nil)
	if !errors.IsKind(err, errors.KindNoColors) {
		t.Errorf("kind = %v, expected no_colors", errors.KindOf(err))
	}

	// A catalog holding only the suppressed category can match nothing.
	pearlOnly := testMatcher(t, []Entry{
		{ID: "pearl-white", Name: "Pearl White", Hex: "#f1ece4", Category: "Pearlescent"},
	})
	_, err = pearlOnly.MatchPalette([]palette.Color{{RGB: domaincolor.RGB{R: 0xFF, G: 0xFF, B: 0xFF}}})
	if !errors.IsKind(err, errors.KindNoMatch) {
		t.Errorf("kind = %v, expected no_match (err: %v)", errors.KindOf(err), err)
	}
}
