package perception

import (
	"testing"

	"github.com/milk9111/otterblade/common"
)

func TestMemoryPruning(t *testing.T) {
	m := NewMemory(3.0)
	m.Remember("player", common.Vec2{X: 10, Y: 20})

	if _, ok := m.Get("player"); !ok {
		t.Fatalf("expected record immediately after Remember")
	}

	m.Update(3.01)
	if _, ok := m.Get("player"); ok {
		t.Fatalf("expected record pruned after span elapsed")
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty memory, got %d records", m.Len())
	}
}

func TestMemoryRefreshResetsElapsed(t *testing.T) {
	m := NewMemory(3.0)
	m.Remember("player", common.Vec2{X: 1})
	m.Update(2.5)
	m.Remember("player", common.Vec2{X: 2})
	m.Update(2.5)

	rec, ok := m.Get("player")
	if !ok {
		t.Fatalf("expected refreshed record to survive")
	}
	if rec.TimesSpotted != 2 {
		t.Fatalf("expected 2 spots, got %d", rec.TimesSpotted)
	}
	if rec.LastPosition.X != 2 {
		t.Fatalf("expected refreshed position, got %v", rec.LastPosition)
	}
}

func TestMostThreateningPrefersRecency(t *testing.T) {
	m := NewMemory(30)

	m.Remember("old", common.Vec2{X: 1})
	m.SetThreat("old", 1.0)
	m.Update(5)

	m.Remember("fresh", common.Vec2{X: 2})
	m.SetThreat("fresh", 1.0)

	rec, ok := m.MostThreatening()
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Entity != "fresh" {
		t.Fatalf("expected fresh record to win, got %q", rec.Entity)
	}
}

func TestMostThreateningEmpty(t *testing.T) {
	m := NewMemory(3)
	if _, ok := m.MostThreatening(); ok {
		t.Fatalf("expected no record from empty memory")
	}
}
