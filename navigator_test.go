package famexplorer

import "testing"

func TestNavigatorAdvance(t *testing.T) {
	ms := sampleProfiles()[:3]
	var n Navigator
	p, ok := n.Advance(ms)
	if !ok || n.Index() != 1 || p.Handle != "bobby" {
		t.Fatalf("Advance = %s, %v, index %d; want bobby, true, 1", p.Handle, ok, n.Index())
	}
	p, _ = n.Advance(ms)
	if n.Index() != 2 || p.Handle != "carolb" {
		t.Errorf("index = %d (%s), want 2 (carolb)", n.Index(), p.Handle)
	}
}

func TestNavigatorWrapsFromLast(t *testing.T) {
	ms := sampleProfiles()
	n := Navigator{index: len(ms) - 1}
	p, ok := n.Advance(ms)
	if !ok || n.Index() != 0 || p.Handle != "alice" {
		t.Errorf("Advance from last = %s, index %d; want alice, 0", p.Handle, n.Index())
	}
}

func TestNavigatorSingleMatch(t *testing.T) {
	ms := Filter(sampleProfiles()[:2], "b")
	var n Navigator
	for i := 0; i < 2; i++ {
		p, ok := n.Advance(ms)
		if !ok || n.Index() != 0 || p.Handle != "bobby" {
			t.Errorf("advance %d: %s, index %d; want bobby, 0", i, p.Handle, n.Index())
		}
	}
}

func TestNavigatorEmptyIsNoOp(t *testing.T) {
	n := Navigator{index: 3}
	if _, ok := n.Advance(nil); ok {
		t.Error("Advance on empty match set should be rejected")
	}
	if n.Index() != 3 {
		t.Errorf("index = %d, want unchanged 3", n.Index())
	}
}

func TestNavigatorIndexOutOfRangeWraps(t *testing.T) {
	// A shrunken match set must not leave the index past its end.
	n := Navigator{index: 10}
	_, ok := n.Advance(sampleProfiles())
	if !ok || n.Index() != 0 {
		t.Errorf("index = %d, want 0", n.Index())
	}
}

func TestNavigatorLabel(t *testing.T) {
	n := Navigator{index: 2}
	cur, total := n.Label(7)
	if cur != 3 || total != 7 {
		t.Errorf("Label = %d of %d, want 3 of 7", cur, total)
	}
	n.Reset()
	if cur, _ := n.Label(7); cur != 1 {
		t.Errorf("after Reset label = %d, want 1", cur)
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		query string
		count int
		want  bool
	}{
		{"", 10, false},
		{"bob", 0, false},
		{"bob", 1, true},
		{"@", 4, true},
	}
	for _, tt := range tests {
		if got := CanAdvance(tt.query, tt.count); got != tt.want {
			t.Errorf("CanAdvance(%q, %d) = %v, want %v", tt.query, tt.count, got, tt.want)
		}
	}
}
