package famexplorer

import (
	"reflect"
	"testing"
)

func sampleProfiles() []Profile {
	return []Profile{
		{Name: "Alice", Handle: "alice", ProfileImageURL: aliceURL},
		{Name: "Bob", Handle: "bobby", ProfileImageURL: bobURL},
		{Name: "Carol Bright", Handle: "carolb"},
		{Name: "Dan", Handle: "DanTheMan"},
	}
}

func handles(ps []Profile) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Handle
	}
	return out
}

func TestNormalizeQuery(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"@":      "",
		"@Bob":   "bob",
		"@@bob":  "@bob",
		"BoB":    "bob",
		"a@b":    "a@b",
		" @bob ": " @bob ",
	}
	for in, want := range tests {
		if got := NormalizeQuery(in); got != want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilter_AliceBob(t *testing.T) {
	got := Filter(sampleProfiles()[:2], "b")
	if want := []string{"bobby"}; !reflect.DeepEqual(handles(got), want) {
		t.Errorf("Filter = %v, want %v", handles(got), want)
	}
}

func TestFilter_NameOrHandle(t *testing.T) {
	got := Filter(sampleProfiles(), "BRIGHT")
	if want := []string{"carolb"}; !reflect.DeepEqual(handles(got), want) {
		t.Errorf("Filter by name = %v, want %v", handles(got), want)
	}
	got = Filter(sampleProfiles(), "theman")
	if want := []string{"DanTheMan"}; !reflect.DeepEqual(handles(got), want) {
		t.Errorf("Filter by handle = %v, want %v", handles(got), want)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter(sampleProfiles(), "a")
	want := []string{"alice", "carolb", "DanTheMan"}
	if !reflect.DeepEqual(handles(got), want) {
		t.Errorf("Filter = %v, want %v", handles(got), want)
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	ps := sampleProfiles()
	for _, q := range []string{"", "@"} {
		if got := Filter(ps, q); !reflect.DeepEqual(got, ps) {
			t.Errorf("Filter(%q) = %v, want full collection", q, handles(got))
		}
	}
}

func TestFilter_AtPrefixEquivalent(t *testing.T) {
	ps := sampleProfiles()
	for _, q := range []string{"a", "bob", "DAN", "zzz", ""} {
		if !reflect.DeepEqual(Filter(ps, "@"+q), Filter(ps, q)) {
			t.Errorf("Filter(@%s) != Filter(%s)", q, q)
		}
	}
}

func TestFilter_NilCollection(t *testing.T) {
	got := Filter(nil, "bob")
	if got == nil || len(got) != 0 {
		t.Errorf("Filter(nil) = %#v, want empty non-nil slice", got)
	}
	if got := Filter(nil, ""); got == nil || len(got) != 0 {
		t.Errorf("Filter(nil, \"\") = %#v, want empty non-nil slice", got)
	}
}

func TestSearchIndex_Matches(t *testing.T) {
	ix := NewSearchIndex()
	if ix.Count() != 0 {
		t.Errorf("empty index Count = %d", ix.Count())
	}
	ix.SetProfiles(sampleProfiles())
	if ix.Count() != 4 {
		t.Errorf("Count with empty query = %d, want 4", ix.Count())
	}
	if !ix.SetQuery("@B") {
		t.Error("SetQuery should report a change")
	}
	if ix.SetQuery("@B") {
		t.Error("repeated SetQuery should not report a change")
	}
	want := []string{"bobby", "carolb"}
	if got := handles(ix.Matches()); !reflect.DeepEqual(got, want) {
		t.Errorf("Matches = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(ix.Matches(), Filter(sampleProfiles(), "@B")) {
		t.Error("index and Filter disagree")
	}
}

func TestSearchIndex_Excluded(t *testing.T) {
	ix := NewSearchIndex()
	ix.SetProfiles(sampleProfiles())
	if ix.Excluded("alice") {
		t.Error("nothing is excluded with an empty query")
	}
	ix.SetQuery("b")
	if !ix.Excluded("alice") {
		t.Error("alice should be excluded for query b")
	}
	if ix.Excluded("BOBBY") {
		t.Error("bobby matches, compared case-insensitively")
	}
}

func TestSearchIndex_SetProfilesRebuilds(t *testing.T) {
	ix := NewSearchIndex()
	ix.SetQuery("dan")
	if ix.Count() != 0 {
		t.Errorf("Count before load = %d, want 0", ix.Count())
	}
	ix.SetProfiles(sampleProfiles())
	if ix.Count() != 1 {
		t.Errorf("Count after load = %d, want 1", ix.Count())
	}
	ix.SetProfiles(nil)
	if ix.Count() != 0 || ix.Matches() == nil {
		t.Errorf("after unload Matches = %#v, want empty", ix.Matches())
	}
}

func BenchmarkFilter(b *testing.B) {
	ps := make([]Profile, 10000)
	for i := range ps {
		ps[i] = Profile{Name: "Member Number", Handle: "member_" + string(rune('a'+i%26))}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Filter(ps, "@Member_Q")
	}
}

func BenchmarkSearchIndexSetQuery(b *testing.B) {
	ps := make([]Profile, 10000)
	for i := range ps {
		ps[i] = Profile{Name: "Member Number", Handle: "member_" + string(rune('a'+i%26))}
	}
	ix := NewSearchIndex()
	ix.SetProfiles(ps)
	queries := []string{"member_q", "member_r"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.SetQuery(queries[i%2])
	}
}
