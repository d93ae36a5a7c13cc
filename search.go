package famexplorer

import "strings"

// NormalizeQuery strips one leading "@" and lower-cases the rest.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimPrefix(query, "@"))
}

// Filter returns the profiles whose name or handle contains the normalized
// query, case-insensitively, in source order. An empty normalized query
// returns the whole collection. A nil collection yields an empty slice.
func Filter(profiles []Profile, query string) []Profile {
	q := NormalizeQuery(query)
	if profiles == nil {
		return []Profile{}
	}
	if q == "" {
		return profiles
	}
	out := make([]Profile, 0, len(profiles)/4)
	for _, p := range profiles {
		if matches(strings.ToLower(p.Name), strings.ToLower(p.Handle), q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(lowerName, lowerHandle, q string) bool {
	return strings.Contains(lowerName, q) || strings.Contains(lowerHandle, q)
}

// SearchIndex keeps the current MatchSet for a profile collection and a
// query. Lower-cased names and handles are computed once per collection, and
// the match set is rebuilt only when the query or collection changes.
type SearchIndex struct {
	profiles []Profile
	lower    [][2]string // lower-cased {name, handle}, parallel to profiles
	query    string
	norm     string
	matches  []Profile
	included map[string]struct{} // lower-cased handles in the match set
}

// NewSearchIndex creates an index with no profiles and an empty query.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{matches: []Profile{}}
}

// SetProfiles replaces the collection. A nil collection means "not loaded".
func (ix *SearchIndex) SetProfiles(profiles []Profile) {
	ix.profiles = profiles
	ix.lower = ix.lower[:0]
	for _, p := range profiles {
		ix.lower = append(ix.lower, [2]string{strings.ToLower(p.Name), strings.ToLower(p.Handle)})
	}
	ix.rebuild()
}

// SetQuery sets the raw search text. It reports whether the query changed.
func (ix *SearchIndex) SetQuery(query string) bool {
	if query == ix.query {
		return false
	}
	ix.query = query
	norm := NormalizeQuery(query)
	if norm != ix.norm {
		ix.norm = norm
		ix.rebuild()
	}
	return true
}

// Query returns the raw query text.
func (ix *SearchIndex) Query() string { return ix.query }

// Profiles returns the full collection (nil while not loaded).
func (ix *SearchIndex) Profiles() []Profile { return ix.profiles }

// Matches returns the current MatchSet. The returned slice MUST NOT be mutated.
func (ix *SearchIndex) Matches() []Profile { return ix.matches }

// Count returns the size of the MatchSet.
func (ix *SearchIndex) Count() int { return len(ix.matches) }

// Excluded reports whether the profile with the given handle is outside the
// current MatchSet. Tiles with excluded profiles are de-emphasized.
func (ix *SearchIndex) Excluded(handle string) bool {
	if ix.norm == "" {
		return false
	}
	_, ok := ix.included[strings.ToLower(handle)]
	return !ok
}

func (ix *SearchIndex) rebuild() {
	if ix.profiles == nil {
		ix.matches = []Profile{}
		ix.included = nil
		return
	}
	if ix.norm == "" {
		ix.matches = ix.profiles
		ix.included = nil
		return
	}
	ix.matches = make([]Profile, 0, len(ix.profiles)/4)
	ix.included = make(map[string]struct{})
	for i, p := range ix.profiles {
		if matches(ix.lower[i][0], ix.lower[i][1], ix.norm) {
			ix.matches = append(ix.matches, p)
			ix.included[ix.lower[i][1]] = struct{}{}
		}
	}
}
