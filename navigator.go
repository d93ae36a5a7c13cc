package famexplorer

// Navigator tracks the current match index and cycles through a MatchSet on
// repeated submits.
type Navigator struct {
	index int
}

// Index returns the current match index. It is only meaningful while the
// MatchSet is non-empty.
func (n *Navigator) Index() int { return n.index }

// Reset moves back to the first match. Called whenever the query changes.
func (n *Navigator) Reset() { n.index = 0 }

// Advance moves to the next match, wrapping from the last index to 0, and
// returns the profile at the new index. An empty MatchSet leaves the index
// untouched and returns false.
func (n *Navigator) Advance(matches []Profile) (Profile, bool) {
	if len(matches) == 0 {
		return Profile{}, false
	}
	if n.index >= len(matches)-1 {
		n.index = 0
	} else {
		n.index++
	}
	return matches[n.index], true
}

// Label returns the values for the "M of N" affordance.
func (n *Navigator) Label(count int) (current, total int) {
	return n.index + 1, count
}

// CanAdvance mirrors the submit affordance's enabled state: the query must be
// non-empty and have at least one match.
func CanAdvance(query string, count int) bool {
	return query != "" && count > 0
}
