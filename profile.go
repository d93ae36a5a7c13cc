package famexplorer

// Link is an outbound link listed on a profile.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Profile is one explorer member. Profiles are supplied already decoded and
// are never mutated by the explorer.
type Profile struct {
	// Handle is case-sensitive as stored but compared case-insensitively.
	Handle           string `json:"handle"`
	Name             string `json:"name"`
	ProfileImageURL  string `json:"profileImageUrl"`
	FollowersCount   int    `json:"followersCount"`
	FamFollowerCount int    `json:"famFollowerCount"`
	Bio              string `json:"bio"`
	Links            []Link `json:"links"`
	ProfileURL       string `json:"profileUrl"`
}
