// Package source loads explorer data (profiles and the atlas) from files and
// a SQLite store, and watches those files for changes.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/famexplorer"
)

// DecodeProfiles reads a profile collection. Both a bare JSON array and an
// object with a "profiles" array are accepted.
func DecodeProfiles(r io.Reader) ([]famexplorer.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty profile data")
	}

	var profiles []famexplorer.Profile
	if data[0] == '[' {
		if err := json.Unmarshal(data, &profiles); err != nil {
			return nil, fmt.Errorf("decode profiles: %w", err)
		}
	} else {
		var wrapped struct {
			Profiles []famexplorer.Profile `json:"profiles"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode profiles: %w", err)
		}
		profiles = wrapped.Profiles
	}
	if profiles == nil {
		profiles = []famexplorer.Profile{}
	}
	return profiles, nil
}

// LoadProfiles reads a JSON profile file.
func LoadProfiles(path string) ([]famexplorer.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	profiles, err := DecodeProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}
