// Package settings loads and validates the named filter collection the
// cleaning pipeline runs against.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/logging"
)

// SupportedVersion is the settings document format this engine reads.
const SupportedVersion = 1

// DefaultFileName is the settings file written by init-settings.
const DefaultFileName = "cpcleaner.settings.json"

// Filter is one named rule set. The three pattern lists are independent;
// any of them may be empty.
type Filter struct {
	ID                      string   `koanf:"filter-id" json:"filter-id"`
	RemovedPrefabs          []string `koanf:"removed-prefabs" json:"removed-prefabs"`
	SwitchedOffPrefabs      []string `koanf:"switchedoff-prefabs" json:"switchedoff-prefabs"`
	RemovedItemsFromPrefabs []string `koanf:"removed-items-from-prefabs" json:"removed-items-from-prefabs"`
}

// Store is a validated, named collection of filters.
type Store struct {
	Version int      `koanf:"version" json:"version"`
	Filters []Filter `koanf:"filters" json:"filters"`
}

// DefaultPath returns the settings path next to the running executable.
// Callers normally take this through pkg/config, which allows overriding
// it, rather than calling it directly.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot locate the running executable")
	}
	return filepath.Join(filepath.Dir(exe), DefaultFileName), nil
}

// Load reads, parses, and validates the settings document at path.
func Load(path string) (*Store, error) {
	logger := logging.GetLogger("settings")

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s is not readable", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "settings file %s is not valid JSON", path)
	}

	var store Store
	if err := k.Unmarshal("", &store); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "settings file %s has an unexpected shape", path)
	}

	if err := store.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Int("filters", len(store.Filters)).Msg("Settings loaded")
	return &store, nil
}

// Validate applies the semantic checks that schema validity cannot
// express: version match, non-empty collection, pairwise-unique ids.
func (s *Store) Validate() error {
	if s.Version != SupportedVersion {
		return errors.Newf(errors.ErrConfigVersion,
			"settings version %d is not supported (expected %d)", s.Version, SupportedVersion)
	}
	if len(s.Filters) == 0 {
		return errors.New(errors.ErrConfigEmpty, "settings hold no filters")
	}

	seen := make(map[string]int, len(s.Filters))
	var duplicates []string
	for _, f := range s.Filters {
		seen[f.ID]++
	}
	for _, f := range s.Filters {
		if seen[f.ID] > 1 {
			seen[f.ID] = -seen[f.ID] // report each id once
			duplicates = append(duplicates, f.ID)
		}
	}
	if len(duplicates) > 0 {
		return errors.Newf(errors.ErrConfigDuplicateID,
			"duplicate filter ids: %s", strings.Join(duplicates, ", "))
	}
	return nil
}

// IDs returns the filter ids in document order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.Filters))
	for i, f := range s.Filters {
		ids[i] = f.ID
	}
	return ids
}

// Select resolves which filter a run should use. An empty id picks the
// only filter when there is exactly one; with several filters the caller
// has to choose. Comparison is case-sensitive.
func (s *Store) Select(id string) (*Filter, error) {
	if id == "" {
		if len(s.Filters) == 1 {
			return &s.Filters[0], nil
		}
		return nil, errors.Newf(errors.ErrUsageFilterAmbiguous,
			"several filters are configured, pick one with --filter-id; available: %s",
			strings.Join(s.IDs(), ", "))
	}
	for i := range s.Filters {
		if s.Filters[i].ID == id {
			return &s.Filters[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrUsageFilterUnknown,
		"no filter %q (ids are case-sensitive); available: %s",
		id, strings.Join(s.IDs(), ", "))
}

// String implements fmt.Stringer for debug logging.
func (f *Filter) String() string {
	return fmt.Sprintf("%s (remove=%d, switch-off=%d, strip=%d)",
		f.ID, len(f.RemovedPrefabs), len(f.SwitchedOffPrefabs), len(f.RemovedItemsFromPrefabs))
}
