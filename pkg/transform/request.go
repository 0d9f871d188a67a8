package transform

import (
	"regexp"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/settings"
)

var lockCodePattern = regexp.MustCompile(`^[0-9]{4}$`)

// Request carries the parameters of one pipeline run.
type Request struct {
	// Filter is the rule set to apply. Required.
	Filter *settings.Filter

	// ExtraStripPatterns are strip-contents patterns added on top of the
	// filter's own list for this run only.
	ExtraStripPatterns []string

	// NewOwnerID selects the ownership policy: 0 auto-assigns the most
	// frequent owner to unowned entities, a positive id is assigned to
	// every owned entity.
	NewOwnerID int64

	// LockCode, when non-empty, is written into every combination lock.
	// Must be exactly four decimal digits.
	LockCode string

	// RemoveAllLocks deletes every lock sub-record. Takes precedence
	// over LockCode.
	RemoveAllLocks bool
}

// Validate rejects requests that could never run.
func (r *Request) Validate() error {
	if r.Filter == nil {
		return errors.New(errors.ErrInternal, "request carries no filter")
	}
	if r.NewOwnerID < 0 {
		return errors.Newf(errors.ErrUsageInvalidFlag, "owner id must not be negative, got %d", r.NewOwnerID)
	}
	if r.LockCode != "" && !lockCodePattern.MatchString(r.LockCode) {
		return errors.Newf(errors.ErrUsageBadLockCode, "invalid lock code %q", r.LockCode)
	}
	return nil
}

// StripPatterns returns the effective strip-contents pattern list.
func (r *Request) StripPatterns() []string {
	if len(r.ExtraStripPatterns) == 0 {
		return r.Filter.RemovedItemsFromPrefabs
	}
	merged := make([]string, 0, len(r.Filter.RemovedItemsFromPrefabs)+len(r.ExtraStripPatterns))
	merged = append(merged, r.Filter.RemovedItemsFromPrefabs...)
	merged = append(merged, r.ExtraStripPatterns...)
	return merged
}

// Summary reports what one pipeline run changed in a document.
type Summary struct {
	EntitiesRemoved  int
	EntitiesSwitched int
	EntitiesStripped int
	ItemsRemoved     int
	OwnersAssigned   int
	AssignedOwnerID  int64
	LockCodesSet     int
	LocksRemoved     int
	LockCodeSkipped  bool
}

// Empty reports whether the run changed nothing.
func (s *Summary) Empty() bool {
	return s.EntitiesRemoved == 0 && s.EntitiesSwitched == 0 &&
		s.EntitiesStripped == 0 && s.OwnersAssigned == 0 &&
		s.LockCodesSet == 0 && s.LocksRemoved == 0
}
