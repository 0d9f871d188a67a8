// Package transform applies a filter rule set, the ownership policy, and
// the lock policy to a parsed document, in that fixed order.
package transform

import (
	"github.com/rs/zerolog"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/logging"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/matching"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

// Pipeline runs transformation requests against documents. A single
// pipeline may be reused across the files of a batch; it keeps no
// per-document state.
type Pipeline struct {
	logger zerolog.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		logger: logging.GetLogger("transform"),
	}
}

// Apply mutates doc in place per the request and returns the change
// summary. On error the document must be considered corrupt and
// discarded; nothing is written here either way.
func (p *Pipeline) Apply(doc *paste.Document, req *Request) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	summary := &Summary{}

	p.applyRemove(doc, req.Filter.RemovedPrefabs, summary)
	p.applySwitchOff(doc, req.Filter.SwitchedOffPrefabs, summary)
	p.applyStrip(doc, req.StripPatterns(), summary)

	if err := p.applyOwnership(doc, req.NewOwnerID, summary); err != nil {
		return nil, err
	}

	p.applyLocks(doc, req, summary)

	p.logger.Info().
		Int("removed", summary.EntitiesRemoved).
		Int("switchedOff", summary.EntitiesSwitched).
		Int("stripped", summary.EntitiesStripped).
		Int("ownersAssigned", summary.OwnersAssigned).
		Int("lockCodesSet", summary.LockCodesSet).
		Int("locksRemoved", summary.LocksRemoved).
		Msg("Transformation applied")

	return summary, nil
}

// applyRemove deletes matching entities. The retained index set is
// computed first and the collection rebuilt afterwards, so survivors
// keep their relative order.
func (p *Pipeline) applyRemove(doc *paste.Document, patterns []string, summary *Summary) {
	if len(patterns) == 0 {
		return
	}
	retained := make([]int, 0, doc.Len())
	for i, e := range doc.Entities() {
		if matching.Matches(e.TypeID(), patterns) {
			summary.EntitiesRemoved++
			continue
		}
		retained = append(retained, i)
	}
	if summary.EntitiesRemoved > 0 {
		doc.Retain(retained)
	}
}

// applySwitchOff drops the on-flag of matching entities that are on.
func (p *Pipeline) applySwitchOff(doc *paste.Document, patterns []string, summary *Summary) {
	if len(patterns) == 0 {
		return
	}
	for _, e := range doc.Entities() {
		if e.IsOn() && matching.Matches(e.TypeID(), patterns) {
			e.SwitchOff()
			summary.EntitiesSwitched++
		}
	}
}

// applyStrip empties the item list of matching entities.
func (p *Pipeline) applyStrip(doc *paste.Document, patterns []string, summary *Summary) {
	if len(patterns) == 0 {
		return
	}
	for _, e := range doc.Entities() {
		if e.ItemCount() > 0 && matching.Matches(e.TypeID(), patterns) {
			summary.ItemsRemoved += e.ItemCount()
			e.StripItems()
			summary.EntitiesStripped++
		}
	}
}
