package transform

import (
	"sort"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

// applyOwnership runs exactly one of the two ownership rules: explicit
// assignment when newOwnerID is positive, auto-assignment when it is the
// 0 sentinel.
func (p *Pipeline) applyOwnership(doc *paste.Document, newOwnerID int64, summary *Summary) error {
	if newOwnerID > 0 {
		for _, e := range doc.Entities() {
			if e.HasOwner() {
				e.SetOwnerID(newOwnerID)
				summary.OwnersAssigned++
			}
		}
		summary.AssignedOwnerID = newOwnerID
		return nil
	}

	winner, err := dominantOwner(doc)
	if err != nil {
		return err
	}

	for _, e := range doc.Entities() {
		if e.HasOwner() && e.OwnerID() == 0 {
			e.SetOwnerID(winner)
			summary.OwnersAssigned++
		}
	}
	summary.AssignedOwnerID = winner

	p.logger.Debug().
		Int64("owner", winner).
		Int("reassigned", summary.OwnersAssigned).
		Msg("Auto-assigned dominant owner")
	return nil
}

// dominantOwner picks the non-zero owner id with the greatest entity
// count. On count ties the LAST maximal element wins, after sorting the
// (owner, count) pairs ascending by count with first-encounter order as
// the stable secondary order. The cleaned files' consumers rely on this
// exact selection, so it is kept as-is.
func dominantOwner(doc *paste.Document) (int64, error) {
	anyOwnerField := false
	counts := make(map[int64]int)
	var order []int64
	for _, e := range doc.Entities() {
		if !e.HasOwner() {
			continue
		}
		anyOwnerField = true
		id := e.OwnerID()
		if id == 0 {
			continue
		}
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	if !anyOwnerField {
		return 0, errors.New(errors.ErrInputNoOwnedEntity,
			"no entity carries an ownerId field; cannot infer an owner, pass --owner-id explicitly")
	}
	if len(order) == 0 {
		return 0, errors.New(errors.ErrInputNoOwnedEntity,
			"every owned entity has owner 0; cannot infer an owner, pass --owner-id explicitly")
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] < counts[order[j]]
	})
	return order[len(order)-1], nil
}
