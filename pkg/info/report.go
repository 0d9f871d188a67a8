// Package info builds the read-only statistics report of a document:
// ownership, lock, and entity-type distributions.
package info

import (
	"sort"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

// OwnerCount is one owner and the number of entities it owns. Owner 0
// groups the unowned-but-ownable entities.
type OwnerCount struct {
	OwnerID int64 `json:"ownerId"`
	Count   int   `json:"count"`
}

// CodeCount is one combination-lock code and its occurrence count.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// TypeCount is one entity type and its occurrence count.
type TypeCount struct {
	TypeID string `json:"typeId"`
	Count  int    `json:"count"`
}

// Report is the full statistics view of one document.
type Report struct {
	FormatVersion string       `json:"formatVersion"`
	TotalEntities int          `json:"totalEntities"`
	Owners        []OwnerCount `json:"owners"`
	KeyLocks      int          `json:"keyLocks"`
	CodeLocks     []CodeCount  `json:"codeLocks"`
	Types         []TypeCount  `json:"types"`
}

// Build computes the report. Owners are ordered by descending entity
// count, combination-lock codes by descending count, entity types
// ascending by type id; all ties resolve ascending by key so the output
// is reproducible.
func Build(doc *paste.Document) *Report {
	report := &Report{
		FormatVersion: doc.FormatVersion(),
		TotalEntities: doc.Len(),
	}

	owners := make(map[int64]int)
	codes := make(map[string]int)
	types := make(map[string]int)

	for _, e := range doc.Entities() {
		types[e.TypeID()]++
		if e.HasOwner() {
			owners[e.OwnerID()]++
		}
		if lock := e.Lock(); lock != nil {
			if lock.HasCode() {
				codes[lock.Code()]++
			} else {
				report.KeyLocks++
			}
		}
	}

	for id, count := range owners {
		report.Owners = append(report.Owners, OwnerCount{OwnerID: id, Count: count})
	}
	sort.Slice(report.Owners, func(i, j int) bool {
		if report.Owners[i].Count != report.Owners[j].Count {
			return report.Owners[i].Count > report.Owners[j].Count
		}
		return report.Owners[i].OwnerID < report.Owners[j].OwnerID
	})

	for code, count := range codes {
		report.CodeLocks = append(report.CodeLocks, CodeCount{Code: code, Count: count})
	}
	sort.Slice(report.CodeLocks, func(i, j int) bool {
		if report.CodeLocks[i].Count != report.CodeLocks[j].Count {
			return report.CodeLocks[i].Count > report.CodeLocks[j].Count
		}
		return report.CodeLocks[i].Code < report.CodeLocks[j].Code
	})

	for typeID, count := range types {
		report.Types = append(report.Types, TypeCount{TypeID: typeID, Count: count})
	}
	sort.Slice(report.Types, func(i, j int) bool {
		return report.Types[i].TypeID < report.Types[j].TypeID
	})

	return report
}
