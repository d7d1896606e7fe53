package entity

import (
	"sort"
	"time"
)

// MutationKind classifies a provenance record. The classification is not
// stored; it is derived from the record's position in the plant's history.
type MutationKind string

const (
	// MutationCreate marks the earliest record of a plant's history.
	MutationCreate MutationKind = "Create"

	// MutationEdit marks every later record.
	MutationEdit MutationKind = "Edit"
)

// ProvenanceRecord is one entry in the global append-only mutation history.
// RecordID is the record's position in the provenance collection and is
// strictly increasing across all plants.
type ProvenanceRecord struct {
	RecordID  uint64 // Global, zero-based, strictly increasing.
	PlantID   uint64 // The plant the mutation applied to.
	Actor     string // Canonical identity identifier that performed the mutation.
	TxRef     string // Ledger transaction reference of the mutation write.
	Timestamp int64  // Unix seconds at which the mutation was recorded.
}

// Time returns the record timestamp as a time.Time.
func (r ProvenanceRecord) Time() time.Time {
	return time.Unix(r.Timestamp, 0)
}

// ClassifyHistory derives the mutation kind for each record of one plant's
// history. The earliest record by (timestamp, recordID) is the Create; every
// other record is an Edit. The input order is preserved; the returned slice
// is positionally aligned with records.
func ClassifyHistory(records []ProvenanceRecord) []MutationKind {
	kinds := make([]MutationKind, len(records))
	if len(records) == 0 {
		return kinds
	}

	earliest := 0
	for i := 1; i < len(records); i++ {
		if historyBefore(records[i], records[earliest]) {
			earliest = i
		}
	}

	for i := range kinds {
		kinds[i] = MutationEdit
	}
	kinds[earliest] = MutationCreate

	return kinds
}

// SortHistoryForDisplay orders records newest first by (timestamp, recordID).
func SortHistoryForDisplay(records []ProvenanceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return historyBefore(records[j], records[i])
	})
}

func historyBefore(a, b ProvenanceRecord) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}

	return a.RecordID < b.RecordID
}
