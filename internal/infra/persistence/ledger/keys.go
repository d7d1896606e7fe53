// Package ledger implements the domain repositories on top of any
// repository.LedgerStore. All records are stored as JSON documents; keyed
// entries hold current state and ordered collections assign identifiers.
package ledger

import "strconv"

// Collection names and key prefixes of the ledger data layout.
//
//	identity/<id>            current identity document
//	plants                   creation markers; the append index is the plant id
//	plant/<id>               current plant document
//	plant/<id>/ratings       rating sheet document
//	plant/<id>/likes         like sheet document
//	plant/<id>/comments      append-only comment collection
//	provenance               global append-only mutation history
const (
	plantsCollection     = "plants"
	provenanceCollection = "provenance"
)

func identityKey(id string) string {
	return "identity/" + id
}

func plantKey(id uint64) string {
	return "plant/" + strconv.FormatUint(id, 10)
}

func ratingsKey(plantID uint64) string {
	return plantKey(plantID) + "/ratings"
}

func likesKey(plantID uint64) string {
	return plantKey(plantID) + "/likes"
}

func commentsCollection(plantID uint64) string {
	return plantKey(plantID) + "/comments"
}
