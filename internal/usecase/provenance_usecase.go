package usecase

import "context"

// ProvenanceUsecase defines the interface for reading a plant's mutation history.
type ProvenanceUsecase interface {
	// HistoryFor returns one page of the plant's history, newest first.
	// Pages are 1-based.
	HistoryFor(ctx context.Context, plantID uint64, page, pageSize int) (*HistoryPage, error)
}

// --- Output DTOs ---

// HistoryEntry is the presentation form of one provenance record.
type HistoryEntry struct {
	RecordID    uint64 `json:"record_id"`
	PlantID     uint64 `json:"plant_id"`
	Actor       string `json:"actor"`
	TxRef       string `json:"tx_ref"`
	Kind        string `json:"kind"` // "Create" or "Edit", derived from history position.
	Timestamp   int64  `json:"timestamp"`
	DisplayTime string `json:"display_time"`
}

// HistoryPage is one page of a plant's mutation history.
type HistoryPage struct {
	Records         []*HistoryEntry `json:"records"`
	Page            int             `json:"page"`
	PageSize        int             `json:"page_size"`
	TotalRecords    int             `json:"total_records"`
	HasNextPage     bool            `json:"has_next_page"`
	HasPreviousPage bool            `json:"has_previous_page"`
}
