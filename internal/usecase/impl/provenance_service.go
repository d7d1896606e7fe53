package impl

import (
	"context"
	"log/slog"
	"sort"

	"herbarium/config"
	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/usecase"

	"github.com/pkg/errors"
)

// displayTimeLayout approximates a locale-formatted timestamp for history
// entries, e.g. "1/2/2026, 3:04:05 PM".
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

// provenanceService implements the ProvenanceUsecase interface.
type provenanceService struct {
	plantRepo      repository.PlantRepository
	provenanceRepo repository.ProvenanceRepository
	cfg            *config.Config
	logger         *slog.Logger
}

// NewProvenanceService is the constructor for provenanceService.
func NewProvenanceService(
	plantRepo repository.PlantRepository,
	provenanceRepo repository.ProvenanceRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ProvenanceUsecase {
	return &provenanceService{
		plantRepo:      plantRepo,
		provenanceRepo: provenanceRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

// HistoryFor returns one page of the plant's mutation history, newest first.
// The earliest record by (timestamp, recordID) is classified Create, every
// later one Edit; classification is derived, never stored.
func (srv *provenanceService) HistoryFor(ctx context.Context, plantID uint64, page, pageSize int) (*usecase.HistoryPage, error) {
	// 1. The plant must exist
	if _, err := srv.plantRepo.FindByID(ctx, plantID); err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPlantNotFound, "plant not found")
		}

		return nil, errors.Wrap(err, "failed to find plant")
	}

	// 2. Collect and classify the plant's records
	records, err := srv.provenanceRepo.FindByPlant(ctx, plantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load history")
	}

	kinds := entity.ClassifyHistory(records)
	entries := make([]*usecase.HistoryEntry, len(records))
	for i, record := range records {
		entries[i] = &usecase.HistoryEntry{
			RecordID:    record.RecordID,
			PlantID:     record.PlantID,
			Actor:       record.Actor,
			TxRef:       record.TxRef,
			Kind:        string(kinds[i]),
			Timestamp:   record.Timestamp,
			DisplayTime: record.Time().UTC().Format(displayTimeLayout),
		}
	}

	// 3. Newest first for display
	sortEntriesForDisplay(entries)

	// 4. Paginate
	page, pageSize = srv.clampPaging(page, pageSize)
	total := len(entries)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &usecase.HistoryPage{
		Records:         entries[start:end],
		Page:            page,
		PageSize:        pageSize,
		TotalRecords:    total,
		HasNextPage:     end < total,
		HasPreviousPage: page > 1 && total > 0,
	}, nil
}

func (srv *provenanceService) clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = srv.cfg.Registry.DefaultPageSize
	}
	if pageSize > srv.cfg.Registry.MaxPageSize {
		pageSize = srv.cfg.Registry.MaxPageSize
	}

	return page, pageSize
}

// sortEntriesForDisplay orders entries newest first by (timestamp, recordID).
func sortEntriesForDisplay(entries []*usecase.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}

		return entries[i].RecordID > entries[j].RecordID
	})
}
