package impl

import (
	"context"
	"testing"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantService_AddPlantAssignsMonotonicIDs(t *testing.T) {
	f := newTestFixtures(t)
	owner := f.registerIdentity(t, "Ana")

	for i := 0; i < 3; i++ {
		id := f.addPlant(t, owner, "Ginger")
		assert.Equal(t, uint64(i), id)
	}

	count, err := f.plantSvc.CountPlants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestPlantService_AddPlantRequiresName(t *testing.T) {
	f := newTestFixtures(t)
	owner := f.registerIdentity(t, "Ana")

	_, err := f.plantSvc.AddPlant(context.Background(), owner, &usecase.PlantInput{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidField)

	// Nothing was written
	count, err := f.plantSvc.CountPlants(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPlantService_AddPlantRecordsProvenance(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")

	plantID := f.addPlant(t, owner, "Ginger")

	records, err := f.provenanceRepo.FindByPlant(ctx, plantID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, owner, records[0].Actor)
	assert.NotEmpty(t, records[0].TxRef)
}

func TestPlantService_GetPlantNormalizesBlankFields(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")

	out, err := f.plantSvc.AddPlant(ctx, owner, &usecase.PlantInput{Name: "Ginger"})
	require.NoError(t, err)

	view, err := f.plantSvc.GetPlant(ctx, out.PlantID, "")
	require.NoError(t, err)
	assert.Equal(t, "Ginger", view.Name)
	assert.Equal(t, entity.UnknownValue, view.LatinName)
	assert.Equal(t, entity.UnknownValue, view.Dosage)
	assert.Zero(t, view.RatingCount)
	assert.Zero(t, view.AverageRating)
}

func TestPlantService_GetPlantNotFound(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.plantSvc.GetPlant(context.Background(), 42, "")
	assert.ErrorIs(t, err, domainerrors.ErrPlantNotFound)
}

func TestPlantService_EditPlantByOwner(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.plantSvc.EditPlant(ctx, owner, plantID, &usecase.PlantInput{
		Name:  "Ginger",
		Usage: "Digestive aid",
	})
	require.NoError(t, err)

	view, err := f.plantSvc.GetPlant(ctx, plantID, "")
	require.NoError(t, err)
	assert.Equal(t, "Digestive aid", view.Usage)
	assert.Equal(t, owner, view.Owner)

	// Create plus edit leaves two provenance records
	records, err := f.provenanceRepo.FindByPlant(ctx, plantID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestPlantService_EditPlantOwnerCaseInsensitive(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	// Same identity, different case
	upper := "0X" + owner[2:]
	_, err := f.plantSvc.EditPlant(ctx, upper, plantID, &usecase.PlantInput{Name: "Ginger"})
	assert.NoError(t, err)
}

func TestPlantService_EditPlantByNonOwner(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	owner := f.registerIdentity(t, "Ana")
	other := f.registerIdentity(t, "Bram")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.plantSvc.EditPlant(ctx, other, plantID, &usecase.PlantInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, domainerrors.ErrPlantOwnershipViolation)

	// Content is unchanged
	view, err := f.plantSvc.GetPlant(ctx, plantID, "")
	require.NoError(t, err)
	assert.Equal(t, "Ginger", view.Name)
}

func TestPlantService_EditPlantNotFound(t *testing.T) {
	f := newTestFixtures(t)
	owner := f.registerIdentity(t, "Ana")

	_, err := f.plantSvc.EditPlant(context.Background(), owner, 42, &usecase.PlantInput{Name: "Ghost"})
	assert.ErrorIs(t, err, domainerrors.ErrPlantNotFound)
}

func TestPlantService_ListPlantsPagination(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")

	for i := 0; i < 7; i++ {
		f.addPlant(t, owner, "Ginger")
	}

	page, err := f.plantSvc.ListPlants(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, page.Plants, 3)
	assert.Equal(t, uint64(0), page.Plants[0].PlantID)
	assert.Equal(t, uint64(7), page.Total)

	// Last partial page
	page, err = f.plantSvc.ListPlants(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page.Plants, 1)

	// Past the end
	page, err = f.plantSvc.ListPlants(ctx, 9, 3)
	require.NoError(t, err)
	assert.Empty(t, page.Plants)
}

func TestPlantService_ListPlantsClampsPaging(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	f.addPlant(t, owner, "Ginger")

	// Zero values fall back to defaults
	page, err := f.plantSvc.ListPlants(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)

	// Oversized page size is clamped to the configured maximum
	page, err = f.plantSvc.ListPlants(ctx, 1, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 50, page.PageSize)
}

func TestPlantService_SearchPlants(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")

	_, err := f.plantSvc.AddPlant(ctx, owner, &usecase.PlantInput{
		Name: "Ginger", LatinName: "Zingiber officinale", Usage: "Nausea relief",
	})
	require.NoError(t, err)
	_, err = f.plantSvc.AddPlant(ctx, owner, &usecase.PlantInput{
		Name: "Turmeric", LatinName: "Curcuma longa", Usage: "Anti-inflammatory",
	})
	require.NoError(t, err)
	_, err = f.plantSvc.AddPlant(ctx, owner, &usecase.PlantInput{
		Name: "Wild Ginger", LatinName: "Asarum", Usage: "Topical",
	})
	require.NoError(t, err)

	// Case-insensitive substring, ascending identifiers
	views, err := f.plantSvc.SearchPlants(ctx, &usecase.SearchPlantsInput{Name: "gInGeR"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, uint64(0), views[0].PlantID)
	assert.Equal(t, uint64(2), views[1].PlantID)

	// Filters combine with AND
	views, err = f.plantSvc.SearchPlants(ctx, &usecase.SearchPlantsInput{Name: "ginger", Usage: "nausea"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ginger", views[0].Name)

	// No filters matches everything
	views, err = f.plantSvc.SearchPlants(ctx, &usecase.SearchPlantsInput{})
	require.NoError(t, err)
	assert.Len(t, views, 3)

	// No matches yields an empty slice
	views, err = f.plantSvc.SearchPlants(ctx, &usecase.SearchPlantsInput{Name: "orchid"})
	require.NoError(t, err)
	assert.Empty(t, views)
}
