package impl

import (
	"context"
	"testing"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_RatePlant(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	rater := f.registerIdentity(t, "Bram")
	plantID := f.addPlant(t, owner, "Ginger")

	out, err := f.engagementSvc.RatePlant(ctx, rater, plantID, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, out.TxRef)

	view, err := f.plantSvc.GetPlant(ctx, plantID, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), view.RatingTotal)
	assert.Equal(t, uint64(1), view.RatingCount)
	assert.Equal(t, 4.0, view.AverageRating)
}

func TestEngagementService_ReRateAppliesDelta(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	rater := f.registerIdentity(t, "Bram")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.engagementSvc.RatePlant(ctx, rater, plantID, 5)
	require.NoError(t, err)
	_, err = f.engagementSvc.RatePlant(ctx, rater, plantID, 2)
	require.NoError(t, err)

	// Re-rating replaces the prior value without growing the count
	view, err := f.plantSvc.GetPlant(ctx, plantID, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), view.RatingTotal)
	assert.Equal(t, uint64(1), view.RatingCount)
}

func TestEngagementService_RatingAggregatesAcrossIdentities(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	ratings := map[string]uint8{
		f.registerIdentity(t, "Bram"):  5,
		f.registerIdentity(t, "Citra"): 4,
		f.registerIdentity(t, "Dewi"):  2,
	}
	for rater, rating := range ratings {
		_, err := f.engagementSvc.RatePlant(ctx, rater, plantID, rating)
		require.NoError(t, err)
	}

	avg, err := f.engagementSvc.AverageRating(ctx, plantID)
	require.NoError(t, err)
	// (5+4+2)/3 = 3.666..., rounded to one decimal
	assert.Equal(t, 3.7, avg)

	values, err := f.engagementSvc.PlantRatings(ctx, plantID)
	require.NoError(t, err)
	assert.Equal(t, []uint8{2, 4, 5}, values)
}

func TestEngagementService_RatePlantValidation(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	for _, rating := range []uint8{0, 6, 10} {
		_, err := f.engagementSvc.RatePlant(ctx, owner, plantID, rating)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRating, "rating %d", rating)
	}

	_, err := f.engagementSvc.RatePlant(ctx, owner, 42, 3)
	assert.ErrorIs(t, err, domainerrors.ErrPlantNotFound)
}

func TestEngagementService_AverageRatingUnrated(t *testing.T) {
	f := newTestFixtures(t)
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	avg, err := f.engagementSvc.AverageRating(context.Background(), plantID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestEngagementService_LikeToggle(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	liker := f.registerIdentity(t, "Bram")
	plantID := f.addPlant(t, owner, "Ginger")

	out, err := f.engagementSvc.LikePlant(ctx, liker, plantID)
	require.NoError(t, err)
	assert.True(t, out.Liked)

	view, err := f.plantSvc.GetPlant(ctx, plantID, liker)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), view.LikeCount)
	assert.True(t, view.IsLiked)

	// Second toggle restores the prior state
	out, err = f.engagementSvc.LikePlant(ctx, liker, plantID)
	require.NoError(t, err)
	assert.False(t, out.Liked)

	view, err = f.plantSvc.GetPlant(ctx, plantID, liker)
	require.NoError(t, err)
	assert.Zero(t, view.LikeCount)
	assert.False(t, view.IsLiked)
}

func TestEngagementService_LikesAreIndependentAcrossIdentities(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	first := f.registerIdentity(t, "Bram")
	second := f.registerIdentity(t, "Citra")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.engagementSvc.LikePlant(ctx, first, plantID)
	require.NoError(t, err)
	_, err = f.engagementSvc.LikePlant(ctx, second, plantID)
	require.NoError(t, err)

	view, err := f.plantSvc.GetPlant(ctx, plantID, second)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), view.LikeCount)

	// First identity unliking does not disturb the second
	_, err = f.engagementSvc.LikePlant(ctx, first, plantID)
	require.NoError(t, err)

	view, err = f.plantSvc.GetPlant(ctx, plantID, second)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), view.LikeCount)
	assert.True(t, view.IsLiked)
}

func TestEngagementService_CommentPlant(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	commenter := f.registerIdentity(t, "Bram")
	plantID := f.addPlant(t, owner, "Ginger")

	first, err := f.engagementSvc.CommentPlant(ctx, commenter, plantID, "Works well dried")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.CommentID)

	second, err := f.engagementSvc.CommentPlant(ctx, owner, plantID, "Harvest in autumn")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.CommentID)

	comments, err := f.engagementSvc.PlantComments(ctx, plantID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Works well dried", comments[0].Text)
	assert.Equal(t, "Bram", comments[0].AuthorName)
	assert.Equal(t, "Ana", comments[1].AuthorName)
}

func TestEngagementService_CommentValidation(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.engagementSvc.CommentPlant(ctx, owner, plantID, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrEmptyComment)

	_, err = f.engagementSvc.CommentPlant(ctx, owner, 42, "ghost comment")
	assert.ErrorIs(t, err, domainerrors.ErrPlantNotFound)
}

func TestEngagementService_CommentAuthorFallsBackToPlaceholder(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	// An author that was never registered resolves to the placeholder
	_, err := f.engagementSvc.CommentPlant(ctx, "0xunregistered", plantID, "drive-by note")
	require.NoError(t, err)

	comments, err := f.engagementSvc.PlantComments(ctx, plantID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, entity.UnknownValue, comments[0].AuthorName)
}

func TestEngagementService_EngagementDoesNotTouchProvenance(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	_, err := f.engagementSvc.RatePlant(ctx, owner, plantID, 5)
	require.NoError(t, err)
	_, err = f.engagementSvc.LikePlant(ctx, owner, plantID)
	require.NoError(t, err)
	_, err = f.engagementSvc.CommentPlant(ctx, owner, plantID, "note")
	require.NoError(t, err)

	// Only the creation is in the history
	records, err := f.provenanceRepo.FindByPlant(ctx, plantID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// Edge of the average: many maximum ratings still clamp to 5.0.
func TestEngagementService_AverageRatingUpperBound(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()
	owner := f.registerIdentity(t, "Ana")
	plantID := f.addPlant(t, owner, "Ginger")

	for _, name := range []string{"B", "C", "D", "E"} {
		rater := f.registerIdentity(t, name)
		_, err := f.engagementSvc.RatePlant(ctx, rater, plantID, 5)
		require.NoError(t, err)
	}

	avg, err := f.engagementSvc.AverageRating(ctx, plantID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
}
