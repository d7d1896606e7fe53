package handler

import (
	"log/slog"
	"net/http"

	"herbarium/internal/delivery/http/middleware"
	"herbarium/internal/delivery/http/response"
	"herbarium/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RatePlantInput is the request body for rating a plant.
type RatePlantInput struct {
	PlantID uint64 `json:"plant_id"`
	Rating  uint8  `json:"rating" validate:"required,min=1,max=5"`
}

// LikePlantInput is the request body for toggling a like.
type LikePlantInput struct {
	PlantID uint64 `json:"plant_id"`
}

// CommentPlantInput is the request body for appending a comment.
type CommentPlantInput struct {
	PlantID uint64 `json:"plant_id"`
	Text    string `json:"text" validate:"required"`
}

// EngagementHandler holds dependencies for rating, like and comment handlers.
type EngagementHandler struct {
	uc     usecase.EngagementUsecase
	logger *slog.Logger
}

// NewEngagementHandler is the constructor for EngagementHandler, injected by Fx.
func NewEngagementHandler(uc usecase.EngagementUsecase, logger *slog.Logger) *EngagementHandler {
	return &EngagementHandler{
		uc:     uc,
		logger: logger,
	}
}

// Rate handles the rating request.
func (h *EngagementHandler) Rate(c echo.Context) error {
	var input *RatePlantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	output, err := h.uc.RatePlant(c.Request().Context(), middleware.IdentityID(c), input.PlantID, input.Rating)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Plant rated successfully")
}

// Like handles the like toggle request.
func (h *EngagementHandler) Like(c echo.Context) error {
	var input *LikePlantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid like input")
	}

	output, err := h.uc.LikePlant(c.Request().Context(), middleware.IdentityID(c), input.PlantID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Plant liked successfully"
	if !output.Liked {
		message = "Plant unliked successfully"
	}

	return response.Success(c, http.StatusOK, output, message)
}

// Comment handles the comment append request.
func (h *EngagementHandler) Comment(c echo.Context) error {
	var input *CommentPlantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}

	output, err := h.uc.CommentPlant(c.Request().Context(), middleware.IdentityID(c), input.PlantID, input.Text)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Comment added successfully")
}

// Comments handles the comment listing request.
func (h *EngagementHandler) Comments(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	comments, err := h.uc.PlantComments(c.Request().Context(), plantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comments, "Comments retrieved successfully")
}

// Ratings handles the raw rating values request.
func (h *EngagementHandler) Ratings(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	ratings, err := h.uc.PlantRatings(c.Request().Context(), plantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"plant_id": plantID,
		"ratings":  ratings,
	}, "Ratings retrieved successfully")
}

// AverageRating handles the mean rating request.
func (h *EngagementHandler) AverageRating(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	average, err := h.uc.AverageRating(c.Request().Context(), plantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"plant_id":       plantID,
		"average_rating": average,
	}, "Average rating retrieved successfully")
}
