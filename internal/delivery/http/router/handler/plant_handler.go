package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"herbarium/internal/delivery/http/middleware"
	"herbarium/internal/delivery/http/response"
	"herbarium/internal/domain/service"
	"herbarium/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlantHandler holds dependencies for plant registry handlers.
type PlantHandler struct {
	uc           usecase.PlantUsecase
	provenanceUC usecase.ProvenanceUsecase
	qrcodeSvc    service.QRCodeService
	logger       *slog.Logger
}

// NewPlantHandler is the constructor for PlantHandler, injected by Fx.
func NewPlantHandler(
	uc usecase.PlantUsecase,
	provenanceUC usecase.ProvenanceUsecase,
	qrcodeSvc service.QRCodeService,
	logger *slog.Logger,
) *PlantHandler {
	return &PlantHandler{
		uc:           uc,
		provenanceUC: provenanceUC,
		qrcodeSvc:    qrcodeSvc,
		logger:       logger,
	}
}

// AddPlant handles the plant creation request.
func (h *PlantHandler) AddPlant(c echo.Context) error {
	var input *usecase.PlantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid plant input")
	}

	output, err := h.uc.AddPlant(c.Request().Context(), middleware.IdentityID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Plant registered successfully")
}

// EditPlant handles the plant content replacement request.
func (h *PlantHandler) EditPlant(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	var input *usecase.PlantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid plant input")
	}

	output, err := h.uc.EditPlant(c.Request().Context(), middleware.IdentityID(c), plantID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Plant updated successfully")
}

// GetPlant handles the single plant retrieval request.
func (h *PlantHandler) GetPlant(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	view, err := h.uc.GetPlant(c.Request().Context(), plantID, middleware.IdentityID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Plant retrieved successfully")
}

// ListPlants handles the paged registry listing request.
func (h *PlantHandler) ListPlants(c echo.Context) error {
	page := intQueryParam(c, "page")
	pageSize := intQueryParam(c, "pageSize")

	output, err := h.uc.ListPlants(c.Request().Context(), page, pageSize)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Plants retrieved successfully")
}

// CountPlants handles the registry count request.
func (h *PlantHandler) CountPlants(c echo.Context) error {
	count, err := h.uc.CountPlants(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]uint64{"count": count}, "Plant count retrieved successfully")
}

// SearchPlants handles the filtered registry search request.
func (h *PlantHandler) SearchPlants(c echo.Context) error {
	input := &usecase.SearchPlantsInput{
		Name:        c.QueryParam("name"),
		LatinName:   c.QueryParam("latinName"),
		Composition: c.QueryParam("composition"),
		Usage:       c.QueryParam("usage"),
	}

	views, err := h.uc.SearchPlants(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Plants retrieved successfully")
}

// History handles the paged provenance history request.
func (h *PlantHandler) History(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	page := intQueryParam(c, "page")
	pageSize := intQueryParam(c, "pageSize")

	output, err := h.provenanceUC.HistoryFor(c.Request().Context(), plantID, page, pageSize)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Plant history retrieved successfully")
}

// ShareQR returns a PNG QR code pointing at the plant's public page.
func (h *PlantHandler) ShareQR(c echo.Context) error {
	plantID, err := plantIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_PLANT_ID", "Invalid plant identifier")
	}

	// Resolve first so ghost identifiers surface as 404 instead of a QR code.
	if _, err := h.uc.GetPlant(c.Request().Context(), plantID, ""); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrcodeSvc.GeneratePlantShareQR(plantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// plantIDParam parses the :plantId path parameter.
func plantIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("plantId"), 10, 64)
}

// intQueryParam parses an optional numeric query parameter, zero when absent
// or malformed. The usecase layer applies defaults and clamping.
func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
