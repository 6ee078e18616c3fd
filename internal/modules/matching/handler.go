package matching

import (
	"errors"
	"net/http"

	"thru-backend/internal/models"
	"thru-backend/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler exposes candidate discovery over HTTP.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new matching handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CandidatesRequest is the body for a standalone candidate search, used
// by the trip planner before the cart is finalized.
type CandidatesRequest struct {
	Polyline          []models.RoutePoint  `json:"polyline" validate:"required,min=2"`
	DetourToleranceKm float64              `json:"detour_tolerance_km" validate:"required,gt=0"`
	TransportMode     models.TransportMode `json:"transport_mode" validate:"omitempty,oneof=driving walking transit"`
	StoreTypes        []models.StoreType   `json:"store_types,omitempty"`
}

// FindCandidates handles POST /candidates.
func (h *Handler) FindCandidates(c echo.Context) error {
	var req CandidatesRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	route, err := models.NewRoute(req.Polyline, req.DetourToleranceKm, req.TransportMode)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	candidates, err := h.svc.FindCandidateVendors(c.Request().Context(), route, req.StoreTypes)
	if err != nil {
		if errors.Is(err, models.ErrDegenerateRoute) {
			return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		}
		c.Logger().Error("Handler.FindCandidates: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to find candidate vendors")
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// StoreCapabilities handles GET /store-types/:storeType/capabilities.
func (h *Handler) StoreCapabilities(c echo.Context) error {
	storeType := models.StoreType(c.Param("storeType"))
	return utils.RespondWithJSON(c, http.StatusOK, Capabilities(storeType))
}
