package quoting

import (
	"errors"
	"net/http"
	"time"

	"thru-backend/internal/models"
	"thru-backend/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the offer collection flow.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new quoting handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// upgrader is used to upgrade HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{}

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(c echo.Context) error {
	var req models.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.CreateRequest(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDegenerateRoute) || errors.Is(err, models.ErrInvalidDetourTolerance) {
			return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		}
		c.Logger().Error("Handler.CreateRequest: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create request")
	}

	return utils.RespondWithJSON(c, http.StatusCreated, result)
}

// SubmitResponse handles POST /vendor/responses. The vendor identity
// comes from the dispatch token, never from the body.
func (h *Handler) SubmitResponse(c echo.Context) error {
	vendorID, ok := c.Get("vendorID").(string)
	if !ok || vendorID == "" {
		return utils.RespondWithError(c, http.StatusUnauthorized, "Missing vendor identity")
	}

	var payload models.VendorResponsePayload
	if err := c.Bind(&payload); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}

	// Trust boundary: reject structurally invalid responses before they
	// can touch the collection window.
	if result := ValidateResponsePayload(payload); !result.IsValid {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Message: "Response failed validation",
			Errors:  result.Errors,
		})
	}

	if tokenRequestID, ok := c.Get("requestID").(string); ok && tokenRequestID != payload.RequestID {
		return utils.RespondWithError(c, http.StatusForbidden, models.ErrRequestMismatch.Error())
	}

	err := h.svc.SubmitResponse(c.Request().Context(), vendorID, payload)
	switch {
	case err == nil:
		return c.NoContent(http.StatusAccepted)
	case errors.Is(err, models.ErrOfferExpired), errors.Is(err, models.ErrRequestNotCollecting):
		return utils.RespondWithError(c, http.StatusGone, models.ErrOfferExpired.Error())
	case errors.Is(err, models.ErrNotFound):
		return utils.RespondWithError(c, http.StatusNotFound, "Request not found")
	case errors.Is(err, models.ErrRequestMismatch):
		return utils.RespondWithError(c, http.StatusForbidden, err.Error())
	default:
		c.Logger().Error("Handler.SubmitResponse: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to submit response")
	}
}

// GetOffers handles GET /requests/:requestId/offers.
func (h *Handler) GetOffers(c echo.Context) error {
	requestID := c.Param("requestId")

	offers, status, err := h.svc.AggregatedOffers(c.Request().Context(), requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Request not found")
		}
		c.Logger().Error("Handler.GetOffers: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate offers")
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"status": status,
		"offers": offers,
	})
}

// CloseRequest handles POST /requests/:requestId/close.
func (h *Handler) CloseRequest(c echo.Context) error {
	if err := h.svc.CloseRequest(c.Request().Context(), c.Param("requestId")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Request not found")
		}
		return utils.RespondWithError(c, http.StatusConflict, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// AcceptRequestRequest names the vendor whose offer the user accepted.
type AcceptRequestRequest struct {
	VendorID string `json:"vendor_id" validate:"required"`
}

// AcceptRequest handles POST /requests/:requestId/accept.
func (h *Handler) AcceptRequest(c echo.Context) error {
	var req AcceptRequestRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.AcceptRequest(c.Request().Context(), c.Param("requestId"), req.VendorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Request or vendor offer not found")
		}
		return utils.RespondWithError(c, http.StatusConflict, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ValidateRequest handles POST /validate/request.
func (h *Handler) ValidateRequest(c echo.Context) error {
	var payload models.VendorRequestPayload
	if err := c.Bind(&payload); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	return utils.RespondWithJSON(c, http.StatusOK, ValidateRequestPayload(payload))
}

// ValidateResponse handles POST /validate/response.
func (h *Handler) ValidateResponse(c echo.Context) error {
	var payload models.VendorResponsePayload
	if err := c.Bind(&payload); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	return utils.RespondWithJSON(c, http.StatusOK, ValidateResponsePayload(payload))
}

// StreamOffers upgrades the connection to a WebSocket and pushes the
// re-ranked aggregate list whenever a new vendor response lands, plus a
// periodic tick so a quiet window still reports its status transition.
func (h *Handler) StreamOffers(c echo.Context) error {
	requestID := c.Param("requestId")

	updates, cancel, err := h.svc.WatchOffers(requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "Request not found")
		}
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to watch offers")
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	push := func() error {
		offers, status, err := h.svc.AggregatedOffers(c.Request().Context(), requestID)
		if err != nil {
			return err
		}
		return conn.WriteJSON(map[string]interface{}{
			"status": status,
			"offers": offers,
		})
	}

	if err := push(); err != nil {
		return nil
	}

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-updates:
		case <-ticker.C:
		}
		if err := push(); err != nil {
			return nil
		}
	}
}
