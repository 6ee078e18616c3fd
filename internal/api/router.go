package api

import (
	"net/http"

	"thru-backend/internal/api/middleware"
	"thru-backend/internal/modules/matching"
	"thru-backend/internal/modules/quoting"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	matchingHandler *matching.Handler,
	quotingHandler *quoting.Handler,
	jwtSecret string,
) {
	// Vendor response endpoints require the token minted at dispatch.
	vendorAuth := middleware.VendorAuth(jwtSecret)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Route-based vendor matching engine"})
	})

	// --- Candidate Discovery ---
	e.POST("/candidates", matchingHandler.FindCandidates)
	e.GET("/store-types/:storeType/capabilities", matchingHandler.StoreCapabilities)

	// --- Request Lifecycle ---
	requestGroup := e.Group("/requests")
	{
		requestGroup.POST("", quotingHandler.CreateRequest)
		requestGroup.GET("/:requestId/offers", quotingHandler.GetOffers)
		requestGroup.POST("/:requestId/close", quotingHandler.CloseRequest)
		requestGroup.POST("/:requestId/accept", quotingHandler.AcceptRequest)
	}

	// --- Realtime Offer Stream ---
	e.GET("/ws/requests/:requestId/offers", quotingHandler.StreamOffers)

	// --- Vendor Endpoints ---
	vendorGroup := e.Group("/vendor", vendorAuth)
	{
		vendorGroup.POST("/responses", quotingHandler.SubmitResponse)
	}

	// --- Payload Validation (for vendor app integration testing) ---
	validateGroup := e.Group("/validate")
	{
		validateGroup.POST("/request", quotingHandler.ValidateRequest)
		validateGroup.POST("/response", quotingHandler.ValidateResponse)
	}
}
