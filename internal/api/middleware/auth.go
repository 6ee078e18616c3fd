package middleware

import (
	"errors"
	"net/http"

	"thru-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// VendorAuth configures Echo's JWT middleware for the vendor response
// endpoints. Tokens are minted at dispatch time with an expiry equal to
// the request deadline, so an expired token means the offer window is
// closed.
func VendorAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.VendorClaims)
		},
		SigningKey: []byte(jwtSecretKey),
		// Vendors follow an emailed link, so the token may also arrive as
		// a query parameter instead of a bearer header.
		TokenLookup: "header:Authorization:Bearer ,query:token",

		SuccessHandler: func(c echo.Context) {
			vendorToken := c.Get("user").(*jwt.Token)
			claims := vendorToken.Claims.(*models.VendorClaims)

			c.Set("vendorID", claims.VendorID)
			c.Set("requestID", claims.RequestID)
		},

		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Errorf("Vendor JWT error: %v", err)

			if errors.Is(err, echojwt.ErrJWTMissing) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing or malformed vendor token"})
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				// Token expiry equals the request deadline.
				return c.JSON(http.StatusGone, models.ErrorResponse{Message: models.ErrOfferExpired.Error()})
			}
			if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid vendor token"})
			}

			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired vendor token"})
		},
	}
	return echojwt.WithConfig(config)
}
