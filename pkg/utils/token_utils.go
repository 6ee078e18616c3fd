package utils

import (
	"fmt"
	"time"

	"thru-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// MintVendorToken creates the signed token a vendor presents when
// submitting offers for a request. The token expires at the request
// deadline, so an expired token and a closed offer window fail at the
// same boundary.
func MintVendorToken(jwtSecret, vendorID, requestID string, deadline time.Time) (string, error) {
	claims := models.VendorClaims{
		VendorID:  vendorID,
		RequestID: requestID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(deadline),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("utils.MintVendorToken: %w", err)
	}
	return signed, nil
}
