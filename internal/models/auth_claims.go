package models

import "github.com/golang-jwt/jwt/v5"

// VendorClaims is the JWT payload minted per vendor at dispatch time and
// presented back when the vendor submits offers. The token expiry equals
// the request deadline, so expired tokens and expired offer windows fail
// at the same boundary.
type VendorClaims struct {
	VendorID  string `json:"vendorID"`
	RequestID string `json:"requestID"`
	jwt.RegisteredClaims
}
