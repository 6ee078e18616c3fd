package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrDegenerateRoute is returned when a route polyline has fewer than
	// two points. Construction fails before any matching runs.
	ErrDegenerateRoute = errors.New("route polyline must contain at least two points")

	// ErrInvalidDetourTolerance is returned when the detour tolerance is
	// zero or negative.
	ErrInvalidDetourTolerance = errors.New("detour tolerance must be positive")

	// ErrUnsupportedConversion is returned when two units are not in the
	// same family (e.g. kg to pcs). The single offending item or offer is
	// skipped; the vendor's other items are still processed.
	ErrUnsupportedConversion = errors.New("unsupported unit conversion")

	// ErrOfferExpired is returned when a vendor response arrives after the
	// request's deadline. The response is discarded and never merged
	// retroactively.
	ErrOfferExpired = errors.New("the offer window for this request has closed")

	// ErrRequestNotCollecting is returned when a state transition or a
	// vendor response targets a request that is no longer collecting offers.
	ErrRequestNotCollecting = errors.New("request is not collecting offers")

	// ErrRequestNotReady is returned when an accept is attempted before the
	// collection window has been closed.
	ErrRequestNotReady = errors.New("request is not ready for selection")

	// ErrRequestMismatch is returned when a vendor response references a
	// different request than the one it was submitted against.
	ErrRequestMismatch = errors.New("response request_id does not match")
)
