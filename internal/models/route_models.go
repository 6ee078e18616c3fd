package models

import "time"

// TransportMode describes how the user travels along the route. It
// selects the assumed speed used when estimating detour minutes.
type TransportMode string

const (
	TransportDriving TransportMode = "driving"
	TransportWalking TransportMode = "walking"
	TransportTransit TransportMode = "transit"
)

// Valid reports whether the mode is one of the supported values.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportDriving, TransportWalking, TransportTransit:
		return true
	}
	return false
}

// RoutePoint is a single geographic point on a user's route.
type RoutePoint struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Address   string     `json:"address,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Route is a user's planned trip. Routes are session-scoped: created when
// the user finalizes planning, discarded after the request is dispatched.
//
// The polyline is ordered start to destination and always has at least
// two points; NewRoute rejects anything shorter. A two-point polyline is
// a valid degenerate route and reduces to single-segment projection.
type Route struct {
	Start             RoutePoint    `json:"start"`
	Destination       RoutePoint    `json:"destination"`
	Polyline          []RoutePoint  `json:"polyline"`
	DetourToleranceKm float64       `json:"detour_tolerance_km"`
	TransportMode     TransportMode `json:"transport_mode"`
}

// NewRoute builds a Route and fails fast on degenerate input, before any
// matching runs.
func NewRoute(polyline []RoutePoint, detourToleranceKm float64, mode TransportMode) (*Route, error) {
	if len(polyline) < 2 {
		return nil, ErrDegenerateRoute
	}
	if detourToleranceKm <= 0 {
		return nil, ErrInvalidDetourTolerance
	}
	if !mode.Valid() {
		mode = TransportDriving
	}
	return &Route{
		Start:             polyline[0],
		Destination:       polyline[len(polyline)-1],
		Polyline:          polyline,
		DetourToleranceKm: detourToleranceKm,
		TransportMode:     mode,
	}, nil
}
