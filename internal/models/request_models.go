package models

import "time"

// Unit is a quantity unit accepted on request items and vendor packs.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitG   Unit = "g"
	UnitL   Unit = "l"
	UnitMl  Unit = "ml"
	UnitPcs Unit = "pcs"
)

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitG, UnitL, UnitMl, UnitPcs:
		return true
	}
	return false
}

// SuggestedPack is a pack size hint sent to vendors with a request item.
type SuggestedPack struct {
	PackValue float64 `json:"pack_value"`
	PackUnit  Unit    `json:"pack_unit"`
}

// RequestItem is a single desired product within a vendor request.
//
// AllowFractionalByUser records the user's preference; for pcs items the
// flag is always treated as false regardless of the stored value, and
// normalization enforces that before anything downstream sees the item.
type RequestItem struct {
	RequestItemID         string          `json:"request_item_id" validate:"required"`
	ProductName           string          `json:"product_name" validate:"required"`
	NormalizedHint        string          `json:"normalized_hint,omitempty"`
	RequestedQtyValue     float64         `json:"requested_qty_value" validate:"required,gt=0"`
	RequestedQtyUnit      Unit            `json:"requested_qty_unit" validate:"required,oneof=kg g l ml pcs"`
	AllowFractionalByUser bool            `json:"allow_fractional_by_user"`
	Notes                 string          `json:"notes,omitempty"`
	SuggestedPacks        []SuggestedPack `json:"suggested_packs,omitempty"`
}

// LatLng is a bare coordinate pair used on the wire.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VendorRequestPayload is the request fanned out to candidate vendors.
// Created once per user submission and immutable after dispatch; it
// logically expires at DeadlineUTC.
type VendorRequestPayload struct {
	RequestID   string        `json:"request_id" validate:"required"`
	UserID      string        `json:"user_id" validate:"required"`
	Location    LatLng        `json:"location"`
	Items       []RequestItem `json:"items" validate:"required,min=1,dive"`
	DeadlineUTC time.Time     `json:"deadline_utc" validate:"required"`
}

// CreateRequestRequest is the client payload that opens a vendor request:
// the trip route, the cart, and which store types to ask.
type CreateRequestRequest struct {
	UserID            string        `json:"user_id" validate:"required"`
	Polyline          []RoutePoint  `json:"polyline" validate:"required,min=2"`
	DetourToleranceKm float64       `json:"detour_tolerance_km" validate:"required,gt=0"`
	TransportMode     TransportMode `json:"transport_mode" validate:"omitempty,oneof=driving walking transit"`
	StoreTypes        []StoreType   `json:"store_types,omitempty"`
	Items             []RequestItem `json:"items" validate:"required,min=1,dive"`
	WindowMinutes     int           `json:"window_minutes" validate:"omitempty,gt=0"`
}

// RequestStatus tracks a request through its collection lifecycle.
type RequestStatus string

const (
	RequestCollecting RequestStatus = "collecting_offers"
	RequestReady      RequestStatus = "ready_for_selection"
	RequestAccepted   RequestStatus = "accepted"
	RequestExpired    RequestStatus = "expired"
)
