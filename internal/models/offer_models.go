package models

import "time"

// Offer type discriminators used on the wire.
const (
	OfferTypeExactQty = "exact_qty_offer"
	OfferTypePack     = "pack_offer"
)

// VendorOffer is one vendor answer for a single request item. It is a
// tagged variant: Type selects which fields are meaningful.
//
//   - exact_qty_offer: PriceTotal is the total for exactly the requested
//     quantity; pack fields are ignored.
//   - pack_offer: PackValue/PackUnit/PricePerPack describe a fixed pack;
//     PriceTotal is ignored.
type VendorOffer struct {
	Type            string  `json:"type"`
	RequestItemID   string  `json:"request_item_id"`
	PriceTotal      float64 `json:"price_total,omitempty"`
	PackValue       float64 `json:"pack_value,omitempty"`
	PackUnit        Unit    `json:"pack_unit,omitempty"`
	PricePerPack    float64 `json:"price_per_pack,omitempty"`
	Currency        string  `json:"currency"`
	LeadTimeMinutes float64 `json:"lead_time_minutes"`
	Notes           string  `json:"notes,omitempty"`
}

// VendorResponsePayload is one vendor's reply to a request. At most one
// response per (request, vendor) is effective: a later arrival replaces
// the earlier one wholesale.
type VendorResponsePayload struct {
	RequestID   string        `json:"request_id"`
	VendorID    string        `json:"vendor_id"`
	Offers      []VendorOffer `json:"offers"`
	SubmittedAt time.Time     `json:"submitted_at,omitempty"`
}

// AggregatedItemOffer is the computed fulfillment of one request item by
// one vendor after unit conversion and pack rounding.
type AggregatedItemOffer struct {
	RequestItemID       string  `json:"request_item_id"`
	ProductName         string  `json:"product_name"`
	RequestedQtyValue   float64 `json:"requested_qty_value"`
	RequestedQtyUnit    Unit    `json:"requested_qty_unit"`
	OfferType           string  `json:"offer_type"` // "exact" or "pack"
	FulfillmentQtyValue float64 `json:"fulfillment_qty_value"`
	FulfillmentQtyUnit  Unit    `json:"fulfillment_qty_unit"`
	SurplusQtyValue     float64 `json:"surplus_qty_value,omitempty"`
	SurplusQtyUnit      Unit    `json:"surplus_qty_unit,omitempty"`
	PriceTotal          float64 `json:"price_total"`
	PricePerUnit        float64 `json:"price_per_unit,omitempty"`
	PacksNeeded         int     `json:"packs_needed,omitempty"`
	PackValue           float64 `json:"pack_value,omitempty"`
	PackUnit            Unit    `json:"pack_unit,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}

// AggregatedOffer is one vendor's ranked aggregate quote for a request.
//
// LeadTimeMinutes is the max over matched items: the vendor is not ready
// until every item it provides is ready.
type AggregatedOffer struct {
	VendorID             string                `json:"vendor_id"`
	VendorName           string                `json:"vendor_name"`
	TotalPrice           float64               `json:"total_price"`
	Currency             string                `json:"currency"`
	LeadTimeMinutes      float64               `json:"lead_time_minutes"`
	Items                []AggregatedItemOffer `json:"items"`
	CanFulfillCompletely bool                  `json:"can_fulfill_completely"`
}

// ValidationResult is the outcome of structurally validating an inbound
// payload: either valid, or an enumerated list of field-level errors.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse is the generic error body returned by handlers.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
