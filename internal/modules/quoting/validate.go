package quoting

import (
	"fmt"

	"thru-backend/internal/models"
)

// Structural validation of the wire payloads. This is the trust boundary:
// vendor responses are external, untrusted input and are rejected here,
// with field-level errors, before they can touch aggregation state. The
// offer tagged union cannot be expressed with struct validation tags, so
// the per-variant rules are enumerated by hand.

// ValidateRequestPayload checks a vendor request before dispatch.
func ValidateRequestPayload(payload models.VendorRequestPayload) models.ValidationResult {
	var errs []string

	if payload.RequestID == "" {
		errs = append(errs, "request_id is required")
	}
	if payload.UserID == "" {
		errs = append(errs, "user_id is required")
	}
	if payload.Location.Lat < -90 || payload.Location.Lat > 90 ||
		payload.Location.Lng < -180 || payload.Location.Lng > 180 {
		errs = append(errs, "location lat/lng out of range")
	}
	if payload.DeadlineUTC.IsZero() {
		errs = append(errs, "deadline_utc is required")
	}
	if len(payload.Items) == 0 {
		errs = append(errs, "items array must not be empty")
	}

	seen := make(map[string]bool, len(payload.Items))
	for i, item := range payload.Items {
		if item.RequestItemID == "" {
			errs = append(errs, fmt.Sprintf("items[%d].request_item_id is required", i))
		} else if seen[item.RequestItemID] {
			errs = append(errs, fmt.Sprintf("items[%d].request_item_id is duplicated", i))
		} else {
			seen[item.RequestItemID] = true
		}
		if item.ProductName == "" {
			errs = append(errs, fmt.Sprintf("items[%d].product_name is required", i))
		}
		if item.RequestedQtyValue <= 0 {
			errs = append(errs, fmt.Sprintf("items[%d].requested_qty_value must be a positive number", i))
		}
		if !item.RequestedQtyUnit.Valid() {
			errs = append(errs, fmt.Sprintf("items[%d].requested_qty_unit must be one of: kg, g, l, ml, pcs", i))
		}
		for j, pack := range item.SuggestedPacks {
			if pack.PackValue <= 0 {
				errs = append(errs, fmt.Sprintf("items[%d].suggested_packs[%d].pack_value must be a positive number", i, j))
			}
			if !pack.PackUnit.Valid() {
				errs = append(errs, fmt.Sprintf("items[%d].suggested_packs[%d].pack_unit must be one of: kg, g, l, ml, pcs", i, j))
			}
		}
	}

	return models.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateResponsePayload checks a vendor response before it is admitted
// to the collection window.
func ValidateResponsePayload(payload models.VendorResponsePayload) models.ValidationResult {
	var errs []string

	if payload.RequestID == "" {
		errs = append(errs, "request_id is required")
	}
	if payload.VendorID == "" {
		errs = append(errs, "vendor_id is required")
	}
	if len(payload.Offers) == 0 {
		errs = append(errs, "offers array must not be empty")
	}

	for i, offer := range payload.Offers {
		switch offer.Type {
		case models.OfferTypeExactQty:
			if offer.PriceTotal <= 0 {
				errs = append(errs, fmt.Sprintf("offers[%d].price_total must be a positive number for exact_qty_offer", i))
			}
		case models.OfferTypePack:
			if offer.PackValue <= 0 {
				errs = append(errs, fmt.Sprintf("offers[%d].pack_value must be a positive number for pack_offer", i))
			}
			if !offer.PackUnit.Valid() {
				errs = append(errs, fmt.Sprintf("offers[%d].pack_unit must be one of: kg, g, l, ml, pcs", i))
			}
			if offer.PricePerPack <= 0 {
				errs = append(errs, fmt.Sprintf("offers[%d].price_per_pack must be a positive number for pack_offer", i))
			}
		default:
			errs = append(errs, fmt.Sprintf("offers[%d].type must be 'exact_qty_offer' or 'pack_offer'", i))
		}

		if offer.RequestItemID == "" {
			errs = append(errs, fmt.Sprintf("offers[%d].request_item_id is required", i))
		}
		if offer.Currency == "" {
			errs = append(errs, fmt.Sprintf("offers[%d].currency is required", i))
		}
		if offer.LeadTimeMinutes < 0 {
			errs = append(errs, fmt.Sprintf("offers[%d].lead_time_minutes must be a non-negative number", i))
		}
	}

	return models.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
