package quoting

import (
	"sort"

	"thru-backend/internal/models"
)

// AggregateOffers computes ranked per-vendor aggregate quotes for a
// request from the current set of validated responses.
//
// The function is pure and idempotent: re-running it against the same
// response set always produces the same ranking, regardless of arrival
// order, except that a later response from the same vendor replaces the
// earlier one (last write wins, keyed by vendor within the request).
// It can be re-run from scratch on every new-response event.
//
// vendorNames maps vendor IDs to display names; missing entries fall
// back to the ID.
func AggregateOffers(
	request models.VendorRequestPayload,
	responses []models.VendorResponsePayload,
	vendorNames map[string]string,
) []models.AggregatedOffer {
	// Last write wins per vendor, preserving first-arrival ordering for
	// determinism before the final sort.
	byVendor := make(map[string]int)
	deduped := make([]models.VendorResponsePayload, 0, len(responses))
	for _, resp := range responses {
		if idx, ok := byVendor[resp.VendorID]; ok {
			deduped[idx] = resp
			continue
		}
		byVendor[resp.VendorID] = len(deduped)
		deduped = append(deduped, resp)
	}

	aggregated := make([]models.AggregatedOffer, 0, len(deduped))
	for _, resp := range deduped {
		vendor := aggregateVendor(request, resp, vendorNames)
		// A vendor contributing zero matched items is invisible to the user.
		if len(vendor.Items) == 0 {
			continue
		}
		aggregated = append(aggregated, vendor)
	}

	// Ascending total price, ties broken by ascending lead time. A
	// cheaper-but-slower vendor deliberately outranks a pricier-but-faster
	// one.
	sort.SliceStable(aggregated, func(i, j int) bool {
		if aggregated[i].TotalPrice != aggregated[j].TotalPrice {
			return aggregated[i].TotalPrice < aggregated[j].TotalPrice
		}
		return aggregated[i].LeadTimeMinutes < aggregated[j].LeadTimeMinutes
	})

	return aggregated
}

func aggregateVendor(
	request models.VendorRequestPayload,
	resp models.VendorResponsePayload,
	vendorNames map[string]string,
) models.AggregatedOffer {
	name := vendorNames[resp.VendorID]
	if name == "" {
		name = resp.VendorID
	}

	vendor := models.AggregatedOffer{
		VendorID:             resp.VendorID,
		VendorName:           name,
		CanFulfillCompletely: true,
	}

	for _, item := range request.Items {
		item = NormalizeItem(item)

		var itemOffers []models.VendorOffer
		for _, offer := range resp.Offers {
			if offer.RequestItemID == item.RequestItemID {
				itemOffers = append(itemOffers, offer)
			}
		}
		if len(itemOffers) == 0 {
			// Partial fulfillment is a first-class result, not a failure.
			vendor.CanFulfillCompletely = false
			continue
		}

		best, ok := selectBestOffer(item, itemOffers)
		if !ok {
			vendor.CanFulfillCompletely = false
			continue
		}

		aggregatedItem, err := buildItemOffer(item, best)
		if err != nil {
			// Incompatible units skip this single item only.
			vendor.CanFulfillCompletely = false
			continue
		}

		vendor.Items = append(vendor.Items, aggregatedItem)
		vendor.TotalPrice += aggregatedItem.PriceTotal
		if best.LeadTimeMinutes > vendor.LeadTimeMinutes {
			vendor.LeadTimeMinutes = best.LeadTimeMinutes
		}
		if vendor.Currency == "" {
			vendor.Currency = best.Currency
		}
	}

	return vendor
}

// selectBestOffer applies the preference rule: an exact offer wins when
// the item allows fractional handling, even if a pack offer is cheaper;
// otherwise the pack offer with the lowest computed total wins.
func selectBestOffer(item models.RequestItem, offers []models.VendorOffer) (models.VendorOffer, bool) {
	if item.AllowFractionalByUser {
		var bestExact *models.VendorOffer
		for i := range offers {
			if offers[i].Type != models.OfferTypeExactQty {
				continue
			}
			if bestExact == nil || offers[i].PriceTotal < bestExact.PriceTotal {
				bestExact = &offers[i]
			}
		}
		if bestExact != nil {
			return *bestExact, true
		}
	}

	var bestPack *models.VendorOffer
	bestTotal := 0.0
	for i := range offers {
		offer := offers[i]
		if offer.Type != models.OfferTypePack {
			continue
		}
		calc, err := CalculatePackFulfillment(
			item.RequestedQtyValue, item.RequestedQtyUnit,
			offer.PackValue, offer.PackUnit, offer.PricePerPack,
			item.AllowFractionalByUser,
		)
		if err != nil {
			continue
		}
		if bestPack == nil || calc.PriceTotal < bestTotal {
			bestPack = &offers[i]
			bestTotal = calc.PriceTotal
		}
	}
	if bestPack != nil {
		return *bestPack, true
	}
	return models.VendorOffer{}, false
}

func buildItemOffer(item models.RequestItem, offer models.VendorOffer) (models.AggregatedItemOffer, error) {
	if offer.Type == models.OfferTypeExactQty {
		out := models.AggregatedItemOffer{
			RequestItemID:       item.RequestItemID,
			ProductName:         item.ProductName,
			RequestedQtyValue:   item.RequestedQtyValue,
			RequestedQtyUnit:    item.RequestedQtyUnit,
			OfferType:           "exact",
			FulfillmentQtyValue: item.RequestedQtyValue,
			FulfillmentQtyUnit:  item.RequestedQtyUnit,
			PriceTotal:          offer.PriceTotal,
			Notes:               offer.Notes,
		}
		if item.RequestedQtyValue > 0 {
			out.PricePerUnit = offer.PriceTotal / item.RequestedQtyValue
		}
		return out, nil
	}

	calc, err := CalculatePackFulfillment(
		item.RequestedQtyValue, item.RequestedQtyUnit,
		offer.PackValue, offer.PackUnit, offer.PricePerPack,
		item.AllowFractionalByUser,
	)
	if err != nil {
		return models.AggregatedItemOffer{}, err
	}

	out := models.AggregatedItemOffer{
		RequestItemID:       item.RequestItemID,
		ProductName:         item.ProductName,
		RequestedQtyValue:   item.RequestedQtyValue,
		RequestedQtyUnit:    item.RequestedQtyUnit,
		OfferType:           calc.OfferType,
		FulfillmentQtyValue: calc.FulfillmentQty,
		FulfillmentQtyUnit:  offer.PackUnit,
		PriceTotal:          calc.PriceTotal,
		PacksNeeded:         calc.PacksNeeded,
		PackValue:           offer.PackValue,
		PackUnit:            offer.PackUnit,
		Notes:               offer.Notes,
	}
	if calc.SurplusQty > 0 {
		out.SurplusQtyValue = calc.SurplusQty
		out.SurplusQtyUnit = offer.PackUnit
	}
	if calc.FulfillmentQty > 0 {
		out.PricePerUnit = calc.PriceTotal / calc.FulfillmentQty
	}
	return out, nil
}
