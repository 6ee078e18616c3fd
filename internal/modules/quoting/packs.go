package quoting

import (
	"math"

	"thru-backend/internal/models"
)

// PackFulfillment is the computed cost of covering a requested quantity
// with a vendor's pack offer, all quantities expressed in the pack unit.
type PackFulfillment struct {
	// PacksNeeded is the whole-pack count; 0 for fractional sales.
	PacksNeeded int
	// PacksEquivalent is the possibly-fractional pack count actually
	// charged for.
	PacksEquivalent float64
	// FulfillmentQty is the quantity the buyer ends up with.
	FulfillmentQty float64
	// SurplusQty is the excess beyond the request caused by whole-pack
	// rounding; always 0 for fractional sales.
	SurplusQty float64
	PriceTotal float64
	// OfferType is "pack" when rounding produced surplus, "exact" otherwise.
	OfferType string
}

// CalculatePackFulfillment converts the requested quantity into the pack
// unit and prices it against the pack.
//
// Fractional sale applies only when the user allows it and the unit is
// not pcs: the price scales linearly with the fractional pack count and
// there is no surplus. Otherwise packs round up to a whole count, at
// least 1 for any positive request.
func CalculatePackFulfillment(
	requestedQty float64,
	requestedUnit models.Unit,
	packValue float64,
	packUnit models.Unit,
	pricePerPack float64,
	allowFractional bool,
) (PackFulfillment, error) {
	qtyInPackUnit, err := Convert(requestedQty, requestedUnit, packUnit)
	if err != nil {
		return PackFulfillment{}, err
	}

	if allowFractional && packUnit != models.UnitPcs {
		equivalent := qtyInPackUnit / packValue
		return PackFulfillment{
			PacksEquivalent: equivalent,
			FulfillmentQty:  qtyInPackUnit,
			PriceTotal:      equivalent * pricePerPack,
			OfferType:       "exact",
		}, nil
	}

	packsNeeded := int(math.Ceil(qtyInPackUnit / packValue))
	if packsNeeded < 1 {
		packsNeeded = 1
	}
	fulfillment := float64(packsNeeded) * packValue
	surplus := fulfillment - qtyInPackUnit
	if surplus < 0 {
		surplus = 0
	}

	offerType := "exact"
	if surplus > 0 {
		offerType = "pack"
	}

	return PackFulfillment{
		PacksNeeded:     packsNeeded,
		PacksEquivalent: float64(packsNeeded),
		FulfillmentQty:  fulfillment,
		SurplusQty:      surplus,
		PriceTotal:      float64(packsNeeded) * pricePerPack,
		OfferType:       offerType,
	}, nil
}
