// Package quoting turns validated vendor responses into ranked aggregate
// quotes: unit normalization, pack fulfillment math, per-vendor offer
// selection, and the offer collection window.
package quoting

import (
	"fmt"

	"thru-backend/internal/models"
)

// conversionFactors maps (from, to) to a multiplier. Only same-family
// conversions exist; pcs converts to nothing but itself.
var conversionFactors = map[[2]models.Unit]float64{
	{models.UnitG, models.UnitKg}: 0.001,
	{models.UnitKg, models.UnitG}: 1000,
	{models.UnitMl, models.UnitL}: 0.001,
	{models.UnitL, models.UnitMl}: 1000,
}

// Convert converts a value between compatible units. It returns
// models.ErrUnsupportedConversion when the units are not in the same
// family (e.g. kg to pcs).
func Convert(value float64, from, to models.Unit) (float64, error) {
	if from == to {
		return value, nil
	}
	if factor, ok := conversionFactors[[2]models.Unit{from, to}]; ok {
		return value * factor, nil
	}
	return 0, fmt.Errorf("convert %s to %s: %w", from, to, models.ErrUnsupportedConversion)
}

// NormalizeItem canonicalizes an item's quantity: g >= 1000 becomes kg
// and ml >= 1000 becomes l. It also hard-enforces the business rule that
// pcs quantities are never fractional, whatever the user flag says.
// Normalizing twice yields the same result as once.
func NormalizeItem(item models.RequestItem) models.RequestItem {
	switch item.RequestedQtyUnit {
	case models.UnitG:
		if item.RequestedQtyValue >= 1000 {
			item.RequestedQtyValue *= 0.001
			item.RequestedQtyUnit = models.UnitKg
		}
	case models.UnitMl:
		if item.RequestedQtyValue >= 1000 {
			item.RequestedQtyValue *= 0.001
			item.RequestedQtyUnit = models.UnitL
		}
	case models.UnitPcs:
		item.AllowFractionalByUser = false
	}
	return item
}

// NormalizeItems normalizes a whole cart, filling in suggested packs for
// items that carry none.
func NormalizeItems(items []models.RequestItem) []models.RequestItem {
	normalized := make([]models.RequestItem, len(items))
	for i, item := range items {
		n := NormalizeItem(item)
		if len(n.SuggestedPacks) == 0 {
			n.SuggestedPacks = SuggestedPacksFor(n.RequestedQtyUnit)
		}
		normalized[i] = n
	}
	return normalized
}

// defaultPacks is the pack ladder offered to vendors per unit.
var defaultPacks = map[models.Unit][]models.SuggestedPack{
	models.UnitKg: {
		{PackValue: 0.25, PackUnit: models.UnitKg},
		{PackValue: 0.5, PackUnit: models.UnitKg},
		{PackValue: 1, PackUnit: models.UnitKg},
		{PackValue: 2, PackUnit: models.UnitKg},
	},
	models.UnitG: {
		{PackValue: 250, PackUnit: models.UnitG},
		{PackValue: 500, PackUnit: models.UnitG},
		{PackValue: 1000, PackUnit: models.UnitG},
	},
	models.UnitL: {
		{PackValue: 0.25, PackUnit: models.UnitL},
		{PackValue: 0.5, PackUnit: models.UnitL},
		{PackValue: 1, PackUnit: models.UnitL},
	},
	models.UnitMl: {
		{PackValue: 250, PackUnit: models.UnitMl},
		{PackValue: 500, PackUnit: models.UnitMl},
		{PackValue: 1000, PackUnit: models.UnitMl},
	},
	models.UnitPcs: {
		{PackValue: 1, PackUnit: models.UnitPcs},
		{PackValue: 2, PackUnit: models.UnitPcs},
		{PackValue: 4, PackUnit: models.UnitPcs},
		{PackValue: 8, PackUnit: models.UnitPcs},
	},
}

// SuggestedPacksFor returns the default pack sizes for a unit.
func SuggestedPacksFor(unit models.Unit) []models.SuggestedPack {
	packs := defaultPacks[unit]
	out := make([]models.SuggestedPack, len(packs))
	copy(out, packs)
	return out
}
