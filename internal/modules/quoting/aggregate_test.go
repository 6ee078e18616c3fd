package quoting

import (
	"testing"
	"time"

	"thru-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregationRequest() models.VendorRequestPayload {
	return models.VendorRequestPayload{
		RequestID: "req-1",
		UserID:    "user-1",
		Items: []models.RequestItem{
			{
				RequestItemID:         "rice",
				ProductName:           "Basmati Rice",
				RequestedQtyValue:     2.5,
				RequestedQtyUnit:      models.UnitKg,
				AllowFractionalByUser: true,
			},
			{
				RequestItemID:     "milk",
				ProductName:       "Milk",
				RequestedQtyValue: 1,
				RequestedQtyUnit:  models.UnitL,
			},
		},
		DeadlineUTC: time.Now().UTC().Add(30 * time.Minute),
	}
}

func packOffer(itemID string, packValue float64, packUnit models.Unit, pricePerPack, leadTime float64) models.VendorOffer {
	return models.VendorOffer{
		Type:            models.OfferTypePack,
		RequestItemID:   itemID,
		PackValue:       packValue,
		PackUnit:        packUnit,
		PricePerPack:    pricePerPack,
		Currency:        "INR",
		LeadTimeMinutes: leadTime,
	}
}

func exactOffer(itemID string, priceTotal, leadTime float64) models.VendorOffer {
	return models.VendorOffer{
		Type:            models.OfferTypeExactQty,
		RequestItemID:   itemID,
		PriceTotal:      priceTotal,
		Currency:        "INR",
		LeadTimeMinutes: leadTime,
	}
}

func TestAggregateOffersExactPreferredWhenFractionalAllowed(t *testing.T) {
	request := aggregationRequest()

	// The pack path would cost 3 * 35 = 105, cheaper than the exact 110.
	// The exact offer still wins because the user allows fractional.
	responses := []models.VendorResponsePayload{
		{
			RequestID: "req-1",
			VendorID:  "v1",
			Offers: []models.VendorOffer{
				exactOffer("rice", 110, 20),
				packOffer("rice", 1, models.UnitKg, 35, 20),
			},
		},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	require.Len(t, offers[0].Items, 1)

	item := offers[0].Items[0]
	assert.Equal(t, "exact", item.OfferType)
	assert.InDelta(t, 110, item.PriceTotal, 1e-9)
	assert.InDelta(t, 2.5, item.FulfillmentQtyValue, 1e-9)
	assert.Zero(t, item.SurplusQtyValue)
	assert.InDelta(t, 44, item.PricePerUnit, 1e-9)
}

func TestAggregateOffersCheapestPackWhenNotFractional(t *testing.T) {
	request := aggregationRequest()

	// Milk does not allow fractional: the cheapest computed pack total
	// wins, not the cheapest per-pack price.
	responses := []models.VendorResponsePayload{
		{
			RequestID: "req-1",
			VendorID:  "v1",
			Offers: []models.VendorOffer{
				// 1 l needs four 0.25 l packs at 12 each = 48.
				packOffer("milk", 0.25, models.UnitL, 12, 15),
				// One whole liter pack at 45 beats that.
				packOffer("milk", 1, models.UnitL, 45, 15),
			},
		},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)

	var milk *models.AggregatedItemOffer
	for i := range offers[0].Items {
		if offers[0].Items[i].RequestItemID == "milk" {
			milk = &offers[0].Items[i]
		}
	}
	require.NotNil(t, milk)
	assert.InDelta(t, 45, milk.PriceTotal, 1e-9)
	assert.Equal(t, 1, milk.PacksNeeded)
	assert.Zero(t, milk.SurplusQtyValue)
}

func TestAggregateOffersRankingByPriceThenLeadTime(t *testing.T) {
	request := aggregationRequest()

	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "pricey", Offers: []models.VendorOffer{exactOffer("rice", 200, 10)}},
		{RequestID: "req-1", VendorID: "slow", Offers: []models.VendorOffer{exactOffer("rice", 100, 45)}},
		{RequestID: "req-1", VendorID: "fast", Offers: []models.VendorOffer{exactOffer("rice", 100, 15)}},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 3)

	// Ties on price break by lead time; the cheaper-but-slower vendor
	// still outranks the pricier one.
	assert.Equal(t, "fast", offers[0].VendorID)
	assert.Equal(t, "slow", offers[1].VendorID)
	assert.Equal(t, "pricey", offers[2].VendorID)
}

func TestAggregateOffersLastWriteWinsPerVendor(t *testing.T) {
	request := aggregationRequest()

	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{exactOffer("rice", 150, 20)}},
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{exactOffer("rice", 120, 25)}},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	assert.InDelta(t, 120, offers[0].TotalPrice, 1e-9)
	assert.InDelta(t, 25, offers[0].LeadTimeMinutes, 1e-9)
}

func TestAggregateOffersPartialFulfillment(t *testing.T) {
	request := aggregationRequest()

	// v1 answers only rice; it stays visible but flagged incomplete.
	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{exactOffer("rice", 100, 20)}},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	assert.False(t, offers[0].CanFulfillCompletely)
	assert.Len(t, offers[0].Items, 1)
}

func TestAggregateOffersDropsZeroItemVendors(t *testing.T) {
	request := aggregationRequest()

	// An offer referencing an unknown item matches nothing at all.
	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{exactOffer("caviar", 500, 20)}},
		{RequestID: "req-1", VendorID: "v2", Offers: []models.VendorOffer{exactOffer("rice", 100, 20)}},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, "v2", offers[0].VendorID)
}

func TestAggregateOffersSkipsIncompatibleUnits(t *testing.T) {
	request := aggregationRequest()

	// A pack offer in liters against a kg item cannot convert; that item
	// is skipped without sinking the vendor's other items.
	responses := []models.VendorResponsePayload{
		{
			RequestID: "req-1",
			VendorID:  "v1",
			Offers: []models.VendorOffer{
				packOffer("rice", 1, models.UnitL, 40, 20),
				packOffer("milk", 1, models.UnitL, 45, 20),
			},
		},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	require.Len(t, offers[0].Items, 1)
	assert.Equal(t, "milk", offers[0].Items[0].RequestItemID)
	assert.False(t, offers[0].CanFulfillCompletely)
}

func TestAggregateOffersLeadTimeIsMaxOverItems(t *testing.T) {
	request := aggregationRequest()

	responses := []models.VendorResponsePayload{
		{
			RequestID: "req-1",
			VendorID:  "v1",
			Offers: []models.VendorOffer{
				exactOffer("rice", 100, 10),
				packOffer("milk", 1, models.UnitL, 45, 40),
			},
		},
	}

	offers := AggregateOffers(request, responses, nil)
	require.Len(t, offers, 1)
	assert.True(t, offers[0].CanFulfillCompletely)
	assert.InDelta(t, 40, offers[0].LeadTimeMinutes, 1e-9)
	assert.InDelta(t, 145, offers[0].TotalPrice, 1e-9)
}

func TestAggregateOffersVendorNames(t *testing.T) {
	request := aggregationRequest()
	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{exactOffer("rice", 100, 20)}},
		{RequestID: "req-1", VendorID: "v2", Offers: []models.VendorOffer{exactOffer("rice", 90, 20)}},
	}

	offers := AggregateOffers(request, responses, map[string]string{"v1": "Corner Shop"})
	require.Len(t, offers, 2)
	assert.Equal(t, "Corner Shop", offers[1].VendorName)
	// Missing names fall back to the ID.
	assert.Equal(t, "v2", offers[0].VendorName)
}

func TestAggregateOffersIdempotent(t *testing.T) {
	request := aggregationRequest()
	responses := []models.VendorResponsePayload{
		{RequestID: "req-1", VendorID: "v2", Offers: []models.VendorOffer{exactOffer("rice", 100, 20)}},
		{RequestID: "req-1", VendorID: "v1", Offers: []models.VendorOffer{packOffer("milk", 1, models.UnitL, 45, 15)}},
	}

	first := AggregateOffers(request, responses, nil)
	second := AggregateOffers(request, responses, nil)
	assert.Equal(t, first, second)
}
