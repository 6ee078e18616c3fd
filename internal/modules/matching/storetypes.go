package matching

import "thru-backend/internal/models"

// Store-type capabilities are a fixed lookup table keyed by the
// enumerated type. Capability checks never inspect free-text names.

var groceryCapable = map[models.StoreType]bool{
	models.StoreGrocery:     true,
	models.StoreSupermarket: true,
	models.StoreMedical:     true,
	models.StorePharmacy:    true,
}

var storeCategories = map[models.StoreType][]string{
	models.StoreGrocery:      {"grocery", "food", "household"},
	models.StoreSupermarket:  {"grocery", "food", "household", "electronics"},
	models.StoreMedical:      {"medical", "pharmacy", "health"},
	models.StorePharmacy:     {"medical", "pharmacy", "health"},
	models.StoreRestaurant:   {"food", "restaurant"},
	models.StoreCafe:         {"food", "cafe", "beverages"},
	models.StoreCloudKitchen: {"food", "restaurant"},
	models.StoreBakery:       {"food", "bakery", "desserts"},
	models.StoreFastFood:     {"food", "fast_food"},
	models.StoreFineDining:   {"food", "restaurant", "fine_dining"},
	models.StoreFoodTruck:    {"food", "fast_food"},
	models.StoreCoffeeShop:   {"food", "cafe", "beverages"},
	models.StoreBar:          {"food", "beverages", "bar"},
	models.StorePub:          {"food", "beverages", "bar"},
}

// Capabilities resolves what a store type can handle. Unknown types get
// no grocery processing and a generic category.
func Capabilities(storeType models.StoreType) models.StoreCapabilities {
	categories, ok := storeCategories[storeType]
	if !ok {
		categories = []string{"general"}
	}
	return models.StoreCapabilities{
		StoreType:            storeType,
		HasGroceryProcessing: groceryCapable[storeType],
		Categories:           categories,
	}
}
