// Package models defines the data structures shared across the matching,
// quoting and dispatch modules, along with the sentinel errors they return.
package models

import "time"

// StoreType is the enumerated category of a vendor's store. Capability
// checks key off this value, never off free-text names.
type StoreType string

const (
	StoreGrocery      StoreType = "grocery"
	StoreSupermarket  StoreType = "supermarket"
	StoreMedical      StoreType = "medical"
	StorePharmacy     StoreType = "pharmacy"
	StoreRestaurant   StoreType = "restaurant"
	StoreCafe         StoreType = "cafe"
	StoreCloudKitchen StoreType = "cloud_kitchen"
	StoreBakery       StoreType = "bakery"
	StoreFastFood     StoreType = "fast_food"
	StoreFineDining   StoreType = "fine_dining"
	StoreFoodTruck    StoreType = "food_truck"
	StoreCoffeeShop   StoreType = "coffee_shop"
	StoreBar          StoreType = "bar"
	StorePub          StoreType = "pub"
)

// StoreCapabilities describes what a store type can handle, resolved from
// a lookup table in the matching module.
type StoreCapabilities struct {
	StoreType            StoreType `json:"store_type"`
	HasGroceryProcessing bool      `json:"has_grocery_processing"`
	Categories           []string  `json:"categories"`
}

// VendorLocation is a vendor as read from the vendor source: a named
// point on the map with a store type and an active flag.
type VendorLocation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreType StoreType `json:"store_type"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RouteBasedVendorCandidate is a vendor admitted by the candidate filter,
// annotated with its geometric relation to the user's route.
//
// IsOnRoute is a stricter "directly on path" flag used for UI emphasis;
// admissibility is decided by the detour tolerance alone.
type RouteBasedVendorCandidate struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	StoreType             StoreType `json:"store_type"`
	Address               string    `json:"address"`
	DistanceFromRouteKm   float64   `json:"distance_from_route_km"`
	DetourDistanceKm      float64   `json:"detour_distance_km"`
	EstimatedExtraMinutes float64   `json:"estimated_extra_minutes"`
	RoutePosition         float64   `json:"route_position"`
	IsOnRoute             bool      `json:"is_on_route"`
}
