package matching

import (
	"context"
	"fmt"
	"sort"

	"thru-backend/internal/models"

	"go.uber.org/zap"
)

// Config holds the geometry tunables. Assumed speeds are rough city-scale
// averages, not a structural contract.
type Config struct {
	SpeedsKmh          map[models.TransportMode]float64
	DwellMinutes       float64
	OnRouteThresholdKm float64
}

// DefaultConfig returns the stock tunables used when none are configured.
func DefaultConfig() Config {
	return Config{
		SpeedsKmh: map[models.TransportMode]float64{
			models.TransportDriving: 40,
			models.TransportTransit: 25,
			models.TransportWalking: 5,
		},
		DwellMinutes:       5,
		OnRouteThresholdKm: 0.5,
	}
}

// ServiceInterface defines the candidate filter operations.
type ServiceInterface interface {
	// FindCandidateVendors returns vendors within the route's detour
	// tolerance, filtered to the requested store types, sorted ascending
	// by (detour distance, distance from route).
	FindCandidateVendors(ctx context.Context, route *models.Route, storeTypes []models.StoreType) ([]models.RouteBasedVendorCandidate, error)
	// VendorName resolves a display name for a vendor, falling back to
	// the ID when the vendor is unknown.
	VendorName(ctx context.Context, vendorID string) string
}

// Service implements the candidate filter over a vendor source.
type Service struct {
	vendors VendorSourceInterface
	cfg     Config
	logger  *zap.Logger
}

// NewService creates a new matching service.
func NewService(vendors VendorSourceInterface, cfg Config, logger *zap.Logger) *Service {
	if cfg.SpeedsKmh == nil {
		cfg = DefaultConfig()
	}
	return &Service{vendors: vendors, cfg: cfg, logger: logger}
}

// EstimatedExtraMinutes converts a detour distance into added travel time
// for the given transport mode, plus a fixed dwell time for the stop.
func (s *Service) EstimatedExtraMinutes(detourKm float64, mode models.TransportMode) float64 {
	speed, ok := s.cfg.SpeedsKmh[mode]
	if !ok || speed <= 0 {
		speed = s.cfg.SpeedsKmh[models.TransportDriving]
	}
	return detourKm/speed*60 + s.cfg.DwellMinutes
}

// FindCandidateVendors filters the vendor source down to admissible,
// type-matching candidates and ranks them.
func (s *Service) FindCandidateVendors(ctx context.Context, route *models.Route, storeTypes []models.StoreType) ([]models.RouteBasedVendorCandidate, error) {
	if route == nil || len(route.Polyline) < 2 {
		return nil, models.ErrDegenerateRoute
	}

	vendors, err := s.vendors.ListActiveVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FindCandidateVendors: %w", err)
	}

	wantType := make(map[models.StoreType]bool, len(storeTypes))
	for _, t := range storeTypes {
		wantType[t] = true
	}

	candidates := make([]models.RouteBasedVendorCandidate, 0, len(vendors))
	for _, v := range vendors {
		if len(wantType) > 0 && !wantType[v.StoreType] {
			continue
		}

		analysis := AnalyzePoint(route, models.RoutePoint{Latitude: v.Latitude, Longitude: v.Longitude})
		if analysis.DistanceFromRouteKm > route.DetourToleranceKm {
			continue
		}

		candidates = append(candidates, models.RouteBasedVendorCandidate{
			ID:                    v.ID,
			Name:                  v.Name,
			StoreType:             v.StoreType,
			Address:               v.Address,
			DistanceFromRouteKm:   analysis.DistanceFromRouteKm,
			DetourDistanceKm:      analysis.DetourDistanceKm,
			EstimatedExtraMinutes: s.EstimatedExtraMinutes(analysis.DetourDistanceKm, route.TransportMode),
			RoutePosition:         analysis.RoutePosition,
			IsOnRoute:             analysis.DistanceFromRouteKm < s.cfg.OnRouteThresholdKm,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DetourDistanceKm != candidates[j].DetourDistanceKm {
			return candidates[i].DetourDistanceKm < candidates[j].DetourDistanceKm
		}
		return candidates[i].DistanceFromRouteKm < candidates[j].DistanceFromRouteKm
	})

	s.logger.Info("candidate vendors matched",
		zap.Int("total_vendors", len(vendors)),
		zap.Int("candidates", len(candidates)),
		zap.Float64("tolerance_km", route.DetourToleranceKm))

	return candidates, nil
}

// VendorName looks up a vendor's display name for aggregation output.
func (s *Service) VendorName(ctx context.Context, vendorID string) string {
	v, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil || v.Name == "" {
		return vendorID
	}
	return v.Name
}
