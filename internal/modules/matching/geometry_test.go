package matching

import (
	"math"
	"testing"

	"thru-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// A straight west-to-east route across Bengaluru, roughly 10.8 km long.
func testRoute(t *testing.T) *models.Route {
	t.Helper()
	route, err := models.NewRoute([]models.RoutePoint{
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.90, Longitude: 77.55},
		{Latitude: 12.90, Longitude: 77.60},
	}, 2.0, models.TransportDriving)
	if err != nil {
		t.Fatalf("unexpected error building route: %v", err)
	}
	return route
}

func TestHaversineKm(t *testing.T) {
	// One degree of latitude is about 111.2 km everywhere.
	d := HaversineKm(
		models.RoutePoint{Latitude: 0, Longitude: 0},
		models.RoutePoint{Latitude: 1, Longitude: 0},
	)
	assert.InDelta(t, 111.2, d, 0.2)

	// Zero distance for identical points.
	p := models.RoutePoint{Latitude: 12.9, Longitude: 77.5}
	assert.Zero(t, HaversineKm(p, p))
}

func TestAnalyzePointOnRouteStart(t *testing.T) {
	route := testRoute(t)

	analysis := AnalyzePoint(route, route.Start)

	assert.InDelta(t, 0, analysis.DistanceFromRouteKm, 1e-9)
	assert.InDelta(t, 0, analysis.DetourDistanceKm, 1e-9)
	assert.InDelta(t, 0, analysis.RoutePosition, 1e-9)
}

func TestAnalyzePointOnRouteEnd(t *testing.T) {
	route := testRoute(t)

	analysis := AnalyzePoint(route, route.Destination)

	assert.InDelta(t, 0, analysis.DistanceFromRouteKm, 1e-9)
	assert.InDelta(t, 1, analysis.RoutePosition, 1e-9)
}

func TestAnalyzePointPerpendicularOffset(t *testing.T) {
	route := testRoute(t)

	// 0.005 deg of latitude north of the midpoint, about 556 m off route.
	p := models.RoutePoint{Latitude: 12.905, Longitude: 77.55}
	analysis := AnalyzePoint(route, p)

	assert.InDelta(t, 0.556, analysis.DistanceFromRouteKm, 0.01)
	assert.InDelta(t, 0.5, analysis.RoutePosition, 0.01)
	assert.Greater(t, analysis.DetourDistanceKm, 0.0)
	// Going out and back can never cost less than twice the offset minus
	// the saved along-route distance, and never more than twice the offset.
	assert.LessOrEqual(t, analysis.DetourDistanceKm, 2*analysis.DistanceFromRouteKm+1e-9)
}

func TestAnalyzePointBeyondDestinationClamps(t *testing.T) {
	route := testRoute(t)

	// Well past the destination along the same line.
	p := models.RoutePoint{Latitude: 12.90, Longitude: 77.70}
	analysis := AnalyzePoint(route, p)

	assert.Equal(t, 1.0, analysis.RoutePosition)
	assert.Greater(t, analysis.DistanceFromRouteKm, 0.0)
}

func TestAnalyzePointBeforeStartClamps(t *testing.T) {
	route := testRoute(t)

	p := models.RoutePoint{Latitude: 12.90, Longitude: 77.40}
	analysis := AnalyzePoint(route, p)

	assert.Equal(t, 0.0, analysis.RoutePosition)
}

func TestAnalyzePointPositionMonotonicAlongRoute(t *testing.T) {
	route := testRoute(t)

	prev := -1.0
	for _, lng := range []float64{77.50, 77.52, 77.55, 77.57, 77.60} {
		analysis := AnalyzePoint(route, models.RoutePoint{Latitude: 12.901, Longitude: lng})
		assert.GreaterOrEqual(t, analysis.RoutePosition, prev)
		assert.GreaterOrEqual(t, analysis.RoutePosition, 0.0)
		assert.LessOrEqual(t, analysis.RoutePosition, 1.0)
		prev = analysis.RoutePosition
	}
}

func TestAnalyzePointDetourNeverNegative(t *testing.T) {
	route := testRoute(t)

	// Points exactly on the line are where floating-point noise would
	// otherwise push the detour below zero.
	for _, lng := range []float64{77.50, 77.525, 77.55, 77.575, 77.60} {
		analysis := AnalyzePoint(route, models.RoutePoint{Latitude: 12.90, Longitude: lng})
		assert.GreaterOrEqual(t, analysis.DetourDistanceKm, 0.0)
	}
}

func TestProjectOntoSegmentZeroLength(t *testing.T) {
	a := models.RoutePoint{Latitude: 12.90, Longitude: 77.50}
	p := models.RoutePoint{Latitude: 12.95, Longitude: 77.55}

	closest, tVal := projectOntoSegment(p, a, a)

	assert.Equal(t, a, closest)
	assert.Zero(t, tVal)
}

func TestAnalyzePointDuplicatePolylinePoints(t *testing.T) {
	route, err := models.NewRoute([]models.RoutePoint{
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.90, Longitude: 77.60},
	}, 2.0, models.TransportDriving)
	if err != nil {
		t.Fatalf("unexpected error building route: %v", err)
	}

	analysis := AnalyzePoint(route, models.RoutePoint{Latitude: 12.90, Longitude: 77.55})

	assert.False(t, math.IsNaN(analysis.RoutePosition))
	assert.InDelta(t, 0, analysis.DistanceFromRouteKm, 1e-9)
	assert.InDelta(t, 0.5, analysis.RoutePosition, 0.01)
}
