// Package matching selects and ranks vendors that lie within an
// acceptable detour of a user's travel route.
package matching

import (
	"math"

	"thru-backend/internal/models"
)

const earthRadiusKm = 6371.0

// PointAnalysis is the geometric relation of a single point to a route,
// computed in one pass over the polyline.
type PointAnalysis struct {
	DistanceFromRouteKm float64
	DetourDistanceKm    float64
	RoutePosition       float64
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b models.RoutePoint) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLng := deg2rad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

// projectOntoSegment projects p onto the segment (a, b), clamped to the
// endpoints, using a locally-flat approximation: longitudes are scaled by
// cos(latitude) so one unit means the same ground distance on both axes.
// Adequate at city scale; not for transcontinental routes.
func projectOntoSegment(p, a, b models.RoutePoint) (closest models.RoutePoint, t float64) {
	latScale := math.Cos(deg2rad((a.Latitude + b.Latitude) / 2))

	px, py := p.Longitude*latScale, p.Latitude
	ax, ay := a.Longitude*latScale, a.Latitude
	bx, by := b.Longitude*latScale, b.Latitude

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// Zero-length segment: the closest point is the endpoint itself.
		return a, 0
	}

	t = ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return models.RoutePoint{
		Latitude:  a.Latitude + t*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + t*(b.Longitude-a.Longitude),
	}, t
}

// AnalyzePoint computes the distance from the route, the detour cost of a
// side trip, and the normalized route position for point p.
//
// The detour formula dist(A,P) + dist(P,B) - dist(A,B) on the nearest
// segment is a local insertion-cost approximation: it does not model
// one-way restrictions or re-routing beyond the insertion point.
func AnalyzePoint(route *models.Route, p models.RoutePoint) PointAnalysis {
	polyline := route.Polyline

	minDist := math.Inf(1)
	nearestSeg := 0
	var nearestT float64

	for i := 0; i < len(polyline)-1; i++ {
		closest, t := projectOntoSegment(p, polyline[i], polyline[i+1])
		d := HaversineKm(p, closest)
		if d < minDist {
			minDist = d
			nearestSeg = i
			nearestT = t
		}
	}

	a, b := polyline[nearestSeg], polyline[nearestSeg+1]
	detour := HaversineKm(a, p) + HaversineKm(p, b) - HaversineKm(a, b)
	if detour < 0 {
		// Floating-point noise near collinear points.
		detour = 0
	}

	return PointAnalysis{
		DistanceFromRouteKm: minDist,
		DetourDistanceKm:    detour,
		RoutePosition:       routePosition(polyline, nearestSeg, nearestT),
	}
}

// routePosition returns cumulative length up to the nearest projected
// point over total route length, clamped to [0, 1]. Start maps to 0 and
// destination to 1; a zero-length route reports 0.
func routePosition(polyline []models.RoutePoint, nearestSeg int, t float64) float64 {
	total := 0.0
	toProjection := 0.0
	for i := 0; i < len(polyline)-1; i++ {
		segLen := HaversineKm(polyline[i], polyline[i+1])
		if i < nearestSeg {
			toProjection += segLen
		} else if i == nearestSeg {
			toProjection += t * segLen
		}
		total += segLen
	}
	if total == 0 {
		return 0
	}
	pos := toProjection / total
	return math.Max(0, math.Min(1, pos))
}
