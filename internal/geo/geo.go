// Package geo содержит чистые геометрические предикаты для зон и границ события.
// Полигоны проверяются в плоскости lon/lat: зоны мероприятия малы, искажение проекции пренебрежимо.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/shenikar/raynet_coordinator/internal/models"
)

// EarthRadiusMeters - средний радиус Земли (IUGG)
const EarthRadiusMeters = 6371008.8

const epsilon = 1e-9

var (
	ErrLongitudeOutOfRange = errors.New("longitude must be within [-180, 180]")
	ErrLatitudeOutOfRange  = errors.New("latitude must be within [-90, 90]")
	ErrTooFewVertices      = errors.New("polygon must contain at least 3 vertices")
	ErrDegeneratePolygon   = errors.New("polygon vertices are collinear or repeated")
	ErrSelfIntersecting    = errors.New("polygon edges must not intersect")
)

// ValidatePoint проверяет диапазоны долготы и широты
func ValidatePoint(p models.Point) error {
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return ErrLongitudeOutOfRange
	}
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return ErrLatitudeOutOfRange
	}
	return nil
}

// ValidatePolygon отклоняет вырожденные полигоны при создании зоны,
// чтобы Contains никогда не встречал их при вычислении.
func ValidatePolygon(vertices []models.Point) error {
	for i, v := range vertices {
		if err := ValidatePoint(v); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}

	ring := openRing(vertices)
	n := len(ring)
	if n < 3 {
		return ErrTooFewVertices
	}

	for i := 0; i < n; i++ {
		if samePoint(ring[i], ring[(i+1)%n]) {
			return ErrDegeneratePolygon
		}
	}
	if math.Abs(doubleArea(ring)) < epsilon {
		return ErrDegeneratePolygon
	}

	for i := 0; i < n; i++ {
		a1, a2 := ring[i], ring[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// первое и последнее ребро смежные
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(a1, a2, ring[j], ring[(j+1)%n]) {
				return ErrSelfIntersecting
			}
		}
	}
	return nil
}

// Contains - попадание точки в полигон зоны методом трассировки луча.
// Точка на ребре или в вершине считается внутри.
func Contains(zone models.Zone, p models.Point) bool {
	return ContainsPolygon(zone.Coordinates, p)
}

func ContainsPolygon(vertices []models.Point, p models.Point) bool {
	ring := openRing(vertices)
	n := len(ring)
	if n < 3 {
		return false
	}

	for i := 0; i < n; i++ {
		if onSegment(ring[i], ring[(i+1)%n], p) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if p.Lon < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsRadius - попадание точки в круг по расстоянию большого круга
func ContainsRadius(center models.Point, radiusMeters float64, p models.Point) bool {
	if radiusMeters < 0 {
		return false
	}
	return Distance(center, p) <= radiusMeters
}

// Distance возвращает расстояние в метрах по формуле гаверсинусов
func Distance(a, b models.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ZonesContaining возвращает зоны, содержащие точку, в порядке их объявления
func ZonesContaining(zones []models.Zone, p models.Point) []models.Zone {
	var result []models.Zone
	for _, z := range zones {
		if Contains(z, p) {
			result = append(result, z)
		}
	}
	return result
}

// openRing отбрасывает замыкающую вершину, если она повторяет первую
func openRing(vertices []models.Point) []models.Point {
	n := len(vertices)
	if n > 1 && samePoint(vertices[0], vertices[n-1]) {
		return vertices[:n-1]
	}
	return vertices
}

func samePoint(a, b models.Point) bool {
	return math.Abs(a.Lon-b.Lon) < epsilon && math.Abs(a.Lat-b.Lat) < epsilon
}

func doubleArea(ring []models.Point) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.Lon*b.Lat - b.Lon*a.Lat
	}
	return sum
}

func cross(a, b, c models.Point) float64 {
	return (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
}

func orientation(a, b, c models.Point) int {
	v := cross(a, b, c)
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	}
	return 0
}

func withinBox(a, b, p models.Point) bool {
	return p.Lon >= math.Min(a.Lon, b.Lon)-epsilon && p.Lon <= math.Max(a.Lon, b.Lon)+epsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-epsilon && p.Lat <= math.Max(a.Lat, b.Lat)+epsilon
}

func onSegment(a, b, p models.Point) bool {
	return orientation(a, b, p) == 0 && withinBox(a, b, p)
}

func segmentsIntersect(p1, p2, p3, p4 models.Point) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}
	return (o1 == 0 && withinBox(p1, p2, p3)) ||
		(o2 == 0 && withinBox(p1, p2, p4)) ||
		(o3 == 0 && withinBox(p3, p4, p1)) ||
		(o4 == 0 && withinBox(p3, p4, p2))
}
