package geo

import (
	"fmt"
	"math"
)

// Радиус Земли в метрах (среднее значение для WGS84).
const earthRadiusM = 6371000.0

// Point — географическая точка (широта, долгота) в WGS84.
// Значимый тип без идентичности.
type Point struct {
	Lat float64
	Lon float64
}

// Distance возвращает расстояние по дуге большого круга между двумя точками
// в метрах (формула гаверсинуса).
func Distance(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// Midpoint возвращает среднюю точку отрезка между a и b.
// Для коротких уличных сегментов арифметическое среднее координат достаточно.
func Midpoint(a, b Point) Point {
	return Point{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

// Key возвращает канонический ключ точки, округлённой до 5 знаков
// после запятой (~1 метр). Округление гарантирует совпадение ключей
// для "одной и той же" точки независимо от дрожания float64.
func Key(p Point) string {
	return fmt.Sprintf("%.5f:%.5f", p.Lat, p.Lon)
}

// Valid проверяет, что координаты точки лежат в допустимых пределах WGS84.
func Valid(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
