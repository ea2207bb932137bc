package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	p := Point{Lat: 55.7558, Lon: 37.6173}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_KnownValue(t *testing.T) {
	// Один градус широты на экваторе ~111.2 км.
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 1, Lon: 0}
	d := Distance(a, b)
	assert.InDelta(t, 111195, d, 100)
}

func TestDistance_Symmetric(t *testing.T) {
	a := Point{Lat: 55.7558, Lon: 37.6173}
	b := Point{Lat: 59.9343, Lon: 30.3351}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestMidpoint(t *testing.T) {
	a := Point{Lat: 10, Lon: 20}
	b := Point{Lat: 20, Lon: 40}
	m := Midpoint(a, b)
	assert.Equal(t, Point{Lat: 15, Lon: 30}, m)
}

func TestKey_RoundsToFiveDecimals(t *testing.T) {
	a := Point{Lat: 55.755812345, Lon: 37.617312345}
	b := Point{Lat: 55.755814999, Lon: 37.617314999}

	// Дрожание в шестом знаке не меняет ключ.
	assert.Equal(t, Key(a), Key(b))
	assert.Equal(t, "55.75581:37.61731", Key(a))
}

func TestKey_DistinctPoints(t *testing.T) {
	a := Point{Lat: 55.75581, Lon: 37.61731}
	b := Point{Lat: 55.75582, Lon: 37.61731}
	assert.NotEqual(t, Key(a), Key(b))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Point{Lat: 0, Lon: 0}))
	assert.True(t, Valid(Point{Lat: -90, Lon: 180}))
	assert.False(t, Valid(Point{Lat: 91, Lon: 0}))
	assert.False(t, Valid(Point{Lat: 0, Lon: -181}))
}
