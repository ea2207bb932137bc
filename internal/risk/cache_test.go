package risk

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *Cache {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return NewCache(nil, 10*time.Minute, logger)
}

func TestGetOrCompute_ComputesOnce(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	point := geo.Point{Lat: 55.75581, Lon: 37.61731}

	var calls int32
	compute := func() (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0.42, nil
	}

	for i := 0; i < 5; i++ {
		v, err := cache.GetOrCompute(ctx, point, compute)
		require.NoError(t, err)
		assert.Equal(t, 0.42, v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrCompute_NearbyPointsShareKey(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	var calls int32
	compute := func() (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0.3, nil
	}

	// Точки совпадают с точностью до 5 знаков — один ключ кэша.
	a := geo.Point{Lat: 55.755812001, Lon: 37.617312001}
	b := geo.Point{Lat: 55.755812999, Lon: 37.617312999}

	_, err := cache.GetOrCompute(ctx, a, compute)
	require.NoError(t, err)
	_, err = cache.GetOrCompute(ctx, b, compute)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrCompute_DistinctPointsComputedSeparately(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	var calls int32
	compute := func() (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0.3, nil
	}

	_, err := cache.GetOrCompute(ctx, geo.Point{Lat: 55.1, Lon: 37.1}, compute)
	require.NoError(t, err)
	_, err = cache.GetOrCompute(ctx, geo.Point{Lat: 55.2, Lon: 37.2}, compute)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	point := geo.Point{Lat: 55.0, Lon: 37.0}

	computeErr := errors.New("store unavailable")
	_, err := cache.GetOrCompute(ctx, point, func() (float64, error) {
		return 0, computeErr
	})
	require.ErrorIs(t, err, computeErr)

	// После ошибки значение не закешировано и вычисляется заново.
	v, err := cache.GetOrCompute(ctx, point, func() (float64, error) {
		return 0.7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)
}

func TestGetOrCompute_ConcurrentSameValue(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	point := geo.Point{Lat: 55.0, Lon: 37.0}

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cache.GetOrCompute(ctx, point, func() (float64, error) {
				return 0.55, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 0.55, v)
	}
}
