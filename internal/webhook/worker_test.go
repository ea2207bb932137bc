package webhook

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/safe_route_system/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) *AlertWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return &AlertWorker{
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestProcessAlertEvent_RetriesUntilDelivered(t *testing.T) {
	// Подготовка: первая доставка отклоняется, вторая принимается.
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Webhook-Signature"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	worker := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "secret",
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})
	payload := `{"danger_level": 0.8}`

	// Действие
	worker.processAlertEvent(context.Background(), RouteAlertEvent{DangerLevel: 0.8}, payload)

	// Проверки: после отказа выполняется повторная попытка.
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProcessAlertEvent_GivesUpAfterMaxRetries(t *testing.T) {
	// Подготовка
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	worker := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})

	// Действие
	worker.processAlertEvent(context.Background(), RouteAlertEvent{DangerLevel: 0.9}, `{"danger_level": 0.9}`)

	// Проверки
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProcessAlertEvent_SkipsWithoutWebhookURL(t *testing.T) {
	worker := newTestWorker(&config.Config{WebhookMaxRetries: 3})

	// Отсутствие URL не приводит к панике или запросам.
	worker.processAlertEvent(context.Background(), RouteAlertEvent{DangerLevel: 0.8}, `{}`)
}

func TestGenerateHMACSHA256(t *testing.T) {
	// Подпись детерминирована и зависит от секрета.
	first := generateHMACSHA256(`{"danger_level": 0.8}`, "secret")
	second := generateHMACSHA256(`{"danger_level": 0.8}`, "secret")
	other := generateHMACSHA256(`{"danger_level": 0.8}`, "another")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}
