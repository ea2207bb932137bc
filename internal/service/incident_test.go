package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safe_route_system/internal/models"
	"github.com/shenikar/safe_route_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewIncidentService(repoMock, logger)
	return service.(*incidentService), repoMock
}

func TestCreateIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Type:       models.IncidentTypeRobbery,
		Latitude:   55.7558,
		Longitude:  37.6173,
		Severity:   3,
		OccurredAt: time.Now(),
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, incident).
		Return(nil).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusUnresolved, incident.Status)
}

func TestCreateIncident_KeepsExplicitStatus(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Type:     models.IncidentTypeCrash,
		Severity: 2,
		Status:   models.IncidentStatusInProgress,
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, incident).
		Return(nil).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusInProgress, incident.Status)
}

func TestCreateIncident_RepositoryError(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{Type: models.IncidentTypeOther, Severity: 1}
	expectedErr := fmt.Errorf("db is down")

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, incident).
		Return(expectedErr).
		Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "db is down")
}

func TestGetIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:       incidentID,
		Type:     models.IncidentTypeAssault,
		Severity: 4,
	}

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, fmt.Errorf("incident not found")).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
}

func TestUpdateIncidentStatus_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(&models.Incident{ID: incidentID}, nil).
		Times(1)
	repoMock.EXPECT().
		UpdateStatus(ctx, incidentID, models.IncidentStatusResolved).
		Return(nil).
		Times(1)

	// Действие
	err := service.UpdateIncidentStatus(ctx, incidentID, models.IncidentStatusResolved)

	// Проверки
	require.NoError(t, err)
}

func TestUpdateIncidentStatus_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания: статус не обновляется, если инцидент не найден.
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, fmt.Errorf("incident not found")).
		Times(1)

	// Действие
	err := service.UpdateIncidentStatus(ctx, incidentID, models.IncidentStatusResolved)

	// Проверки
	require.Error(t, err)
}

func TestListIncidents_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expected := []*models.Incident{
		{ID: uuid.New(), Type: models.IncidentTypeRobbery},
		{ID: uuid.New(), Type: models.IncidentTypeCrash},
	}

	// Ожидания
	repoMock.EXPECT().
		ListIncidents(ctx, 2, 10).
		Return(expected, nil).
		Times(1)

	// Действие
	incidents, err := service.ListIncidents(ctx, 2, 10)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}

func TestListIncidents_NormalizesPagination(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания: некорректная пагинация приводится к значениям по умолчанию.
	repoMock.EXPECT().
		ListIncidents(ctx, 1, 20).
		Return([]*models.Incident{}, nil).
		Times(1)

	// Действие
	_, err := service.ListIncidents(ctx, -5, 100500)

	// Проверки
	require.NoError(t, err)
}
