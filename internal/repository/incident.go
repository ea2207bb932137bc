package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safe_route_system/internal/models"
	"github.com/shenikar/safe_route_system/internal/service"
)

const incidentColumns = `
		id,
		type,
		description,
		ST_Y(location::geometry) as latitude,
		ST_X(location::geometry) as longitude,
		severity,
		status,
		occurred_at,
		created_at,
		updated_at`

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (type, description, location, severity, status, occurred_at)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, $7)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Description,
		incident.Longitude,
		incident.Latitude,
		incident.Severity,
		incident.Status,
		incident.OccurredAt,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident := &models.Incident{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.Type,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Severity,
		&incident.Status,
		&incident.OccurredAt,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// UpdateStatus меняет статус инцидента. Остальные поля неизменяемы
// после создания.
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE incidents SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update incident status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s not found for status update", id)
	}
	return nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `SELECT ` + incidentColumns + `
		FROM incidents
		ORDER BY occurred_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	return scanIncidents(rows, "ListIncidents")
}

// FindNear возвращает инциденты в радиусе radiusM метров от точки,
// произошедшие не раньше since.
func (r *IncidentRepository) FindNear(ctx context.Context, lat, lon, radiusM float64, since time.Time) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			occurred_at >= $1
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
				$4
			);
	`
	rows, err := r.db.Query(ctx, query, since, lon, lat, radiusM)
	if err != nil {
		return nil, fmt.Errorf("failed to find incidents near point: %w", err)
	}
	defer rows.Close()

	return scanIncidents(rows, "FindNear")
}

// FindInBBox возвращает инциденты внутри ограничивающего прямоугольника.
func (r *IncidentRepository) FindInBBox(ctx context.Context, minLat, minLon, maxLat, maxLon float64) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE location::geometry && ST_MakeEnvelope($1, $2, $3, $4, 4326);
	`
	rows, err := r.db.Query(ctx, query, minLon, minLat, maxLon, maxLat)
	if err != nil {
		return nil, fmt.Errorf("failed to find incidents in bbox: %w", err)
	}
	defer rows.Close()

	return scanIncidents(rows, "FindInBBox")
}

// SaveRouteRequest сохраняет запись о выполненном расчёте маршрута в бд
func (r *IncidentRepository) SaveRouteRequest(ctx context.Context, log *models.RouteRequestLog) error {
	query := `
		INSERT INTO route_requests (origin_lat, origin_lon, dest_lat, dest_lon, danger_level, found)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, requested_at;
	`
	err := r.db.QueryRow(ctx, query,
		log.OriginLat,
		log.OriginLon,
		log.DestLat,
		log.DestLon,
		log.DangerLevel,
		log.Found,
	).Scan(&log.ID, &log.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to save route request: %w", err)
	}
	return nil
}

// GetRouteRequestStats возвращает количество расчётов маршрутов за окно в минутах
func (r *IncidentRepository) GetRouteRequestStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM route_requests
		WHERE requested_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get route request stats: %w", err)
	}
	return count, nil
}

func scanIncidents(rows pgx.Rows, op string) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		err := rows.Scan(
			&incident.ID,
			&incident.Type,
			&incident.Description,
			&incident.Latitude,
			&incident.Longitude,
			&incident.Severity,
			&incident.Status,
			&incident.OccurredAt,
			&incident.CreatedAt,
			&incident.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in %s: %w", op, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return incidents, nil
}
