package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы инцидентов, которые принимает система.
const (
	IncidentTypeAssault  = "assault"
	IncidentTypeCrash    = "crash"
	IncidentTypeHomicide = "homicide"
	IncidentTypeRobbery  = "robbery"
	IncidentTypeOther    = "other"
)

// Статусы инцидента. Записи об инцидентах не удаляются, меняется только статус.
const (
	IncidentStatusInProgress = "in_progress"
	IncidentStatusResolved   = "resolved"
	IncidentStatusUnresolved = "unresolved"
)

// Incident представляет зарегистрированный инцидент с геопривязкой.
// Severity — целое от 1 до 5, OccurredAt — момент самого инцидента,
// а не момент регистрации.
type Incident struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    int       `json:"severity"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
