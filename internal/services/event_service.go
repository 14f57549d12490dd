package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	GetAllEvents() ([]models.Event, error)
	GetEventByID(id string) (models.Event, error)
	CreateEvent(event models.Event) (models.Event, error)
	UpdateEvent(id string, event models.Event) (models.Event, error)
	DeleteEvent(id string) error
}

// EventService provides business logic for alumni events.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// scanEvent is a helper to scan an event from a row or rows object.
func scanEvent(scanner interface{ Scan(...interface{}) error }) (models.Event, error) {
	var event models.Event
	var desc, location sql.NullString
	err := scanner.Scan(&event.ID, &event.Title, &desc, &location,
		&event.StartsAt, &event.CreatedBy, &event.CreatedAt)
	if err != nil {
		return event, err
	}
	event.Description = desc.String
	event.Location = location.String
	return event, nil
}

// GetAllEvents retrieves all events, soonest first.
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, location, starts_at, created_by, created_at
		FROM events ORDER BY starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// GetEventByID retrieves a single event by its ID.
func (s *EventService) GetEventByID(id string) (models.Event, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, location, starts_at, created_by, created_at
		FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Event{}, apperrors.NotFound("event not found")
		}
		return models.Event{}, err
	}
	return event, nil
}

// CreateEvent persists a new event.
func (s *EventService) CreateEvent(event models.Event) (models.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return models.Event{}, apperrors.Validation("event title is required")
	}
	if event.StartsAt.IsZero() {
		return models.Event{}, apperrors.Validation("event start time is required")
	}

	event.ID = uuid.New().String()
	stmt, err := s.db.Prepare(`
		INSERT INTO events(id, title, description, location, starts_at, created_by)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Title, event.Description, event.Location,
		event.StartsAt.UTC().Format(time.RFC3339), event.CreatedBy)
	if err != nil {
		return models.Event{}, err
	}
	return s.GetEventByID(event.ID)
}

// UpdateEvent updates an event's details.
func (s *EventService) UpdateEvent(id string, event models.Event) (models.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return models.Event{}, apperrors.Validation("event title is required")
	}
	if event.StartsAt.IsZero() {
		return models.Event{}, apperrors.Validation("event start time is required")
	}
	if _, err := s.GetEventByID(id); err != nil {
		return models.Event{}, err
	}

	_, err := s.db.Exec(`
		UPDATE events SET title = ?, description = ?, location = ?, starts_at = ?
		WHERE id = ?`,
		event.Title, event.Description, event.Location,
		event.StartsAt.UTC().Format(time.RFC3339), id)
	if err != nil {
		return models.Event{}, err
	}
	return s.GetEventByID(id)
}

// DeleteEvent removes an event.
func (s *EventService) DeleteEvent(id string) error {
	if _, err := s.GetEventByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	return err
}
