package postgres

import (
	"context"
	"database/sql"
	"time"

	"eventpro/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, location, category, capacity, organizer, email, price, image_url, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	var imageURL sql.NullString
	if e.ImageURL != "" {
		imageURL = sql.NullString{String: e.ImageURL, Valid: true}
	}
	var userID sql.NullString
	if e.UserID != "" {
		userID = sql.NullString{String: e.UserID, Valid: true}
	}
	e.CreatedAt = time.Now()
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, string(e.Category),
		e.Capacity, e.Organizer, e.Email, e.Price, imageURL, userID, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) ListByDate(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, time, location, category, capacity, organizer, email, price, image_url, user_id, created_at
		FROM events
		ORDER BY date ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var category string
		var imageNull, userNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &category,
			&e.Capacity, &e.Organizer, &e.Email, &e.Price, &imageNull, &userNull, &e.CreatedAt); err != nil {
			return nil, err
		}
		// Category is coerced at the storage boundary; the service decides
		// what to do with rows that fail.
		e.Category = domain.Category(category)
		if imageNull.Valid {
			e.ImageURL = imageNull.String
		}
		if userNull.Valid {
			e.UserID = userNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
