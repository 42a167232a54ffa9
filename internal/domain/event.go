package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel errors shared across services and controllers.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidCategory = errors.New("invalid event category")
)

// Category is the closed set of event categories. Values outside the six
// constants below are never stored or served.
type Category string

const (
	CategoryConference Category = "conference"
	CategoryWorkshop   Category = "workshop"
	CategorySeminar    Category = "seminar"
	CategoryNetworking Category = "networking"
	CategoryTraining   Category = "training"
	CategoryWebinar    Category = "webinar"
)

// Categories lists every valid category in form-option order.
func Categories() []Category {
	return []Category{
		CategoryConference,
		CategoryWorkshop,
		CategorySeminar,
		CategoryNetworking,
		CategoryTraining,
		CategoryWebinar,
	}
}

// ParseCategory coerces a raw string (trimmed, case-folded) into a Category.
// Returns ErrInvalidCategory for anything outside the enumeration.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategoryConference, CategoryWorkshop, CategorySeminar,
		CategoryNetworking, CategoryTraining, CategoryWebinar:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

// FallbackImageURL is substituted at creation time when no image is supplied.
const FallbackImageURL = "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=600&h=300&fit=crop"

// Event is the persisted event record. Field names are the serialization
// contract with the existing events store and must not change.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // ISO 8601 calendar date, e.g. "2026-03-14"
	Time        string    `json:"time"` // local time of day, "HH:MM"
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	Capacity    int       `json:"capacity"`
	Organizer   string    `json:"organizer"`
	Email       string    `json:"email"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID and UserID are set
// on the create path; CreatedAt is assigned by the repository.
func NewEvent(title, description, date, timeOfDay, location string, category Category, capacity int, organizer, email string, price float64, imageURL string) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		Category:    category,
		Capacity:    capacity,
		Organizer:   organizer,
		Email:       email,
		Price:       price,
		ImageURL:    imageURL,
	}
}

// PriceValid reports whether a stored price is usable for display.
// Rows are not re-validated on read, so NaN and negatives can occur.
func PriceValid(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0
}

// PriceLabel renders a price for display: "TBD" for invalid values,
// "Free" for zero, "$%.2f" otherwise.
func PriceLabel(price float64) string {
	if !PriceValid(price) {
		return "TBD"
	}
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", price)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	ListByDate(ctx context.Context) ([]*Event, error)
}

// EventService defines the business logic for listing and creating events.
type EventService interface {
	// ListEvents returns all events ordered ascending by date. Rows whose
	// category falls outside the enumeration are quarantined (omitted).
	ListEvents(ctx context.Context) ([]*Event, error)
	// CreateEvent persists the event on behalf of userID. An empty userID is
	// refused with ErrUnauthenticated before any storage work.
	CreateEvent(ctx context.Context, event *Event, userID string) error
}
