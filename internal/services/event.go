package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventpro/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	// Stored category strings are not trusted: rows outside the enumeration
	// are quarantined rather than served with an unchecked value.
	valid := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		cat, err := domain.ParseCategory(string(e.Category))
		if err != nil {
			s.logger.Warn("quarantined event with unrecognized category", "event_id", e.ID, "category", string(e.Category))
			continue
		}
		e.Category = cat
		valid = append(valid, e)
	}
	return valid, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := domain.ParseCategory(string(event.Category)); err != nil {
		return err
	}

	event.UserID = userID
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// Confirmation mail is best effort: the event is already persisted, so a
	// delivery failure is logged and never surfaced to the caller.
	if s.emailService != nil && event.Email != "" {
		data := &domain.EventConfirmationEmailData{
			Email:      event.Email,
			Organizer:  event.Organizer,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Location:   event.Location,
			PriceLabel: domain.PriceLabel(event.Price),
		}
		if err := s.emailService.SendEventConfirmation(ctx, data); err != nil {
			s.logger.Warn("event confirmation email failed", "event_id", event.ID, "err", err)
		}
	}
	return nil
}
