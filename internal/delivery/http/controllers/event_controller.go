package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"eventpro/internal/delivery/http/helpers"
	"eventpro/internal/delivery/http/middleware"
	"eventpro/internal/domain"
)

// User-facing notification messages for the event endpoints.
const (
	MsgLoadFailed    = "Failed to load events. Please try again."
	MsgCreateFailed  = "Failed to create event. Please try again."
	MsgCreateSuccess = "Event created successfully!"
	MsgAuthRequired  = "Authentication required. Please sign in to create events."
)

// emailRegexp matches a simple email format (local@domain with at least one dot in domain).
var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dateRegexp matches an ISO 8601 calendar date (YYYY-MM-DD).
var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// timeRegexp matches a 24h time of day (HH:MM).
var timeRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CreateEventRequest is the request body for POST /events. It mirrors the
// create form: every field arrives as a raw string, and capacity and price are
// coerced to numbers only at submit time.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Capacity    string `json:"capacity"`
	Organizer   string `json:"organizer"`
	Email       string `json:"email"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

// Validate implements Validator. Required and format rules match the form's
// native input constraints; malformed numerics are rejected here instead of
// flowing onward as NaN.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if !dateRegexp.MatchString(c.Date) {
		errs = append(errs, "date must be a calendar date (YYYY-MM-DD)")
	}
	if !timeRegexp.MatchString(c.Time) {
		errs = append(errs, "time must be HH:MM")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if _, err := domain.ParseCategory(c.Category); err != nil {
		errs = append(errs, "category must be one of: conference, workshop, seminar, networking, training, webinar")
	}
	if capacity, err := strconv.Atoi(strings.TrimSpace(c.Capacity)); err != nil {
		errs = append(errs, "capacity must be a whole number")
	} else if capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(c.Price), 64); err != nil {
		errs = append(errs, "price must be a number")
	} else if price < 0 {
		errs = append(errs, "price must be zero or greater")
	}
	if strings.TrimSpace(c.Organizer) == "" {
		errs = append(errs, "organizer is required")
	}
	if !emailRegexp.MatchString(strings.TrimSpace(c.Email)) {
		errs = append(errs, "invalid contact email")
	}
	return errs
}

// toEvent converts a validated request into a domain Event, substituting the
// fallback image URL when none was provided.
func (c CreateEventRequest) toEvent(fallbackImageURL string) *domain.Event {
	category, _ := domain.ParseCategory(c.Category)
	capacity, _ := strconv.Atoi(strings.TrimSpace(c.Capacity))
	price, _ := strconv.ParseFloat(strings.TrimSpace(c.Price), 64)
	imageURL := strings.TrimSpace(c.ImageURL)
	if imageURL == "" {
		imageURL = fallbackImageURL
	}
	return domain.NewEvent(
		strings.TrimSpace(c.Title),
		strings.TrimSpace(c.Description),
		c.Date,
		c.Time,
		strings.TrimSpace(c.Location),
		category,
		capacity,
		strings.TrimSpace(c.Organizer),
		strings.TrimSpace(c.Email),
		price,
		imageURL,
	)
}

// EventResponse is an Event plus its derived display price.
// swagger:model EventResponse
type EventResponse struct {
	*domain.Event
	PriceLabel string `json:"price_label"`
}

func newEventResponse(e *domain.Event) *EventResponse {
	return &EventResponse{Event: e, PriceLabel: domain.PriceLabel(e.Price)}
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Events []*EventResponse `json:"events"`
	Total  int              `json:"total"`
}

type EventController struct {
	Logger           *slog.Logger
	Service          domain.EventService
	FallbackImageURL string
}

func NewEventController(logger *slog.Logger, svc domain.EventService, fallbackImageURL string) *EventController {
	if fallbackImageURL == "" {
		fallbackImageURL = domain.FallbackImageURL
	}
	return &EventController{
		Logger:           logger,
		Service:          svc,
		FallbackImageURL: fallbackImageURL,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events ordered ascending by date, optionally narrowed by a case-insensitive search term (matched against title and description) and a category filter.
// @Tags events
// @Produce json
// @Param search query string false "Search term"
// @Param category query string false "Category filter (one of the six categories, or \"all\")"
// @Success 200 {object} helpers.APIResponse "data contains events and total"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.FilterCategoryAll
	}
	if category != domain.FilterCategoryAll {
		parsed, err := domain.ParseCategory(category)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown category filter")
			return
		}
		category = string(parsed)
	}

	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, MsgLoadFailed)
		return
	}

	visible := domain.VisibleEvents(events, searchTerm, category)
	resp := ListEventsResponse{Events: make([]*EventResponse, 0, len(visible)), Total: len(visible)}
	for _, e := range visible {
		resp.Events = append(resp.Events, newEventResponse(e))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp, "")
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event from form fields. Capacity and price arrive as strings and are coerced server-side; an empty image_url is replaced with the fallback image. The authenticated user becomes the event owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event form fields"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, MsgAuthRequired)
		return
	}
	event := req.toEvent(c.FallbackImageURL)
	if err := c.Service.CreateEvent(r.Context(), event, userID); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, MsgAuthRequired)
			return
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, MsgCreateFailed)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event), MsgCreateSuccess)
}
