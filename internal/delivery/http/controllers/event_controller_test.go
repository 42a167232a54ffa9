package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventpro/internal/delivery/http/helpers"
	"eventpro/internal/delivery/http/middleware"
	"eventpro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	listResult      []*domain.Event
	listErr         error
	createErr       error
	createdID       string
	lastCreateEvent *domain.Event
	lastCreateUser  string
	createCalls     int
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event, userID string) error {
	f.createCalls++
	f.lastCreateEvent = e
	f.lastCreateUser = userID
	if f.createErr != nil {
		return f.createErr
	}
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	e.ID = f.createdID
	e.UserID = userID
	return nil
}

func listEventsFixture() []*domain.Event {
	return []*domain.Event{
		{ID: "ev-1", Title: "Tech Summit", Description: "Annual tech gathering", Date: "2026-02-01", Category: domain.CategoryConference, Price: 25},
		{ID: "ev-2", Title: "Go Workshop", Description: "Hands-on Go", Date: "2026-03-01", Category: domain.CategoryWorkshop, Price: 0},
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		fakeErr     error
		wantStatus  int
		wantIDs     []string
		wantMessage string
	}{
		{
			name:       "returns all events with no filters",
			url:        "/events",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"ev-1", "ev-2"},
		},
		{
			name:       "search narrows by title case-insensitively",
			url:        "/events?search=SUMMIT",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"ev-1"},
		},
		{
			name:       "category filter excludes other categories",
			url:        "/events?category=workshop",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"ev-2"},
		},
		{
			name:       "category all is identity",
			url:        "/events?category=all",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"ev-1", "ev-2"},
		},
		{
			name:       "unknown category filter rejected",
			url:        "/events?category=hackathon",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "service failure yields load notification",
			url:         "/events",
			fakeErr:     errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgLoadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{listResult: listEventsFixture(), listErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake, "")
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus != http.StatusOK {
				require.NotNil(t, envelope.Error)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, envelope.Error.Message)
				}
				return
			}
			require.Nil(t, envelope.Error)
			dataBytes, err := json.Marshal(envelope.Data)
			require.NoError(t, err)
			var resp ListEventsResponse
			require.NoError(t, json.Unmarshal(dataBytes, &resp))
			require.Equal(t, len(tt.wantIDs), resp.Total)
			gotIDs := make([]string, 0, len(resp.Events))
			for _, e := range resp.Events {
				gotIDs = append(gotIDs, e.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs, "events and their order")
		})
	}
}

func TestEventController_ListEvents_PriceLabels(t *testing.T) {
	fake := &fakeEventService{listResult: listEventsFixture()}
	ctrl := NewEventController(testLogger, fake, "")
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()

	ctrl.ListEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	dataBytes, _ := json.Marshal(envelope.Data)
	var resp ListEventsResponse
	require.NoError(t, json.Unmarshal(dataBytes, &resp))
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "$25.00", resp.Events[0].PriceLabel)
	assert.Equal(t, "Free", resp.Events[1].PriceLabel)
}

func validCreateBody() map[string]string {
	return map[string]string{
		"title":       "Tech Summit",
		"description": "Annual gathering",
		"date":        "2026-03-14",
		"time":        "09:30",
		"location":    "Convention Center",
		"category":    "conference",
		"capacity":    "250",
		"organizer":   "Acme Events",
		"email":       "contact@acme.example",
		"price":       "25",
	}
}

func marshalBody(t *testing.T, body map[string]string) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(body map[string]string)
		rawBody        string
		fakeErr        error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
		checkEvent     func(t *testing.T, resp EventResponse, fake *fakeEventService)
	}{
		{
			name:       "success coerces numerics and assigns owner",
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, resp EventResponse, fake *fakeEventService) {
				assert.Equal(t, "ev-created", resp.ID)
				assert.Equal(t, "user-123", resp.UserID)
				assert.Equal(t, 250, resp.Capacity)
				assert.Equal(t, float64(25), resp.Price)
				assert.Equal(t, "$25.00", resp.PriceLabel)
				assert.Equal(t, "user-123", fake.lastCreateUser)
			},
		},
		{
			name:       "missing image gets fallback URL",
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, resp EventResponse, fake *fakeEventService) {
				assert.Equal(t, domain.FallbackImageURL, resp.ImageURL)
			},
		},
		{
			name: "provided image is kept",
			mutate: func(body map[string]string) {
				body["image_url"] = "https://example.com/banner.png"
			},
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, resp EventResponse, fake *fakeEventService) {
				assert.Equal(t, "https://example.com/banner.png", resp.ImageURL)
			},
		},
		{
			name:           "no user in context",
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: MsgAuthRequired,
		},
		{
			name:           "bad request invalid json",
			rawBody:        `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name: "malformed capacity rejected",
			mutate: func(body map[string]string) {
				body["capacity"] = "lots"
			},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "capacity must be a whole number",
		},
		{
			name: "malformed price rejected",
			mutate: func(body map[string]string) {
				body["price"] = "cheap"
			},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "price must be a number",
		},
		{
			name: "zero capacity rejected",
			mutate: func(body map[string]string) {
				body["capacity"] = "0"
			},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "capacity must be at least 1",
		},
		{
			name: "negative price rejected",
			mutate: func(body map[string]string) {
				body["price"] = "-5"
			},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "price must be zero or greater",
		},
		{
			name: "category outside enumeration rejected",
			mutate: func(body map[string]string) {
				body["category"] = "hackathon"
			},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "category must be one of",
		},
		{
			name:           "service error yields create notification",
			fakeErr:        errors.New("insert failed"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: MsgCreateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{createdID: "ev-created", createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake, "")

			var body *bytes.Buffer
			if tt.rawBody != "" {
				body = bytes.NewBufferString(tt.rawBody)
			} else {
				m := validCreateBody()
				if tt.mutate != nil {
					tt.mutate(m)
				}
				body = marshalBody(t, m)
			}
			req := httptest.NewRequest(http.MethodPost, "/events", body)
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				assert.Equal(t, MsgCreateSuccess, envelope.Message)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp EventResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				if tt.checkEvent != nil {
					tt.checkEvent(t, resp, fake)
				}
				return
			}
			require.NotNil(t, envelope.Error, "error response must have error set")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
			if tt.wantStatus == http.StatusBadRequest || tt.wantStatus == http.StatusUnauthorized {
				assert.Zero(t, fake.createCalls, "rejected request must not reach the service")
			}
		})
	}
}
