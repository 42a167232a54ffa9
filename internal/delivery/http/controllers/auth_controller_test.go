package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventpro/internal/delivery/http/helpers"
	"eventpro/internal/domain"
	"eventpro/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr  error
	signUpUser *domain.User
	loginErr   error
	loginToken string
	lastEmail  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastEmail = email
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpUser, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"email":"a@example.com","password":"longenough","name":"Ada"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing email",
			body:           `{"password":"longenough","name":"Ada"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email is required",
		},
		{
			name:           "short password",
			body:           `{"email":"a@example.com","password":"short","name":"Ada"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least 8 characters",
		},
		{
			name:           "duplicate email",
			body:           `{"email":"a@example.com","password":"longenough","name":"Ada"}`,
			fakeErr:        domain.ErrDuplicateEmail,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email already registered",
		},
		{
			name:           "service error",
			body:           `{"email":"a@example.com","password":"longenough","name":"Ada"}`,
			fakeErr:        errors.New("db down"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{
				signUpErr:  tt.fakeErr,
				signUpUser: &domain.User{ID: "user-1", Email: "a@example.com", Name: "Ada"},
			}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var user domain.User
				require.NoError(t, json.Unmarshal(dataBytes, &user))
				assert.Equal(t, "user-1", user.ID)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success returns bearer token",
			body:       `{"email":"a@example.com","password":"longenough"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing password",
			body:           `{"email":"a@example.com"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "password is required",
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"a@example.com","password":"wrongpass"}`,
			fakeErr:        services.ErrInvalidCredentials,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "invalid credentials",
		},
		{
			name:           "service error",
			body:           `{"email":"a@example.com","password":"longenough"}`,
			fakeErr:        errors.New("db down"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{loginErr: tt.fakeErr, loginToken: "jwt-token"}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp LoginResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, "jwt-token", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}
