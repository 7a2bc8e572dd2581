package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crewup/internal/delivery/http/helpers"
	"crewup/internal/domain"

	"github.com/stretchr/testify/require"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	created  bool
	err      error
	lastUser *domain.User
}

func (f *fakeUserService) Upsert(ctx context.Context, u *domain.User) (bool, error) {
	f.lastUser = u
	return f.created, f.err
}

func TestUserController_UpsertUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeUserService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "new user created",
			body:       `{"email":"a@x.com","display_name":"Ada"}`,
			svc:        &fakeUserService{created: true},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "existing user updated",
			body:       `{"email":"a@x.com","display_name":"Ada"}`,
			svc:        &fakeUserService{created: false},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing email",
			body:       `{"display_name":"Ada"}`,
			svc:        &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			svc:        &fakeUserService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid email rejected by service",
			body:       `{"email":"not-an-email"}`,
			svc:        &fakeUserService{err: domain.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "store failure",
			body:       `{"email":"a@x.com"}`,
			svc:        &fakeUserService{err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewUserController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			c.UpsertUser(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				require.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			require.Nil(t, env.Error)
			var resp UpsertUserResponse
			require.NoError(t, json.Unmarshal(env.Data, &resp))
			require.Equal(t, tt.svc.created, resp.Created)
			require.NotNil(t, resp.User)
			require.Equal(t, "a@x.com", resp.User.Email)
		})
	}
}
