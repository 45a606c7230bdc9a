package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/services"
)

func authenticatedRequest(method, target string, body *bytes.Buffer, user *models.User) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	return req.WithContext(middlewares.ContextWithIdentity(req.Context(), user))
}

func TestCurrentUserHandler(t *testing.T) {
	user := &models.User{UserID: uuid.New(), Username: "john_doe", Email: "john@example.com"}

	t.Run("returns the session identity", func(t *testing.T) {
		handler := NewCurrentUserHandler()

		req := authenticatedRequest(http.MethodGet, "/api/v1/users/me", nil, user)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data models.User `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.UserID, resp.Data.UserID)
		assert.Equal(t, "john_doe", resp.Data.Username)
	})

	t.Run("no identity", func(t *testing.T) {
		handler := NewCurrentUserHandler()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateAccountHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	identity := &models.User{UserID: userID, Username: "john_doe"}
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name            string
		reqBody         UpdateAccountRequest
		rawBody         string
		mockSetup       func(m *MockAccountUpdater)
		expectedCode    int
		expectedMessage string
	}{
		{
			name:    "success",
			reqBody: UpdateAccountRequest{Fullname: strPtr("John Smith"), Email: strPtr("smith@example.com")},
			mockSetup: func(m *MockAccountUpdater) {
				m.EXPECT().
					UpdateAccount(gomock.Any(), userID, strPtr("John Smith"), strPtr("smith@example.com"), nil).
					Return(&models.User{UserID: userID, Fullname: "John Smith", Email: "smith@example.com"}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Account details updated successfully",
		},
		{
			name:    "no fields",
			reqBody: UpdateAccountRequest{},
			mockSetup: func(m *MockAccountUpdater) {
				m.EXPECT().
					UpdateAccount(gomock.Any(), userID, nil, nil, nil).
					Return(nil, services.ErrNoFieldsToUpdate)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "No fields to update",
		},
		{
			name:            "invalid username",
			reqBody:         UpdateAccountRequest{Username: strPtr("x")},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:    "handle taken",
			reqBody: UpdateAccountRequest{Username: strPtr("taken_one")},
			mockSetup: func(m *MockAccountUpdater) {
				m.EXPECT().
					UpdateAccount(gomock.Any(), userID, nil, nil, strPtr("taken_one")).
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Username or email already exists",
		},
		{
			name:    "internal error",
			reqBody: UpdateAccountRequest{Fullname: strPtr("John Smith")},
			mockSetup: func(m *MockAccountUpdater) {
				m.EXPECT().
					UpdateAccount(gomock.Any(), userID, gomock.Any(), nil, nil).
					Return(nil, errors.New("database failure"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
		{
			name:            "invalid json",
			rawBody:         "{invalid json}",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAccountUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewUpdateAccountHandler(mockSvc)

			var body *bytes.Buffer
			if tt.rawBody != "" {
				body = bytes.NewBufferString(tt.rawBody)
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				body = bytes.NewBuffer(bodyBytes)
			}

			req := authenticatedRequest(http.MethodPatch, "/api/v1/users/account", body, identity)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}

func TestChangePasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	identity := &models.User{UserID: userID}

	tests := []struct {
		name            string
		reqBody         ChangePasswordRequest
		mockSetup       func(m *MockPasswordChanger)
		expectedCode    int
		expectedMessage string
	}{
		{
			name:    "success",
			reqBody: ChangePasswordRequest{OldPassword: "old-pass", NewPassword: "newpass1"},
			mockSetup: func(m *MockPasswordChanger) {
				m.EXPECT().
					ChangePassword(gomock.Any(), userID, "old-pass", "newpass1").
					Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Password changed successfully",
		},
		{
			name:    "wrong current password",
			reqBody: ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpass1"},
			mockSetup: func(m *MockPasswordChanger) {
				m.EXPECT().
					ChangePassword(gomock.Any(), userID, "wrong", "newpass1").
					Return(services.ErrInvalidPassword)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid password",
		},
		{
			name:            "weak new password",
			reqBody:         ChangePasswordRequest{OldPassword: "old-pass", NewPassword: "abc"},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPasswordChanger(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewChangePasswordHandler(mockSvc)

			bodyBytes, _ := json.Marshal(tt.reqBody)
			req := authenticatedRequest(http.MethodPost, "/api/v1/users/password", bytes.NewBuffer(bodyBytes), identity)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}
