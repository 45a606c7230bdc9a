package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/services"
	"github.com/clipstream/clipstream/internal/tokens"
)

// multipartBody builds a register-style form with optional file parts.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	for field, filename := range files {
		part, err := mw.CreateFormFile(field, filename)
		assert.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader([]byte("fake image bytes")))
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validFields := map[string]string{
		"username": "john_doe",
		"email":    "john@example.com",
		"fullname": "John Doe",
		"password": "secret123",
	}

	tests := []struct {
		name            string
		fields          map[string]string
		files           map[string]string
		mockSetup       func(m *MockRegisterer)
		expectedCode    int
		expectedMessage string
	}{
		{
			name:   "success",
			fields: validFields,
			files:  map[string]string{"avatar": "avatar.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john_doe", "john@example.com", "John Doe", "secret123", gomock.Not(""), "").
					Return(&models.User{UserID: uuid.New(), Username: "john_doe", Email: "john@example.com"}, nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name: "validation failure",
			fields: map[string]string{
				"username": "x",
				"email":    "not-an-email",
				"fullname": "John Doe",
				"password": "secret123",
			},
			files:           map[string]string{"avatar": "avatar.png"},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:   "duplicate user",
			fields: validFields,
			files:  map[string]string{"avatar": "avatar.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Username or email already exists",
		},
		{
			name:   "avatar missing",
			fields: validFields,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "", "").
					Return(nil, services.ErrAvatarRequired)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Avatar file is required",
		},
		{
			name:   "upload failure",
			fields: validFields,
			files:  map[string]string{"avatar": "avatar.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, services.ErrAssetUploadFailed)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Failed to upload avatar",
		},
		{
			name:   "internal error",
			fields: validFields,
			files:  map[string]string{"avatar": "avatar.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database failure"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			body, contentType := multipartBody(t, tt.fields, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
			req.Header.Set("Content-Type", contentType)

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])
			assert.Equal(t, tt.expectedCode < 400, resp["success"])

			// Secrets never appear in the response body.
			assert.NotContains(t, rr.Body.String(), "password")
			assert.NotContains(t, rr.Body.String(), "refresh_token")
		})
	}
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name            string
		reqBody         interface{}
		rawBody         string
		mockSetup       func(m *MockLoginer)
		expectedCode    int
		expectedMessage string
		expectCookies   bool
	}{
		{
			name:    "success by username",
			reqBody: LoginRequest{Username: "john_doe", Password: "secret123"},
			mockSetup: func(m *MockLoginer) {
				username := "john_doe"
				m.EXPECT().
					Login(gomock.Any(), &username, nil, "secret123").
					Return(&models.User{UserID: userID, Username: "john_doe"}, "ACCESS", "REFRESH", nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "User logged in successfully",
			expectCookies:   true,
		},
		{
			name:    "user not found",
			reqBody: LoginRequest{Email: "ghost@example.com", Password: "secret123"},
			mockSetup: func(m *MockLoginer) {
				email := "ghost@example.com"
				m.EXPECT().
					Login(gomock.Any(), nil, &email, "secret123").
					Return(nil, "", "", services.ErrUserDoesNotExist)
			},
			expectedCode:    http.StatusNotFound,
			expectedMessage: "User not found",
		},
		{
			name:    "invalid password",
			reqBody: LoginRequest{Username: "john_doe", Password: "wrong"},
			mockSetup: func(m *MockLoginer) {
				username := "john_doe"
				m.EXPECT().
					Login(gomock.Any(), &username, nil, "wrong").
					Return(nil, "", "", services.ErrInvalidPassword)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid password",
		},
		{
			name:            "missing identifier",
			reqBody:         LoginRequest{Password: "secret123"},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Username or email is required",
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
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])

			res := rr.Result()
			access := cookieByName(res, tokens.AccessCookieName)
			refresh := cookieByName(res, tokens.RefreshCookieName)
			if tt.expectCookies {
				assert.NotNil(t, access)
				assert.NotNil(t, refresh)
				assert.Equal(t, "ACCESS", access.Value)
				assert.Equal(t, "REFRESH", refresh.Value)
				assert.True(t, access.HttpOnly)
				assert.True(t, access.Secure)
			} else {
				assert.Nil(t, access)
				assert.Nil(t, refresh)
			}
		})
	}
}

func TestRefreshHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("rotation from cookie", func(t *testing.T) {
		mockSvc := NewMockRefresher(ctrl)
		mockSvc.EXPECT().
			Refresh(gomock.Any(), "REFRESH-1").
			Return("ACCESS-2", "REFRESH-2", nil)

		handler := NewRefreshHandler(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
		req.AddCookie(&http.Cookie{Name: tokens.RefreshCookieName, Value: "REFRESH-1"})

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		res := rr.Result()
		assert.Equal(t, "ACCESS-2", cookieByName(res, tokens.AccessCookieName).Value)
		assert.Equal(t, "REFRESH-2", cookieByName(res, tokens.RefreshCookieName).Value)
	})

	t.Run("rotation from body", func(t *testing.T) {
		mockSvc := NewMockRefresher(ctrl)
		mockSvc.EXPECT().
			Refresh(gomock.Any(), "REFRESH-1").
			Return("ACCESS-2", "REFRESH-2", nil)

		handler := NewRefreshHandler(mockSvc)

		bodyBytes, _ := json.Marshal(RefreshRequest{RefreshToken: "REFRESH-1"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", bytes.NewBuffer(bodyBytes))

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("superseded token is rejected", func(t *testing.T) {
		mockSvc := NewMockRefresher(ctrl)
		mockSvc.EXPECT().
			Refresh(gomock.Any(), "REFRESH-1").
			Return("", "", services.ErrInvalidRefreshToken)

		handler := NewRefreshHandler(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
		req.AddCookie(&http.Cookie{Name: tokens.RefreshCookieName, Value: "REFRESH-1"})

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		res := rr.Result()
		assert.Nil(t, cookieByName(res, tokens.AccessCookieName))
	})

	t.Run("missing token", func(t *testing.T) {
		handler := NewRefreshHandler(NewMockRefresher(ctrl))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("success clears both cookies", func(t *testing.T) {
		mockSvc := NewMockLogouter(ctrl)
		mockSvc.EXPECT().Logout(gomock.Any(), userID).Return(nil)

		handler := NewLogoutHandler(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
		req = req.WithContext(middlewares.ContextWithIdentity(req.Context(), &models.User{UserID: userID}))

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		res := rr.Result()
		for _, name := range []string{tokens.AccessCookieName, tokens.RefreshCookieName} {
			c := cookieByName(res, name)
			assert.NotNil(t, c)
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	})

	t.Run("no identity", func(t *testing.T) {
		handler := NewLogoutHandler(NewMockLogouter(ctrl))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
