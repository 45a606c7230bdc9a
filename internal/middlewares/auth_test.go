package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/tokens"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name             string
		mockSetup        func(tok *MockTokener, users *MockIdentityReader)
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			mockSetup: func(tok *MockTokener, users *MockIdentityReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", tokens.ErrTokenMissing)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(tok *MockTokener, users *MockIdentityReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetAccessClaims(gomock.Any(), "sometoken").
					Return(nil, tokens.ErrInvalidToken)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "SubjectGone",
			mockSetup: func(tok *MockTokener, users *MockIdentityReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetAccessClaims(gomock.Any(), "validtoken").
					Return(&tokens.AccessClaims{UserID: userID}, nil)
				users.EXPECT().GetProfileByID(gomock.Any(), userID).
					Return(nil, nil)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "ReaderError",
			mockSetup: func(tok *MockTokener, users *MockIdentityReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetAccessClaims(gomock.Any(), "validtoken").
					Return(&tokens.AccessClaims{UserID: userID}, nil)
				users.EXPECT().GetProfileByID(gomock.Any(), userID).
					Return(nil, errors.New("db error"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectNextCalled: false,
		},
		{
			name: "ValidToken",
			mockSetup: func(tok *MockTokener, users *MockIdentityReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetAccessClaims(gomock.Any(), "validtoken").
					Return(&tokens.AccessClaims{UserID: userID}, nil)
				users.EXPECT().GetProfileByID(gomock.Any(), userID).
					Return(&models.User{UserID: userID, Username: "alice"}, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockUsers := NewMockIdentityReader(ctrl)
			tt.mockSetup(mockTokener, mockUsers)

			// Wrap a next handler to check if it was called and whether
			// the identity landed in the context.
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user := IdentityFromContext(r.Context())
				assert.NotNil(t, user)
				assert.Equal(t, userID, user.UserID)
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockUsers)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, IdentityFromContext(req.Context()))
}
