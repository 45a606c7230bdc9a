package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/clipstream/internal/tokens"
)

// APIResponse is the success envelope every endpoint returns.
// swagger:model APIResponse
type APIResponse struct {
	// HTTP status code mirrored in the body
	// default: 200
	StatusCode int `json:"statusCode"`

	// Endpoint-specific payload
	Data interface{} `json:"data,omitempty"`

	// Human-readable outcome
	// default: OK
	Message string `json:"message"`

	// Always true for this envelope
	// default: true
	Success bool `json:"success"`
}

// APIErrorResponse is the failure envelope every endpoint returns.
// swagger:model APIErrorResponse
type APIErrorResponse struct {
	// HTTP status code mirrored in the body
	// default: 400
	StatusCode int `json:"statusCode"`

	// Human-readable outcome
	// default: Bad request
	Message string `json:"message"`

	// Field-level validation messages, empty unless validation failed
	Errors []string `json:"errors"`

	// Always false for this envelope
	// default: false
	Success bool `json:"success"`
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func writeError(w http.ResponseWriter, status int, message string, fieldErrors ...string) {
	if fieldErrors == nil {
		fieldErrors = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIErrorResponse{
		StatusCode: status,
		Message:    message,
		Errors:     fieldErrors,
		Success:    false,
	})
}

// setAuthCookies attaches a fresh credential pair as HttpOnly+Secure
// session cookies.
func setAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokens.AccessCookieName,
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     tokens.RefreshCookieName,
		Value:    refresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both credential cookies.
func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokens.AccessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     tokens.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
