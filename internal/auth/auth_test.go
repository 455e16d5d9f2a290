package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-that-is-long-enough-for-testing"

func newTestManager() *JWTManager {
	return NewJWTManager(testSecret, "test-issuer", "test-audience", 24*time.Hour)
}

func TestNewJWTManager(t *testing.T) {
	manager := NewJWTManager(testSecret, "test-issuer", "test-audience", time.Hour)

	if manager.secret != testSecret {
		t.Errorf("Expected secret %s, got %s", testSecret, manager.secret)
	}
	if manager.issuer != "test-issuer" {
		t.Errorf("Expected issuer test-issuer, got %s", manager.issuer)
	}
	if manager.audience != "test-audience" {
		t.Errorf("Expected audience test-audience, got %s", manager.audience)
	}
	if manager.Expiry() != time.Hour {
		t.Errorf("Expected expiry 1h, got %v", manager.Expiry())
	}
}

func TestJWTManager_ValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		issuer   string
		audience string
		expiry   time.Duration
		wantErr  bool
	}{
		{"valid config", testSecret, "iss", "aud", 24 * time.Hour, false},
		{"empty secret", "", "iss", "aud", time.Hour, true},
		{"secret too short", "short", "iss", "aud", time.Hour, true},
		{"empty issuer", testSecret, "", "aud", time.Hour, true},
		{"empty audience", testSecret, "iss", "", time.Hour, true},
		{"negative expiry", testSecret, "iss", "aud", -time.Hour, true},
		{"expiry too short", testSecret, "iss", "aud", 30 * time.Second, true},
		{"expiry too long", testSecret, "iss", "aud", 31 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewJWTManager(tt.secret, tt.issuer, tt.audience, tt.expiry)
			err := manager.ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTManager_GenerateToken(t *testing.T) {
	manager := newTestManager()
	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if !claims.IsAdmin {
		t.Error("Expected is_admin claim to be true")
	}
	if claims.Subject != "admin" {
		t.Errorf("Expected subject admin, got %s", claims.Subject)
	}
	if got := claims.ExpiresAt.Time.Sub(issued); got != 24*time.Hour {
		t.Errorf("Expected token lifetime 24h, got %v", got)
	}
}

func TestJWTManager_ValidateToken(t *testing.T) {
	manager := newTestManager()
	validToken, err := manager.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate valid token: %v", err)
	}

	otherSecret := NewJWTManager("another-secret-key-that-is-long-enough!!", "test-issuer", "test-audience", time.Hour)
	foreignToken, err := otherSecret.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate foreign token: %v", err)
	}

	wrongAudience := NewJWTManager(testSecret, "test-issuer", "someone-else", time.Hour)
	audienceToken, err := wrongAudience.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{IsAdmin: true}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid token", validToken, nil},
		{"empty token", "", ErrTokenInvalid},
		{"malformed token", "invalid.token", ErrTokenInvalid},
		{"token with wrong secret", foreignToken, ErrTokenInvalid},
		{"token for another audience", audienceToken, ErrTokenInvalid},
		{"unsigned token", noneToken, ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := manager.ValidateToken(tt.token)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateToken() unexpected error = %v", err)
				}
				if claims == nil || !claims.IsAdmin {
					t.Error("ValidateToken() returned no admin claims for valid token")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := newTestManager()
	manager.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := manager.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	manager.now = time.Now
	_, err = manager.ValidateToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthenticator_Login(t *testing.T) {
	a := NewAuthenticator("admin123", "", newTestManager())

	token, err := a.Login("admin123")
	if err != nil {
		t.Fatalf("Login() with correct password error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}
	claims, err := a.Verify(token)
	if err != nil || !claims.IsAdmin {
		t.Errorf("Verify() = %v, %v; want admin claims", claims, err)
	}

	for _, wrong := range []string{"", "admin", "admin1234", "ADMIN123"} {
		if _, err := a.Login(wrong); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q) error = %v, want ErrInvalidCredentials", wrong, err)
		}
	}
}

func TestAuthenticator_LoginWithHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	a := NewAuthenticator("ignored-when-hash-set", hash, newTestManager())
	if _, err := a.Login("s3cret-pass"); err != nil {
		t.Errorf("Login() with hashed password error = %v", err)
	}
	if _, err := a.Login("ignored-when-hash-set"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with plain password should fail when a hash is configured, got %v", err)
	}
}

func TestAuthenticator_NoSecretConfigured(t *testing.T) {
	a := NewAuthenticator("", "", newTestManager())
	if _, err := a.Login(""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(\"\") with no secret configured error = %v, want ErrInvalidCredentials", err)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	manager := newTestManager()
	a := NewAuthenticator("admin123", "", manager)
	validToken, _ := a.Login("admin123")

	expired := newTestManager()
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredToken, _ := expired.GenerateToken()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, "MISSING_AUTH_HEADER"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "INVALID_AUTH_FORMAT"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"not a jwt", "Bearer abc", http.StatusUnauthorized, "INVALID_TOKEN_FORMAT"},
		{"bad signature", "Bearer a.b.c", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"valid", "Bearer " + validToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *Claims
			handler := AuthMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" {
				if resp := decodeError(t, w); resp.Code != tt.wantCode {
					t.Errorf("Expected code %s, got %s", tt.wantCode, resp.Code)
				}
				return
			}
			if gotClaims == nil || !gotClaims.IsAdmin {
				t.Error("Expected admin claims in request context")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		claims     *Claims
		wantStatus int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"not admin", &Claims{IsAdmin: false}, http.StatusForbidden},
		{"admin", &Claims{IsAdmin: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			w := httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestTokenExpirationWarning(t *testing.T) {
	w := httptest.NewRecorder()
	sendTokenExpirationWarning(w, time.Now().Add(30*time.Minute))
	if w.Header().Get("X-Token-Expires-At") == "" {
		t.Error("Expected X-Token-Expires-At header for token expiring within the hour")
	}

	w = httptest.NewRecorder()
	sendTokenExpirationWarning(w, time.Now().Add(5*time.Hour))
	if w.Header().Get("X-Token-Expires-At") != "" {
		t.Error("Did not expect expiry header for long-lived token")
	}
}
