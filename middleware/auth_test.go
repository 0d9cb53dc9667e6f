package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var testSecret = []byte("test-secret")

func signed(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return Authenticate(testSecret)(Authorize("organizer")(ok))
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signed(t, []byte("other"), jwt.MapClaims{"role": "organizer", "exp": future}), want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"role": "organizer", "exp": past}), want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"role": "player", "exp": future}), want: http.StatusForbidden},
		{name: "missing role", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"exp": future}), want: http.StatusUnauthorized},
		{name: "organizer", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"role": "organizer", "exp": future}), want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/rounds", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
