package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(token, tokenHash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/cmd", Auth(token, tokenHash), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doAuth(t *testing.T, r *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/cmd", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthPlaintextToken(t *testing.T) {
	r := newAuthRouter("secret-token", "")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer secret-token", http.StatusOK},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", "secret-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if w := doAuth(t, r, tc.header); w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestAuthHashedToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-token"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	// Hash takes precedence; the plaintext setting is ignored when both exist.
	r := newAuthRouter("other-value", string(hash))

	if w := doAuth(t, r, "Bearer secret-token"); w.Code != http.StatusOK {
		t.Errorf("hashed token rejected: %d", w.Code)
	}
	if w := doAuth(t, r, "Bearer other-value"); w.Code != http.StatusUnauthorized {
		t.Errorf("plaintext fallback accepted alongside hash: %d", w.Code)
	}
}

func TestAuthFailureEnvelope(t *testing.T) {
	r := newAuthRouter("secret-token", "")
	w := doAuth(t, r, "Bearer wrong")

	var body struct {
		Success        bool   `json:"success"`
		Code           string `json:"code"`
		ChannelMessage string `json:"channel_message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body.Success {
		t.Error("success = true on auth failure")
	}
	if body.Code != "UNAUTHORIZED" {
		t.Errorf("code = %q, want UNAUTHORIZED", body.Code)
	}
	if !strings.HasPrefix(body.ChannelMessage, "❌") {
		t.Errorf("channel_message = %q, want failure prefix", body.ChannelMessage)
	}
}

func TestTracePropagatesIncomingIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Trace())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	req.Header.Set(HeaderTraceID, "trace-456")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "req-123" {
		t.Errorf("request id = %q, want incoming honoured", got)
	}
	if got := w.Header().Get(HeaderTraceID); got != "trace-456" {
		t.Errorf("trace id = %q, want incoming honoured", got)
	}

	// Absent headers get generated IDs.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(HeaderRequestID) == "" || w.Header().Get(HeaderTraceID) == "" {
		t.Error("missing incoming headers not replaced with generated IDs")
	}
}
