package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "railbook/internal/config"
	api "railbook/internal/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return api.NewRouter(intconfig.Env{JWTSecret: testSecret})
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  int64(1),
		"username": "alice",
		"role":     "passenger",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestHealth(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCreateBookingRequiresToken(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookingRejectsEmptyPassengers(t *testing.T) {
	r := testRouter()

	body := `{"train_no": 12001, "account_id": "demo@upi", "passengers": []}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsNamelessPassenger(t *testing.T) {
	r := testRouter()

	body := `{"train_no": 12001, "account_id": "demo@upi", "passengers": [{"name": "  ", "age": 30}]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingStatusRejectsBadPNR(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/bookings/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBookingRequiresAccount(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/bookings/424242", bytes.NewBufferString(`{}`))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
