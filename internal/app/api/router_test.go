package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/identity/jwtauth"
	orderworkflows "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/workflows"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
)

const routerSecret = "router-test-secret"

func signedToken(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtauth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.DiscardHandler)

	stores, cleanup, err := BuildStores(context.Background(), Config{SeedDemoCatalog: true}, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	service := application.NewService(stores.Restaurants, stores.Menu, stores.Orders,
		application.WithIdempotencyStore(stores.Idempotency, time.Hour))
	identity, err := jwtauth.NewProvider(routerSecret, jwtauth.WithAudience("authenticated"))
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		FrontendURL: "http://localhost:3000",
		Logger:      logger,
		Orders:      service,
		Statuses:    orderworkflows.NewInlineStatusWorkflows(service),
		Identity:    identity,
	})
}

func TestRouter_PlacesOrderAgainstDemoCatalog(t *testing.T) {
	router := newTestRouter(t)
	body := `{"restaurantId":"7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d01","deliveryAddress":"1 Curry Lane",` +
		`"items":[{"menuItemId":"5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a01","quantity":2}]}`

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", "authenticated"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"totalAmount":20.00`)
	assert.Contains(t, rec.Body.String(), `"grandTotal":22.99`)
}

func TestRouter_RejectsForgedToken(t *testing.T) {
	router := newTestRouter(t)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("someone-elses-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
