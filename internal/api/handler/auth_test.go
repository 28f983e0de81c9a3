package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freightdesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func probeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", ActorMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, actorFrom(c))
	})
	return r
}

// TestActorMiddlewareRoundTrip verifies a generated token decodes back into
// the same actor.
func TestActorMiddlewareRoundTrip(t *testing.T) {
	// Arrange
	r := probeRouter()
	actor := models.Actor{ID: "staff-7", Name: "D. Melnyk", Role: models.RoleController, Department: "Commercial"}
	token, err := GenerateActorToken(actor, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Actor
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, actor, got)
}

// TestActorMiddlewareMissingToken verifies requests without a bearer token
// are rejected.
func TestActorMiddlewareMissingToken(t *testing.T) {
	r := probeRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestActorMiddlewareGarbageToken verifies malformed tokens are rejected.
func TestActorMiddlewareGarbageToken(t *testing.T) {
	r := probeRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestActorMiddlewareUnknownRole verifies a token carrying a role outside
// the closed enumeration is rejected at the boundary.
func TestActorMiddlewareUnknownRole(t *testing.T) {
	r := probeRouter()

	claims := jwt.MapClaims{
		"sub":        "staff-9",
		"name":       "Imposter",
		"role":       "superuser",
		"department": "HQ",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
