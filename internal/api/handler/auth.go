package handler

import (
	"net/http"
	"os"
	"strings"
	"time"

	"freightdesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const actorContextKey = "actor"

// jwtSecret returns the HMAC key shared with the identity service that
// issues the tokens.
func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	// Dev fallback only; set JWT_SECRET in any real deployment.
	return []byte("freightdesk-dev-secret")
}

// GenerateActorToken issues a token for the given actor. Used by tooling and
// tests; production tokens come from the external identity service.
func GenerateActorToken(actor models.Actor, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":        actor.ID,
		"name":       actor.Name,
		"role":       string(actor.Role),
		"department": actor.Department,
		"exp":        time.Now().Add(ttl).Unix(),
		"iss":        "freightdesk-portal",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ActorMiddleware decodes the bearer token into an Actor and stores it in the
// request context. Credentials were already checked by the issuer; here we
// only decode the claims and reject unknown roles at the boundary.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		role, err := models.ParseRole(stringClaim(claims, "role"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role in token"})
			return
		}

		actor := models.Actor{
			ID:         stringClaim(claims, "sub"),
			Name:       stringClaim(claims, "name"),
			Role:       role,
			Department: stringClaim(claims, "department"),
		}
		if actor.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has no subject"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// actorFrom extracts the Actor placed into the context by ActorMiddleware.
func actorFrom(c *gin.Context) models.Actor {
	v, _ := c.Get(actorContextKey)
	actor, _ := v.(models.Actor)
	return actor
}
