package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userClaimKey = "auth_user"

// RequireAuth validates the bearer token and stores its claims for handlers.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set(userClaimKey, claims)
		}
		c.Next()
	}
}

// AuthUsername returns the username claim from a validated token.
func AuthUsername(c *gin.Context) string {
	v, ok := c.Get(userClaimKey)
	if !ok {
		return ""
	}
	claims, ok := v.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if s, ok := claims["username"].(string); ok {
		return s
	}
	return ""
}
