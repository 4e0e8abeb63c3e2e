package middleware

import (
	"strings"
	"time"

	"restaurant-pos-api/config"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user. The token is a
// client convenience: the server stays stateless and never requires it —
// roles gate client-side behavior only.
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// Identify parses a Bearer token when one is present and attaches the
// caller's identity to the context for request logging. Missing or invalid
// tokens are ignored, never rejected.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err == nil && token.Valid {
			c.Set("userID", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", string(claims.Role))
		}
		c.Next()
	}
}

// CallerIdentity returns the identity attached by Identify, if any
func CallerIdentity(c *gin.Context) (uint, models.UserRole, bool) {
	val, ok := c.Get("userID")
	if !ok {
		return 0, "", false
	}
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	return val.(uint), models.UserRole(role), true
}
