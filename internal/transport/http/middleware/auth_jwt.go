package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmbook/internal/core/auth"
	"farmbook/internal/domain"
	resp "farmbook/internal/transport/http/response"
)

const claimsKey = "claims"

// RequireAuth is the gate in front of every route outside signup/login.
// A request either ends up authenticated with claims on the context, or
// rejected with a 401 naming why.
func RequireAuth(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ExtractToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("No token provided"))
			return
		}
		claims, err := j.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Token expired"))
			case errors.Is(err, auth.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Invalid token"))
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Unauthorized"))
			}
			return
		}
		c.Set(claimsKey, claims)
		c.Set("userId", claims.UID)
		c.Next()
	}
}

// RequireRole additionally demands the decoded role to be at least want.
func RequireRole(want domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Unauthorized"))
			return
		}
		if !claims.Role.AtLeast(want) {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error("Forbidden"))
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
