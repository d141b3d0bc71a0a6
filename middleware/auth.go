package middleware

import (
	"net/http"
	"strings"

	"handyhelp/models"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key holding the caller's models.Principal.
const PrincipalKey = "principal"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AuthContext resolves the optional bearer token into a principal. Requests
// without a valid token continue as models.Anonymous.
func AuthContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := models.Anonymous
		if tokenString, ok := bearerToken(c); ok {
			claims, err := utils.ParseToken(tokenString)
			if err != nil {
				utils.GetLogger().Debug("Ignoring invalid bearer token", zap.Error(err))
			} else {
				principal = models.Principal{ID: claims.Subject, Kind: claims.Kind, Authenticated: true}
			}
		}
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthContext.
func PrincipalFrom(c *gin.Context) models.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Anonymous
}

// RequireAuth rejects anonymous callers when enforce is set. It must run after AuthContext.
func RequireAuth(enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enforce && !PrincipalFrom(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		c.Next()
	}
}
