package middleware

import (
	"net/http"
	"strings"

	"medledger/models"
	"medledger/utils"

	"github.com/gin-gonic/gin"
)

// ActorContextKey is the gin context key under which the authenticated operator is set.
const ActorContextKey = "actor"

// OperatorAuthMiddleware resolves the acting operator from the bearer token and attaches
// it to the request context. Authentication bootstrap (issuing tokens, sessions) lives
// outside this service; here the token is only consumed to identify who settles.
func OperatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		operatorID, operatorName, err := utils.ExtractOperatorFromToken(tokenString)
		if err != nil || operatorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(ActorContextKey, models.Actor{ID: operatorID, Name: operatorName})
		c.Next()
	}
}

// ActorFromContext returns the operator resolved by OperatorAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	val, exists := c.Get(ActorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := val.(models.Actor)
	return actor, ok
}
