package middleware

import (
	"net/http"
	"strings"

	"MedConnect/config"
	"MedConnect/role"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ctxUserID = "userId"
	ctxRole   = "role"
)

/*
* Verify the bearer token and stash the claims in the context
* Verification is claims-only so the guard never touches storage
 */
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthenticated(util.AUTHENTICATION_REQUIRED)))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthenticated(util.INVALID_TOKEN)))
			return
		}
		claims, err := config.VerifyJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(err))
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil || !role.Valid(claims.Role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthenticated(util.INVALID_TOKEN)))
			return
		}
		c.Set(ctxUserID, uid)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

/*
* Route guard for role-gated endpoints
* 401 without an identity, 403 with the wrong role: never conflated
 */
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRole := c.GetString(ctxRole)
		if actorRole == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthenticated(util.AUTHENTICATION_REQUIRED)))
			return
		}
		for _, r := range roles {
			if actorRole == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(util.Forbidden(util.FORBIDDEN)))
	}
}

// CurrentActor rebuilds the actor from the verified claims.
func CurrentActor(c *gin.Context) role.Actor {
	uid, _ := c.Get(ctxUserID)
	id, _ := uid.(primitive.ObjectID)
	return role.Actor{ID: id, Role: c.GetString(ctxRole)}
}
