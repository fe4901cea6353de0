package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/angelina-scw/course-enroll-backend-project/internal/response"
)

// RequireAuthority checks that the JWT grants the given authority.
func RequireAuthority(authority string) gin.HandlerFunc {
	return RequireAnyAuthority(authority)
}

// RequireAnyAuthority checks that the JWT grants at least one of the given authorities.
func RequireAnyAuthority(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, a := range authorities {
			if claims.HasAuthority(a) {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
	}
}
