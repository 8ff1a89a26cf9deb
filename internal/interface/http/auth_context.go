package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/natal-chart/internal/domain/auth"
)

// claimsKey stores the validated bearer claims on the gin context.
const claimsKey = "natal.auth.claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(claimsKey, claims)
}

// getClaims is false on routes that run without authentication.
func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
