package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/raynet_coordinator/internal/auth"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	principalKey     = "principal"
	accessTokenQuery = "access_token"
)

// AuthMiddleware - middleware аутентификации по bearer-токену.
// allowQuery разрешает передать токен параметром access_token: браузер не умеет ставить заголовки на WebSocket.
func AuthMiddleware(resolver auth.Resolver, log *logrus.Logger, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" && allowQuery {
			token = c.Query(accessTokenQuery)
		}

		principal, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			respondError(c, log.WithField("path", c.FullPath()), err)
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// principalFrom возвращает principal, положенный AuthMiddleware; без него - анонимный
func principalFrom(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	p, _ := auth.FromContext(c.Request.Context())
	return p
}
