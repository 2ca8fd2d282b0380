package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// authenticate requires a valid bearer token and stores its claims in the
// request context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			failMessage(c, http.StatusUnauthorized, "Access denied")
			return
		}

		scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
		if !strings.EqualFold(scheme, common.BearerScheme) {
			fail(c, http.StatusUnauthorized, "The token must be in jwt format")
			return
		}

		token = strings.TrimSpace(token)
		if token == "" {
			fail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, err := s.auth.VerifyToken(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err)
			if errors.Is(err, common.ErrTokenExpired) {
				fail(c, http.StatusUnauthorized, "Token expired")
				return
			}
			fail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// caller returns the identity stored by authenticate.
func caller(c *gin.Context) *auth.Claims {
	claims, _ := auth.ClaimsFromContext(c.Request.Context())
	return claims
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
