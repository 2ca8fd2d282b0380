package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response body carries "success". Failures put the reason under
// "error" or, for the cases the API has always reported that way, under
// "message".

func succeed(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, reason any) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": reason})
}

func failMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// internalError reports an unexpected fault with its message.
func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(c.Request.Context(), op+" failed", "error", err)
	fail(c, http.StatusInternalServerError, err.Error())
}
