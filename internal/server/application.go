package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListApplicationFlags(c *gin.Context) {
	flags, err := s.applicationSvc.Flags(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": flags})
}
