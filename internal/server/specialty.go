package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) SearchSpecialties(c *gin.Context) {
	entries, err := s.specialtySvc.Search(c.Request.Context(), c.Query("key"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *Server) ListSpecialties(c *gin.Context) {
	entries, err := s.specialtySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
