package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/smallbiznis/dentalpay/internal/contact/domain"
)

func (s *Server) CreateContact(c *gin.Context) {
	var req contactdomain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	msg, err := s.contactSvc.CreateContact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (s *Server) CreateFeedback(c *gin.Context) {
	var req contactdomain.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	msg, err := s.contactSvc.CreateFeedback(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
