package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	_, err := s.auth.Register(c.Request.Context(), services.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			failMessage(c, http.StatusBadRequest, "Email already registered, please login with it.")
			return
		}
		s.internalError(c, "register", err)
		return
	}

	succeed(c, http.StatusCreated, "User registered successfully!")
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			failMessage(c, http.StatusBadRequest, "User not found in database.")
		case errors.Is(err, common.ErrInvalidCredentials):
			fail(c, http.StatusBadRequest, "Invalid login details, please try again")
		default:
			s.internalError(c, "login", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
