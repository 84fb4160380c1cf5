package handler

import (
	"errors"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.svc.Login(req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.GetUser(GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, user)
}
