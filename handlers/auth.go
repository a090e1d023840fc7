package handlers

import (
	"net/http"

	"feedboard/services"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	svc *services.Auth
}

func NewAuth(svc *services.Auth) *Auth {
	return &Auth{svc: svc}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=5"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Auth) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err))
		return
	}

	userID, err := h.svc.Signup(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created!",
		"userId":  userID,
	})
}

func (h *Auth) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err))
		return
	}

	token, userID, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": userID,
	})
}

func (h *Auth) GetStatus(c *gin.Context) {
	status, err := h.svc.Status(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Auth) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindingError(err))
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.GetString("userId"), req.Status); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated."})
}
