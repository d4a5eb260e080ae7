package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"CO-PO-Mapping-Backend/internal/model"
	"CO-PO-Mapping-Backend/internal/repository"
)

type AuthHandler struct {
	users UserStore
}

func NewAuthHandler(users UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterHandler creates an instructor account. Duplicate usernames are
// rejected; the password is stored as a bcrypt hash.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	_, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err, "registration failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err, "registration failed")
		return
	}

	id, err := h.users.Insert(c.Request.Context(), model.User{
		Username:     req.Username,
		Institution:  req.Institution,
		PasswordHash: string(hash),
	})
	if err != nil {
		respondError(c, err, "registration failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user registered", "id": id})
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, ErrInvalidCredentials, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "login successful"})
}
