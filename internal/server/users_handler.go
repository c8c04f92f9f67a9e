package server

import (
	"net/http"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UsersHandler serves the users collection.
type UsersHandler struct {
	users  UserStore
	logger *zap.Logger
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(users UserStore, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Name     string `json:"name"`
}

// Create registers a new user with a hashed password.
func (h *UsersHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, password and type are required"})
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email address"})
		return
	}
	if req.Type != entity.UserTypeEmployee && req.Type != entity.UserTypeAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user type"})
		return
	}

	existing, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to check existing user", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashed),
		Type:     req.Type,
		Name:     utils.SanitizeString(req.Name),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get returns one user by id. Password hashes never serialize.
func (h *UsersHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
