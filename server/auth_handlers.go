package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	. "github.com/inkwell-blog/inkwell/utils/log"
	"github.com/inkwell-blog/inkwell/utils/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a new account. The email pre-check gives the friendly
// conflict message; the unique index on users.email closes the race between
// two concurrent registrations, an insert-time violation maps to the same
// response.
func (s *APIServer) Register(c *gin.Context) {
	var input model.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var count int64
	if err := s.DB.Model(&model.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := model.User{
		Id:          uuid.New().String(),
		Name:        input.Name,
		Email:       input.Email,
		Description: input.Description,
		Password:    string(hashed),
		PhoneNumber: input.PhoneNumber,
		IsAdmin:     input.IsAdmin,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	Log.Info("user registered: ", user.Id)
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login checks the credential and mints a 7-day bearer token embedding the
// identity fields the client renders without further lookups.
func (s *APIServer) Login(c *gin.Context) {
	var input model.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user model.User
	if err := s.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		return
	}

	signed, err := token.Mint(&user, middlewares.JWTSecret(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// isUniqueViolation matches the postgres duplicate key error without
// depending on driver error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
