package controllers

import (
	"errors"
	"net/http"
	"strings"

	"laundrylink-backend/config"
	"laundrylink-backend/models"
	"laundrylink-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterOwnerInput struct {
	LaundryName string `json:"laundry_name" binding:"required,min=2"`
	Address     string `json:"address" binding:"required,min=3"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhotoURL    string `json:"photo_url"`
}

type RegisterCustomerInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required,min=6"`
	Address  string `json:"address" binding:"required,min=3"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=owner customer"`
}

// RegisterOwner creates a laundry owner account.
func RegisterOwner(c *gin.Context) {
	var input RegisterOwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.Owner
	result := config.DB.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already used")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	owner := models.Owner{
		LaundryName: input.LaundryName,
		Address:     input.Address,
		Email:       email,
		Password:    input.Password, // hashed in BeforeCreate hook
		PhotoURL:    input.PhotoURL,
	}

	if err := config.DB.Create(&owner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           owner.ID,
		"laundry_name": owner.LaundryName,
		"address":      owner.Address,
		"email":        owner.Email,
		"photo_url":    owner.PhotoURL,
	})
}

// RegisterCustomer creates a customer account.
func RegisterCustomer(c *gin.Context) {
	var input RegisterCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.Customer
	result := config.DB.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already used")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		Name:     input.Name,
		Email:    email,
		Password: input.Password, // hashed in BeforeCreate hook
		Phone:    input.Phone,
		Address:  input.Address,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      customer.ID,
		"name":    customer.Name,
		"email":   customer.Email,
		"phone":   customer.Phone,
		"address": customer.Address,
	})
}

// Login authenticates against the table matching the requested role and
// returns a bearer token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var id, hash string
	switch input.Role {
	case utils.RoleOwner:
		var owner models.Owner
		if err := config.DB.Where("email = ?", email).First(&owner).Error; err != nil {
			respondLoginFailure(c, err)
			return
		}
		id, hash = owner.ID.String(), owner.Password
	case utils.RoleCustomer:
		var customer models.Customer
		if err := config.DB.Where("email = ?", email).First(&customer).Error; err != nil {
			respondLoginFailure(c, err)
			return
		}
		id, hash = customer.ID.String(), customer.Password
	}

	if !utils.CheckPasswordHash(input.Password, hash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(id, input.Role, email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": input.Role})
}

func respondLoginFailure(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	} else {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// Me returns the caller's profile from the table matching the token role.
func Me(c *gin.Context) {
	userID := c.GetString("userId")
	role := c.GetString("role")

	switch role {
	case utils.RoleOwner:
		var owner models.Owner
		if err := config.DB.First(&owner, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role, "profile": owner})
	case utils.RoleCustomer:
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role, "profile": customer})
	default:
		utils.RespondWithError(c, http.StatusUnauthorized, "Unknown role")
	}
}
