package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/config"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/regions"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Region   string `json:"region"`
}

type RegisterTechnicianRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Password      string   `json:"password" binding:"required,min=6"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	LicenseNumber string   `json:"license_number"`
	Insured       bool     `json:"insured"`
	Regions       []string `json:"regions" binding:"required,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Customer ---------

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_email_domain",
			"field": "email",
		})
		return
	}

	region := req.Region
	if region != "" {
		canonical, ok := regions.Normalize(region)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_region", "field": "region"})
			return
		}
		region = canonical
	}

	var count int64
	h.db.Model(&models.Customer{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email_already_registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	customer := models.Customer{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Address:      req.Address,
		Region:       region,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_customer"})
		return
	}

	token, err := h.generateToken(customer.ID, middleware.RoleCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "customer registered",
		"customerId": customer.ID,
		"token":      token,
	})
}

func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var customer models.Customer
	if err := h.db.Where("email = ?", email).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(customer.ID, middleware.RoleCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "login ok",
		"customerId": customer.ID,
		"token":      token,
	})
}

// --------- Technician ---------

func (h *AuthHandler) RegisterTechnician(c *gin.Context) {
	var req RegisterTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_email_domain",
			"field": "email",
		})
		return
	}

	served := make([]models.TechnicianRegion, 0, len(req.Regions))
	for _, raw := range req.Regions {
		canonical, ok := regions.Normalize(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_region", "field": "regions"})
			return
		}
		served = append(served, models.TechnicianRegion{Region: canonical})
	}

	var count int64
	h.db.Model(&models.Technician{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email_already_registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	tech := models.Technician{
		Name:          req.Name,
		Email:         email,
		PasswordHash:  string(hashed),
		Phone:         req.Phone,
		Address:       req.Address,
		LicenseNumber: req.LicenseNumber,
		Insured:       req.Insured,
		Available:     true,
		Regions:       served,
	}

	if err := h.db.Create(&tech).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_technician"})
		return
	}

	token, err := h.generateToken(tech.ID, middleware.RoleTechnician)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "technician registered",
		"technicianId": tech.ID,
		"token":        token,
	})
}

func (h *AuthHandler) LoginTechnician(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var tech models.Technician
	if err := h.db.Where("email = ?", email).First(&tech).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tech.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(tech.ID, middleware.RoleTechnician)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "login ok",
		"technicianId": tech.ID,
		"token":        token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(id uint, role string) (string, error) {
	ttl := time.Duration(h.config.TokenTTLHours) * time.Hour

	claims := jwt.MapClaims{
		"sub":  id,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
