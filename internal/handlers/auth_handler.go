package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    zerolog.Logger

	emailDomainValid func(email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		db:               db,
		config:           cfg,
		log:              log,
		emailDomainValid: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

// RegisterRequest bootstraps a SOLO tenant whose owner is also its only
// professional.
type RegisterRequest struct {
	TenantName string `json:"tenant_name" binding:"required"`
	Timezone   string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.emailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "email domain does not accept mail")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = h.config.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA zone name")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not register user")
		return
	}

	var (
		tenant models.Tenant
		user   models.User
	)
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("email_already_registered")
		}

		tenant = models.Tenant{
			Name:     strings.TrimSpace(req.TenantName),
			Type:     models.TenantTypeSolo,
			Status:   models.TenantStatusActive,
			Timezone: tz,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		user = models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Membership{
			TenantID: tenant.ID,
			UserID:   user.ID,
			Role:     string(tenancy.RoleOwner),
			Active:   true,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Professional{
			TenantID:    tenant.ID,
			UserID:      &user.ID,
			DisplayName: user.Name,
			Active:      true,
		}).Error
	})
	if httperr.IsBusiness(err, "email_already_registered") {
		httperr.Conflict(c, "email_already_registered", "email is already registered")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("register")
		httperr.Internal(c, "failed_to_register", "could not register user")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"tenant": gin.H{
			"id":       tenant.ID,
			"name":     tenant.Name,
			"type":     tenant.Type,
			"timezone": tenant.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login lookup")
		httperr.Internal(c, "internal_error", "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"token": token,
	})
}

// --------- JWT ---------

// generateToken issues a tenant-agnostic token; the tenant is chosen per
// request through X-Tenant-ID.
func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
