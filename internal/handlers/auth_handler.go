package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required"`
	HomeLocation string `json:"home_location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ======================================================
// REGISTER
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	switch req.Role {
	case authz.RoleAdmin, authz.RoleBioanalista, authz.RoleRecepcionista:
	default:
		httperr.BadRequest(c, "invalid_role", "Rol inválido.")
		return
	}

	// los roles con alcance de sede nacen con una sede asignada válida
	if authz.IsLocationScoped(req.Role) && !domain.IsValidLocation(req.HomeLocation) {
		httperr.BadRequest(c, "invalid_location", "Sede inválida.")
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no existe.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Error al registrar.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		HomeLocation: req.HomeLocation,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_taken", "El correo ya está registrado.")
			return
		}
		httperr.Internal(c, "register_failed", "Error al registrar.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"home_location": user.HomeLocation,
	})
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	claims := jwt.MapClaims{
		"sub":          float64(user.ID),
		"role":         user.Role,
		"homeLocation": user.HomeLocation,
		"exp":          time.Now().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		httperr.Internal(c, "token_failed", "Error al iniciar sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"home_location": user.HomeLocation,
		},
	})
}
