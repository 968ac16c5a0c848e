// internal/services/auth_service.go
package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/config"
	"github.com/nexushub/webhub-backend/internal/models"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" binding:"required" validate:"required,min=2,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperror.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email: req.Email,
		Name:  utils.SanitizeString(req.Name),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	if user.IsBanned {
		reason := user.BanReason
		if reason == "" {
			reason = "account suspended"
		}
		return nil, fmt.Errorf("%w: %s", apperror.ErrForbidden, reason)
	}

	s.db.Model(&user).Update("last_login_at", gorm.Expr("NOW()"))

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// AdminLogin checks the static moderation credentials from config. It
// yields no session; subsequent admin calls carry the shared key header.
func (s *AuthService) AdminLogin(email, password string) error {
	cfg := &s.cfg.Admin
	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("%w: admin login disabled", apperror.ErrForbidden)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(cfg.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	if !emailOK || !passOK {
		return fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	return nil
}

func (s *AuthService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
