// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/config"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	utils.SetJWTSecret("test-secret")
	cfg := &config.Config{
		Admin: config.AdminConfig{Email: "admin@example.com", Password: "admin-pass"},
	}
	s.service = NewAuthService(s.db, cfg)
}

func (s *AuthServiceTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *AuthServiceTestSuite) TestSignupAndLogin() {
	result, err := s.service.Signup(&SignupRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
	})
	s.Require().NoError(err)
	s.NotEmpty(result.Token)
	s.Equal("new@example.com", result.User.Email)

	login, err := s.service.Login(&LoginRequest{Email: "new@example.com", Password: "password123"})
	s.Require().NoError(err)
	s.NotEmpty(login.Token)
}

func (s *AuthServiceTestSuite) TestSignupDuplicateEmailConflicts() {
	req := &SignupRequest{Email: "dup@example.com", Password: "password123", Name: "First"}
	_, err := s.service.Signup(req)
	s.Require().NoError(err)

	_, err = s.service.Signup(req)
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *AuthServiceTestSuite) TestLoginInvalidCredentials() {
	_, err := s.service.Login(&LoginRequest{Email: "nobody@example.com", Password: "x"})
	s.ErrorIs(err, apperror.ErrUnauthorized)

	user := createTestUser(s.T(), s.db, "real@example.com")
	_, err = s.service.Login(&LoginRequest{Email: user.Email, Password: "wrong"})
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLoginBannedAccount() {
	user := createTestUser(s.T(), s.db, "banned@example.com")
	s.Require().NoError(s.db.Model(user).Updates(map[string]interface{}{
		"is_banned":  true,
		"ban_reason": "spam",
	}).Error)

	_, err := s.service.Login(&LoginRequest{Email: user.Email, Password: "password123"})
	s.ErrorIs(err, apperror.ErrForbidden)
	s.Contains(err.Error(), "spam")
}

func (s *AuthServiceTestSuite) TestLoginStampsLastLogin() {
	user := createTestUser(s.T(), s.db, "stamp@example.com")
	s.Nil(user.LastLoginAt)

	_, err := s.service.Login(&LoginRequest{Email: user.Email, Password: "password123"})
	s.Require().NoError(err)

	refreshed, err := s.service.GetUserByID(user.ID)
	s.Require().NoError(err)
	s.NotNil(refreshed.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestAdminLogin() {
	s.NoError(s.service.AdminLogin("admin@example.com", "admin-pass"))
	s.ErrorIs(s.service.AdminLogin("admin@example.com", "wrong"), apperror.ErrUnauthorized)
	s.ErrorIs(s.service.AdminLogin("other@example.com", "admin-pass"), apperror.ErrUnauthorized)
}
