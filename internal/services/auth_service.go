package services

import (
	"time"

	"gorm.io/gorm"

	"lostfound_backend/internal/auth"
	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

type AuthService struct {
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, ttlHours int) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		tokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// Signup registers a user and logs them in immediately.
func (s *AuthService) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	userRepo := repositories.NewUserRepository(db)

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth", "Email already registered", 400)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

// Login verifies credentials. Unknown email and wrong password report the
// same message so the endpoint cannot be used to probe accounts.
func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid credentials", 400)
}
