package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostfound_backend/internal/auth"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

const testJWTSecret = "test-secret"

func TestAuthSignup(t *testing.T) {
	svc := NewAuthService(testJWTSecret, 24)

	t.Run("registers and logs in immediately", func(t *testing.T) {
		db := newTestDB(t)

		resp, err := svc.Signup(db, &dto.SignupRequest{
			Name:     "Alice",
			Email:    "Alice@Example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Alice", resp.User.Name)
		// Emails are stored lowercased.
		assert.Equal(t, "alice@example.com", resp.User.Email)

		claims, err := auth.ParseToken(testJWTSecret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := newTestDB(t)

		_, err := svc.Signup(db, &dto.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Signup(db, &dto.SignupRequest{Name: "Other", Email: "ALICE@example.com", Password: "secret456"})
		appErr := requireAppError(t, err, apperrors.CodeAlreadyExists, 400)
		assert.Equal(t, "Email already registered", appErr.Message)
	})
}

func TestAuthLogin(t *testing.T) {
	svc := NewAuthService(testJWTSecret, 24)

	signup := func(t *testing.T) *testDBWithUser {
		db := newTestDB(t)
		resp, err := svc.Signup(db, &dto.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		return &testDBWithUser{db: db, userID: resp.User.ID}
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		env := signup(t)

		resp, err := svc.Login(env.db, &dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, env.userID, resp.User.ID)
	})

	t.Run("wrong password and unknown email report the same message", func(t *testing.T) {
		env := signup(t)

		_, errWrongPassword := svc.Login(env.db, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		wrongPwd := requireAppError(t, errWrongPassword, apperrors.CodeInvalidCredentials, 400)

		_, errUnknown := svc.Login(env.db, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		unknown := requireAppError(t, errUnknown, apperrors.CodeInvalidCredentials, 400)

		assert.Equal(t, wrongPwd.Message, unknown.Message)
	})
}

type testDBWithUser struct {
	db     *gorm.DB
	userID string
}
