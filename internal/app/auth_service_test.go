package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-hub/internal/model"
	"feedback-hub/internal/pkg/jwtutil"
	"feedback-hub/internal/platform/sqlite"
	"feedback-hub/internal/repository"
)

const testJWTSecret = "auth-service-test-secret"

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewAuthService(repository.NewUserRepository(db), testJWTSecret, time.Hour)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.User.ID)
	assert.Equal(t, "alice@example.com", registered.User.Email)
	assert.NotEqual(t, "correct-horse", registered.User.PasswordHash)

	claims, err := jwtutil.ParseToken(testJWTSecret, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	loggedIn, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	me, err := svc.GetUserByID(ctx, registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "alice", me.Username)
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice2", Email: "A@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "b@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(ctx, LoginInput{Username: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.GetUserByID(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
