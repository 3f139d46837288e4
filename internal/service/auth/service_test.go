// Package auth 认证服务单元测试
package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexbot/intent-admin/internal/config"
	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.AllModels...))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := repository.NewRepositories(db)
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 3600},
	}
	return NewService(repo, redisClient, cfg), repo
}

func seedUser(t *testing.T, repo *repository.Repositories, active bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:           "user-1",
		Email:        "ops@example.com",
		PasswordHash: string(hash),
		IsActive:     active,
	}
	require.NoError(t, repo.Auth.CreateUser(user))
	return user
}

// ========== SignInWithPassword 测试 ==========

func TestSignIn_Success(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, true)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, true)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "wrong",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid email or password", resp.Message)
	assert.Empty(t, resp.Token)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.NoError(t, err)

	// 账号不存在与密码错误返回同一条消息
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid email or password", resp.Message)
}

func TestSignIn_DisabledAccount(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, false)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "Account is disabled", resp.Message)
}

// ========== GetSession / SignOut 测试 ==========

func TestGetSession(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, true)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	session, err := svc.GetSession(context.Background(), resp.Token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "ops@example.com", session.Email)
	assert.NotEmpty(t, session.TokenID)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestGetSession_BadToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetSession(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOut_RevokesToken(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, true)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), resp.Token))

	// 吊销后的令牌在过期前都不可用
	_, err = svc.GetSession(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOut_InvalidTokenIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	assert.NoError(t, svc.SignOut(context.Background(), "garbage"))
}

// ========== EnsureDefaultUser 测试 ==========

func TestEnsureDefaultUser(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, svc.EnsureDefaultUser(context.Background(), "admin@example.com", "bootstrap-pass"))

	user, err := repo.Auth.GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "admin@example.com", Password: "bootstrap-pass",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestEnsureDefaultUser_KeepsExistingPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, true)

	// 已存在的账号不被覆盖
	require.NoError(t, svc.EnsureDefaultUser(context.Background(), "ops@example.com", "new-pass"))

	resp, err := svc.SignInWithPassword(context.Background(), &LoginRequest{
		Email: "ops@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestEnsureDefaultUser_NoopWithoutCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	assert.NoError(t, svc.EnsureDefaultUser(context.Background(), "", ""))
}

// ========== GetUser 测试 ==========

func TestGetUser(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, true)

	got, err := svc.GetUser(context.Background(), &model.Session{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestGetUser_Deactivated(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, true)

	user.IsActive = false
	require.NoError(t, repo.Auth.UpdateUser(user))

	// 持有有效令牌的已停用账号也被拒绝
	_, err := svc.GetUser(context.Background(), &model.Session{UserID: user.ID})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUser_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), &model.Session{UserID: "ghost"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
