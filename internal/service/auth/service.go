// Package auth 会话认证
//
// 会话在进程启动后不再是全局隐式状态：登录签发 JWT，中间件逐请求解析并把
// Session 显式注入上下文；登出把令牌 ID 写入 Redis 吊销表直到令牌过期。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexbot/intent-admin/internal/config"
	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
)

const revokedKeyPrefix = "intent-admin:revoked:"

// ErrInvalidToken 令牌无效、过期或已吊销
var ErrInvalidToken = errors.New("invalid or expired token")

// Service 认证服务
type Service struct {
	repo        *repository.Repositories
	redisClient *redis.Client
	secret      string
	tokenTTL    time.Duration
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories, redisClient *redis.Client, cfg *config.Config) *Service {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// 未配置时生成临时密钥，重启后所有会话失效
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
		secret = base64.StdEncoding.EncodeToString(randomBytes)
	}

	return &Service{
		repo:        repo,
		redisClient: redisClient,
		secret:      secret,
		tokenTTL:    time.Duration(cfg.Auth.TokenTTL) * time.Second,
	}
}

// EnsureDefaultUser 默认运营账号引导
// 账号已存在时不动密码，避免覆盖线上改过的凭据
func (s *Service) EnsureDefaultUser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.repo.Auth.GetUserByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up default user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	return s.repo.Auth.CreateUser(&model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// SignInWithPassword 邮箱密码登录
func (s *Service) SignInWithPassword(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.Auth.GetUserByEmail(req.Email)
	if err != nil {
		return &LoginResponse{Success: false, Message: "Invalid email or password"}, nil
	}

	if !user.IsActive {
		return &LoginResponse{Success: false, Message: "Account is disabled"}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return &LoginResponse{Success: false, Message: "Invalid email or password"}, nil
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   token,
	}, nil
}

// GetSession 解析并校验令牌，返回显式会话
func (s *Service) GetSession(ctx context.Context, tokenString string) (*model.Session, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 已登出的令牌在吊销表里保留到过期为止
	revoked, err := s.redisClient.Exists(ctx, revokedKeyPrefix+claims.ID).Result()
	if err == nil && revoked > 0 {
		return nil, ErrInvalidToken
	}

	return &model.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// GetUser 加载会话对应的用户
func (s *Service) GetUser(ctx context.Context, session *model.Session) (*model.User, error) {
	user, err := s.repo.Auth.GetUserByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// SignOut 吊销令牌
func (s *Service) SignOut(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		// 无效令牌视为已登出
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	return s.redisClient.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err()
}

// sessionClaims JWT 载荷
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// generateToken 签发 HS256 令牌
func (s *Service) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// parseClaims 解析并校验令牌签名与有效期
func (s *Service) parseClaims(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
