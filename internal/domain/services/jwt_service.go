package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"
	"github.com/aid4sure/VeganEcosystem/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// RoleAdmin 管理员角色
const RoleAdmin = "admin"

// jwtIssuer 令牌签发方
const jwtIssuer = "vegan-eats"

// InterfaceJWTService 定义管理员会话服务接口
type InterfaceJWTService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Verify(ctx context.Context, tokenString string) bool
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Logout(ctx context.Context, tokenString string) error
	EnsureAdmin(ctx context.Context, username, password string) error
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

// JWTClaims 定义JWT令牌的声明结构，sub 为用户名，jti 用于注销
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService 提供管理员登录、令牌校验和注销
type JWTService struct {
	secretKey string
	ttl       time.Duration
	Admins    repository.AdminRepository
	Tokens    InterfaceTokenStore
	Now       func() time.Time
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, admins repository.AdminRepository, tokens InterfaceTokenStore) *JWTService {
	ttl := cfg.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		ttl:       ttl,
		Admins:    admins,
		Tokens:    tokens,
		Now:       time.Now,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(username string) (string, time.Time, error) {
	now := s.Now()
	expirationTime := now.Add(s.ttl)

	claims := &JWTClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

// ExtractClaims 校验签名和有效期并提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Role != RoleAdmin || claims.ID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// 1 Login 校验管理员凭据，凭据不匹配时返回 nil, nil
func (s *JWTService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.Admins.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, nil
	}

	token, expiresAt, err := s.GenerateToken(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		Username:  admin.Username,
	}, nil
}

// 2 Verify 令牌签名有效、未过期且未被注销时返回 true
func (s *JWTService) Verify(ctx context.Context, tokenString string) bool {
	claims, err := s.ExtractClaims(tokenString)
	if err != nil {
		return false
	}
	revoked, err := s.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		Logger.Error("检查令牌注销状态失败: %v", err)
		return false
	}
	return !revoked
}

// 3 Logout 注销令牌直到其过期时间
func (s *JWTService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ExtractClaims(tokenString)
	if err != nil {
		return err
	}
	until := s.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.Tokens.Revoke(ctx, claims.ID, until)
}

// 4 EnsureAdmin 管理员不存在时以 bcrypt 哈希密码创建
func (s *JWTService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.Admins.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if password == "" {
		return errors.New("default admin password is empty")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	err = s.Admins.Create(ctx, &models.Admin{Username: username, Password: hashed})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	if err == nil {
		Logger.Info("已创建默认管理员: %s", username)
	}
	return err
}

// compile-time check
var _ InterfaceJWTService = (*JWTService)(nil)
