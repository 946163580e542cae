package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
	"storefront/internal/shared/storage"
)

// Service 认证服务
// 负责注册、登录和会话解析；所有失败以 errs 包哨兵错误返回，
// HTTP 状态码映射在 handler 层完成
type Service struct {
	store storage.UserStore
	cfg   Config
}

// NewService 创建认证服务
func NewService(store storage.UserStore, cfg Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// RegisterParams 注册参数
type RegisterParams struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
}

// Register 注册新用户
//
// 插入前用单条析取查询同时检查用户名和邮箱的唯一性，任一被占用返回
// errs.ErrDuplicateUser；密码只存 bcrypt 哈希，明文不落库不返回。
func (s *Service) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	existing, err := s.store.FindExistingUser(ctx, params.Username, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateUser
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           generateID("usr"),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		FullName:     params.FullName,
		Phone:        params.Phone,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate 凭据登录
//
// identifier 同时接受用户名和邮箱；用户不存在与密码不匹配统一返回
// errs.ErrInvalidCredentials（防用户枚举）。成功时签发 24 小时会话令牌。
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !CheckPassword(password, user.PasswordHash) {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := GenerateSessionToken(s.cfg, user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResolveSession 将会话令牌解析为用户
//
// 令牌缺失、格式错误、过期、签名无效，或令牌中的用户已不存在，
// 一律返回 errs.ErrSessionInvalid。无副作用，每个请求都会调用。
func (s *Service) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errs.ErrSessionInvalid
	}
	claims, err := ParseToken(s.cfg, token)
	if err != nil {
		return nil, errs.ErrSessionInvalid
	}
	user, err := s.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrSessionInvalid
	}
	return user, nil
}

// generateID 生成带前缀的唯一标识符（6 字节加密随机数）
func generateID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
