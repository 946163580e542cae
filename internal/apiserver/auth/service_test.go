package auth

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/shared/errs"
	sqlitedriver "storefront/internal/shared/storage/driver/sqlite"
	"storefront/internal/shared/storage/repository"
)

// newTestService 创建基于 SQLite 内存数据库的认证服务
func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()
	db, err := sqlitedriver.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dialect := sqlitedriver.NewDialect()
	if err := dialect.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := repository.NewStore(db, dialect)
	t.Cleanup(func() { store.Close() })
	return NewService(store, testConfig()), store
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Test123!",
		FullName: "Alice Doe",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Error("user ID not assigned")
	}
	if user.PasswordHash == "Test123!" {
		t.Error("password stored in plaintext")
	}
	if user.IsAdmin {
		t.Error("new user must not be admin")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Username: "alice", Email: "alice@example.com", Password: "Test123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 用户名占用
	_, err = svc.Register(ctx, RegisterParams{
		Username: "alice", Email: "other@example.com", Password: "Test123!",
	})
	if !errors.Is(err, errs.ErrDuplicateUser) {
		t.Errorf("duplicate username: err = %v, want ErrDuplicateUser", err)
	}

	// 邮箱占用
	_, err = svc.Register(ctx, RegisterParams{
		Username: "other", Email: "alice@example.com", Password: "Test123!",
	})
	if !errors.Is(err, errs.ErrDuplicateUser) {
		t.Errorf("duplicate email: err = %v, want ErrDuplicateUser", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Username: "alice", Email: "alice@example.com", Password: "Test123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 按用户名登录
	user, token, err := svc.Authenticate(ctx, "alice", "Test123!")
	if err != nil {
		t.Fatalf("Authenticate by username: %v", err)
	}
	if token == "" {
		t.Error("no session token issued")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q", user.Username)
	}

	// 按邮箱登录
	_, _, err = svc.Authenticate(ctx, "alice@example.com", "Test123!")
	if err != nil {
		t.Errorf("Authenticate by email: %v", err)
	}

	// 密码错误与用户不存在返回同一错误（防枚举）
	_, _, err = svc.Authenticate(ctx, "alice", "wrong")
	if !errors.Is(err, errs.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	_, _, err = svc.Authenticate(ctx, "ghost", "Test123!")
	if !errors.Is(err, errs.ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResolveSession(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{
		Username: "alice", Email: "alice@example.com", Password: "Test123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, token, err := svc.Authenticate(ctx, "alice", "Test123!")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	// 有效令牌
	user, err := svc.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("resolved user = %s, want %s", user.ID, registered.ID)
	}

	// 空令牌
	if _, err := svc.ResolveSession(ctx, ""); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Errorf("empty token: err = %v, want ErrSessionInvalid", err)
	}

	// 垃圾令牌
	if _, err := svc.ResolveSession(ctx, "garbage"); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Errorf("garbage token: err = %v, want ErrSessionInvalid", err)
	}

	// 用户已删除：令牌本身有效，但会话必须失效
	if err := store.DeleteUser(ctx, registered.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, token); !errors.Is(err, errs.ErrSessionInvalid) {
		t.Errorf("deleted user: err = %v, want ErrSessionInvalid", err)
	}
}
