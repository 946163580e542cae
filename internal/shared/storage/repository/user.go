package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/shared/model"
)

// CreateUser 创建用户
// 唯一约束冲突（用户名/邮箱已存在）时返回数据库错误，由 service 层在
// 插入前的查重基础上作为竞态兜底
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO users (id, username, email, password_hash, full_name, phone, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.Phone, user.IsAdmin, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// FindExistingUser 注册查重
// 单条析取查询同时检查两个唯一字段，命中任一即返回占用者；
// 竞态窗口由存储层唯一约束兜底。未找到返回 nil。
func (s *Store) FindExistingUser(ctx context.Context, username, email string) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, username, email, password_hash, full_name, phone, is_admin, created_at, updated_at
		 FROM users
		 WHERE username = $1 OR email = $2
		 LIMIT 1`),
		username, email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsernameOrEmail 按用户名或邮箱查找用户
//
// 同一个标识串既命中某用户的 username 又命中另一用户的 email 时，
// username 匹配优先（ORDER BY 固定优先级），保证登录行为确定。
// 未找到返回 nil。
func (s *Store) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, username, email, password_hash, full_name, phone, is_admin, created_at, updated_at
		 FROM users
		 WHERE username = $1 OR email = $2
		 ORDER BY CASE WHEN username = $3 THEN 0 ELSE 1 END
		 LIMIT 1`),
		identifier, identifier, identifier,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID 通过 ID 查找用户，未找到返回 nil
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, username, email, password_hash, full_name, phone, is_admin, created_at, updated_at
		 FROM users WHERE id = $1`), id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers 列出全部用户
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, username, email, password_hash, full_name, phone, is_admin, created_at, updated_at
		 FROM users ORDER BY created_at DESC`))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.FullName, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser 删除用户（购物车行级联删除）
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM users WHERE id = $1`), id)
	return err
}
