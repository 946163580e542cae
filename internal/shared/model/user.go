package model

import "time"

// User 商城用户
// username 和 email 全局唯一，由存储层唯一约束兜底
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never expose in JSON
	FullName     string    `json:"fullName" db:"full_name"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
