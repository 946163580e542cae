package model

import "time"

// CartLine 购物车行项目
// (user_id, variant_id) 全局唯一：同一变体重复加购时合并数量而非新增行，
// 由存储层唯一约束 + 条件 upsert 保证
type CartLine struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	VariantID string    `json:"variantId" db:"variant_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`

	// Variant 联表带出的变体信息（含所属商品），用于前端展示
	Variant *Variant `json:"variant,omitempty" db:"-"`
}
