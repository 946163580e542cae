// Package model 商城领域模型
//
// 所有持久化实体的 Go 结构体定义，供 repository / service / handler 各层共用。
// 字段命名遵循前端契约（camelCase JSON），数据库列名见 db tag。
package model

import "time"

// Product 商品（目录条目）
// is_active=false 的商品对外不可见、不可购买
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Variants 商品的全部变体（按需加载，列表接口只带首个变体的图片）
	Variants []*Variant `json:"variants,omitempty" db:"-"`
	// ImageURL 列表展示用的预览图（取首个变体的图片）
	ImageURL string `json:"imageUrl,omitempty" db:"-"`
}

// Variant 商品变体（可购买单元）
// 库存只在此处记录；购物车核心只读库存做校验，不做扣减
type Variant struct {
	ID            string    `json:"id" db:"id"`
	ProductID     string    `json:"productId" db:"product_id"`
	SKU           string    `json:"sku" db:"sku"`
	Material      string    `json:"material,omitempty" db:"material"`
	Color         string    `json:"color,omitempty" db:"color"`
	Price         float64   `json:"price" db:"price"`
	StockQuantity int       `json:"stockQuantity" db:"stock_quantity"`
	ImageURL      string    `json:"imageUrl,omitempty" db:"image_url"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Product 所属商品（购物车展示时联表带出）
	Product *Product `json:"product,omitempty" db:"-"`
}
