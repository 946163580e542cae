// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在 repository/ 子包，数据库驱动在 driver/ 子包
//   - 初始化时通过依赖注入传入实现
package storage

import (
	"context"

	"storefront/internal/shared/model"
)

// UserStore 用户存储接口
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	// FindExistingUser 注册查重：用户名或邮箱任一已被占用时返回占用者（单条析取查询）
	FindExistingUser(ctx context.Context, username, email string) (*model.User, error)
	// GetUserByUsernameOrEmail 登录识别：标识串按用户名或邮箱查找，用户名匹配优先
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// CatalogStore 商品目录存储接口
type CatalogStore interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	// ListActiveProducts 上架商品列表（最新在前），每个商品带首个变体的预览图
	ListActiveProducts(ctx context.Context) ([]*model.Product, error)
	// GetProduct 按 ID 查商品（含全部变体，按创建顺序排列）；不存在返回 nil
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateVariant(ctx context.Context, v *model.Variant) error
	// GetVariant 按 ID 查变体（含所属商品）；不存在返回 nil
	GetVariant(ctx context.Context, id string) (*model.Variant, error)
}

// CartStore 购物车存储接口
//
// 涉及库存校验的写操作在存储边界执行条件写入（单条带守卫的 upsert/update），
// 保证并发下数量不为负、不绕过库存闸门。
type CartStore interface {
	// ListCartLines 用户购物车（最近加入在前），行内联带变体和商品
	ListCartLines(ctx context.Context, userID string) ([]*model.CartLine, error)
	// GetCartLine 按 ID 查行（不校验归属，归属判断在 service 层）；不存在返回 nil
	GetCartLine(ctx context.Context, lineID string) (*model.CartLine, error)
	// GetCartLineByUserAndVariant 按 (user, variant) 查行；不存在返回 nil
	GetCartLineByUserAndVariant(ctx context.Context, userID, variantID string) (*model.CartLine, error)
	// UpsertCartLine 插入新行，或在 (user_id, variant_id) 冲突时把 quantity 累加；
	// 合并后的总量超出 stock 时不写入并返回 ok=false
	UpsertCartLine(ctx context.Context, line *model.CartLine, stock int) (ok bool, err error)
	// SetCartLineQuantity 绝对设置数量；quantity 超出变体当前库存时不写入并返回 ok=false
	SetCartLineQuantity(ctx context.Context, lineID string, quantity int) (ok bool, err error)
	// DeleteCartLine 删除行；行不存在返回 ok=false
	DeleteCartLine(ctx context.Context, lineID string) (ok bool, err error)
}

// PersistentStore 持久化存储组合接口
type PersistentStore interface {
	UserStore
	CatalogStore
	CartStore

	Close() error
}
