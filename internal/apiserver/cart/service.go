// Package cart 购物车领域 - 库存校验与行项目一致性核心
//
// 所有写操作都从存储层重新读取权威的库存/归属状态，不信任客户端快照；
// 涉及库存闸门的写入在存储边界以单条条件语句完成（见 repository 层），
// 这是无预留/无锁模型下对过期 UI 竞态的唯一防线。
package cart

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
	"storefront/internal/shared/storage"
)

// Service 购物车服务
type Service struct {
	store storage.CartStore
	cat   storage.CatalogStore
}

// NewService 创建购物车服务
func NewService(store storage.CartStore, cat storage.CatalogStore) *Service {
	return &Service{store: store, cat: cat}
}

// GetLines 用户购物车行列表（最近加入在前），空购物车返回空切片
func (s *Service) GetLines(ctx context.Context, userID string) ([]*model.CartLine, error) {
	lines, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []*model.CartLine{}
	}
	return lines, nil
}

// AddLine 加购
//
// 校验顺序：数量 → 变体存在 → 变体在售 → 商品在售 → 库存。
// 同一 (user, variant) 已有行时数量累加（merge-on-add），合并后的总量
// 再次对库存校验：即使本次增量单独看能通过，总量超出也判
// errs.ErrInsufficientStock，且既有行保持不变。
func (s *Service) AddLine(ctx context.Context, userID, variantID string, quantity int) (*model.CartLine, error) {
	if quantity < 1 {
		return nil, errs.ErrInvalidQuantity
	}

	variant, err := s.cat.GetVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, errs.ErrVariantNotFound
	}
	if !variant.IsActive {
		return nil, errs.ErrVariantUnavailable
	}
	if variant.Product == nil || !variant.Product.IsActive {
		return nil, errs.ErrProductUnavailable
	}
	if variant.StockQuantity < quantity {
		return nil, errs.ErrInsufficientStock
	}

	line := &model.CartLine{
		ID:        generateID("cart"),
		UserID:    userID,
		VariantID: variantID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	// 合并与库存闸门在同一条 upsert 内完成：合并后总量超库存时写入不发生
	ok, err := s.store.UpsertCartLine(ctx, line, variant.StockQuantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrInsufficientStock
	}

	// 合并命中既有行时 ID 是旧行的，按 (user, variant) 取回结果行
	return s.store.GetCartLineByUserAndVariant(ctx, userID, variantID)
}

// UpdateLine 绝对设置行数量（与 AddLine 的累加语义不同）
//
// 校验顺序：数量 → 行存在 → 归属 → 库存。存在性先于归属：
// 对不存在的行做归属判断没有意义。
func (s *Service) UpdateLine(ctx context.Context, userID, lineID string, quantity int) (*model.CartLine, error) {
	if quantity < 1 {
		return nil, errs.ErrInvalidQuantity
	}

	line, err := s.store.GetCartLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, errs.ErrLineNotFound
	}
	if line.UserID != userID {
		return nil, errs.ErrForbidden
	}
	if line.Variant.StockQuantity < quantity {
		return nil, errs.ErrInsufficientStock
	}

	// 带库存守卫的条件 UPDATE，读-写间隙的库存变化由守卫兜底
	ok, err := s.store.SetCartLineQuantity(ctx, lineID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 写入未发生：行已被删除，或守卫判定库存不足
		if line, err = s.store.GetCartLine(ctx, lineID); err != nil {
			return nil, err
		}
		if line == nil {
			return nil, errs.ErrLineNotFound
		}
		return nil, errs.ErrInsufficientStock
	}

	return s.store.GetCartLine(ctx, lineID)
}

// RemoveLine 删除购物车行
//
// 与 UpdateLine 相同的存在性→归属校验顺序；删除是无条件的，
// 但对已删除行的重复删除返回 errs.ErrLineNotFound 而非成功。
func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) error {
	line, err := s.store.GetCartLine(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return errs.ErrLineNotFound
	}
	if line.UserID != userID {
		return errs.ErrForbidden
	}

	ok, err := s.store.DeleteCartLine(ctx, lineID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrLineNotFound
	}
	return nil
}

// generateID 生成带前缀的唯一标识符（6 字节加密随机数）
func generateID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
