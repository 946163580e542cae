package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/shared/model"
)

// cartLineColumns 购物车行联表查询的公共列清单
const cartLineColumns = `
	ci.id, ci.user_id, ci.variant_id, ci.quantity, ci.added_at,
	v.id, v.product_id, v.sku, v.material, v.color, v.price, v.stock_quantity, v.image_url, v.is_active, v.created_at,
	p.id, p.name, p.description, p.is_active, p.created_at, p.updated_at`

// scanCartLine 扫描一行联表结果
func scanCartLine(scan func(dest ...any) error) (*model.CartLine, error) {
	line := &model.CartLine{}
	v := &model.Variant{}
	p := &model.Product{}
	err := scan(
		&line.ID, &line.UserID, &line.VariantID, &line.Quantity, &line.AddedAt,
		&v.ID, &v.ProductID, &v.SKU, &v.Material, &v.Color, &v.Price,
		&v.StockQuantity, &v.ImageURL, &v.IsActive, &v.CreatedAt,
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Product = p
	line.Variant = v
	return line, nil
}

// ListCartLines 用户购物车行列表，最近加入在前，联带变体和商品
func (s *Store) ListCartLines(ctx context.Context, userID string) ([]*model.CartLine, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+cartLineColumns+`
		 FROM cart_items ci
		 JOIN product_variants v ON v.id = ci.variant_id
		 JOIN products p ON p.id = v.product_id
		 WHERE ci.user_id = $1
		 ORDER BY ci.added_at DESC, ci.id DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*model.CartLine
	for rows.Next() {
		line, err := scanCartLine(rows.Scan)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetCartLine 按行 ID 查询（不校验归属，归属判断在 service 层）；未找到返回 nil
func (s *Store) GetCartLine(ctx context.Context, lineID string) (*model.CartLine, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+cartLineColumns+`
		 FROM cart_items ci
		 JOIN product_variants v ON v.id = ci.variant_id
		 JOIN products p ON p.id = v.product_id
		 WHERE ci.id = $1`), lineID)
	line, err := scanCartLine(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return line, nil
}

// GetCartLineByUserAndVariant 按 (user_id, variant_id) 查行；未找到返回 nil
func (s *Store) GetCartLineByUserAndVariant(ctx context.Context, userID, variantID string) (*model.CartLine, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+cartLineColumns+`
		 FROM cart_items ci
		 JOIN product_variants v ON v.id = ci.variant_id
		 JOIN products p ON p.id = v.product_id
		 WHERE ci.user_id = $1 AND ci.variant_id = $2`), userID, variantID)
	line, err := scanCartLine(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpsertCartLine 插入购物车行，(user_id, variant_id) 冲突时数量累加
//
// 库存闸门在同一条语句内执行：合并后的总量超出 stock 时 DO UPDATE 的
// WHERE 不成立，写入不发生，返回 ok=false。单条条件写入保证并发的
// 读-改-写不会绕过库存校验。
// PostgreSQL 与 SQLite 的 ON CONFLICT ... DO UPDATE ... WHERE 语法一致。
func (s *Store) UpsertCartLine(ctx context.Context, line *model.CartLine, stock int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO cart_items (id, user_id, variant_id, quantity, added_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, variant_id) DO UPDATE
		 SET quantity = cart_items.quantity + excluded.quantity
		 WHERE cart_items.quantity + excluded.quantity <= $6`),
		line.ID, line.UserID, line.VariantID, line.Quantity, line.AddedAt, stock,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetCartLineQuantity 绝对设置行数量，超出变体当前库存时不写入并返回 ok=false
//
// 子查询守卫是 service 层先读后写的竞态兜底：即便读到的库存已过期，
// 这条 UPDATE 也不会把数量设到超过写入时刻的库存。
func (s *Store) SetCartLineQuantity(ctx context.Context, lineID string, quantity int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE cart_items SET quantity = $1
		 WHERE id = $2
		   AND $3 <= (SELECT stock_quantity FROM product_variants WHERE id = cart_items.variant_id)`),
		quantity, lineID, quantity,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteCartLine 删除购物车行；行不存在返回 ok=false（重复删除可被识别）
func (s *Store) DeleteCartLine(ctx context.Context, lineID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM cart_items WHERE id = $1`), lineID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
