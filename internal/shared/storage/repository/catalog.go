package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/shared/model"
)

// CreateProduct 创建商品
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO products (id, name, description, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`),
		p.ID, p.Name, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// ListActiveProducts 上架商品列表，最新在前
// 预览图取该商品 ID 最小的变体的图片（与商品详情页首个变体一致）
func (s *Store) ListActiveProducts(ctx context.Context) ([]*model.Product, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT p.id, p.name, p.description, p.is_active, p.created_at, p.updated_at,
		        COALESCE((SELECT v.image_url FROM product_variants v
		                  WHERE v.product_id = p.id ORDER BY v.created_at ASC, v.id ASC LIMIT 1), '')
		 FROM products p
		 WHERE p.is_active = `+s.dialect.BooleanLiteral(true)+`
		 ORDER BY p.created_at DESC, p.id DESC`))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p := &model.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct 按 ID 查商品，附带全部变体（按 ID 排序）；未找到返回 nil
func (s *Store) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p := &model.Product{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, name, description, is_active, created_at, updated_at
		 FROM products WHERE id = $1`), id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, product_id, sku, material, color, price, stock_quantity, image_url, is_active, created_at
		 FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC, id ASC`), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		v := &model.Variant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Material, &v.Color,
			&v.Price, &v.StockQuantity, &v.ImageURL, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(p.Variants) > 0 {
		p.ImageURL = p.Variants[0].ImageURL
	}
	return p, nil
}

// CreateVariant 创建商品变体
func (s *Store) CreateVariant(ctx context.Context, v *model.Variant) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO product_variants (id, product_id, sku, material, color, price, stock_quantity, image_url, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`),
		v.ID, v.ProductID, v.SKU, v.Material, v.Color, v.Price,
		v.StockQuantity, v.ImageURL, v.IsActive, v.CreatedAt,
	)
	return err
}

// GetVariant 按 ID 查变体，附带所属商品；未找到返回 nil
func (s *Store) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	v := &model.Variant{}
	p := &model.Product{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT v.id, v.product_id, v.sku, v.material, v.color, v.price, v.stock_quantity, v.image_url, v.is_active, v.created_at,
		        p.id, p.name, p.description, p.is_active, p.created_at, p.updated_at
		 FROM product_variants v
		 JOIN products p ON p.id = v.product_id
		 WHERE v.id = $1`), id,
	).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Material, &v.Color,
		&v.Price, &v.StockQuantity, &v.ImageURL, &v.IsActive, &v.CreatedAt,
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.Product = p
	return v, nil
}
