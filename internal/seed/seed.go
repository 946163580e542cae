// Package seed 演示数据填充
//
// 写入两个演示账号和十款铺板砖商品（每款一个默认变体），用于本地开发和演示环境。
// 幂等：已有同名用户时跳过整个填充，不会产生重复数据。
package seed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"storefront/internal/apiserver/auth"
	"storefront/internal/shared/model"
	"storefront/internal/shared/storage"
)

// 演示账号凭据（只用于开发/演示环境）
const (
	DemoUserPassword  = "Test123!"
	DemoAdminPassword = "Admin123!"
)

// productSpec 种子商品定义
type productSpec struct {
	name        string
	description string
	price       float64
	stock       int
	material    string
	color       string
	imageURL    string
}

var demoProducts = []productSpec{
	{
		name:        "Classic Wood Composite Deck Tile",
		description: "Durable weather-resistant composite deck tiles perfect for outdoor spaces. Easy click-together installation.",
		price:       24.99, stock: 150, material: "Wood Composite", color: "Dark Gray",
		imageURL: "https://images.unsplash.com/photo-1615971677499-5467cbab01c0?w=500",
	},
	{
		name:        "Premium Acacia Hardwood Tile",
		description: "Natural acacia hardwood deck tiles with beautiful grain patterns. Pre-oiled finish for longevity.",
		price:       34.99, stock: 100, material: "Acacia", color: "Natural Brown",
		imageURL: "https://images.unsplash.com/photo-1533090161767-e6ffed986c88?w=500",
	},
	{
		name:        "Modern Plastic Deck Tile - White",
		description: "Lightweight and maintenance-free plastic deck tiles. UV-resistant and perfect for balconies.",
		price:       15.99, stock: 200, material: "Plastic", color: "White",
		imageURL: "https://images.unsplash.com/photo-1600585152915-d208bec867a1?w=500",
	},
	{
		name:        "Rustic Wood Composite - Brown",
		description: "Classic brown wood composite tiles with anti-slip surface. Ideal for poolside applications.",
		price:       27.99, stock: 120, material: "Wood Composite", color: "Brown",
		imageURL: "https://images.unsplash.com/photo-1600047509807-ba8f99d2cdde?w=500",
	},
	{
		name:        "Elegant Acacia Deck Tile Set",
		description: "Premium acacia wood tile set with smooth finish. Perfect for creating a warm outdoor ambiance.",
		price:       39.99, stock: 80, material: "Acacia", color: "Honey Brown",
		imageURL: "https://images.unsplash.com/photo-1600585152220-90363fe7e115?w=500",
	},
	{
		name:        "Contemporary Plastic Tile - Black",
		description: "Sleek black plastic deck tiles with modern aesthetic. Drainage holes for water management.",
		price:       18.99, stock: 180, material: "Plastic", color: "Black",
		imageURL: "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea?w=500",
	},
	{
		name:        "Premium Composite Tile - Charcoal",
		description: "High-quality composite deck tiles in sophisticated charcoal. Fade-resistant technology.",
		price:       29.99, stock: 140, material: "Wood Composite", color: "Charcoal",
		imageURL: "https://images.unsplash.com/photo-1600573472591-ee6b68d14c68?w=500",
	},
	{
		name:        "Natural Acacia Wood Tile",
		description: "Authentic acacia wood deck tiles with natural finish. Easy to maintain and long-lasting.",
		price:       32.99, stock: 90, material: "Acacia", color: "Natural",
		imageURL: "https://images.unsplash.com/photo-1600566752355-35792bedcfea?w=500",
	},
	{
		name:        "Budget Plastic Deck Tile - Gray",
		description: "Affordable plastic deck tiles in neutral gray. Perfect for DIY projects and temporary installations.",
		price:       12.99, stock: 250, material: "Plastic", color: "Gray",
		imageURL: "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=500",
	},
	{
		name:        "Luxury Composite Tile - Espresso",
		description: "Top-tier wood composite deck tiles in rich espresso color. Commercial-grade durability.",
		price:       44.99, stock: 60, material: "Wood Composite", color: "Espresso",
		imageURL: "https://images.unsplash.com/photo-1600607687644-c7171b42498b?w=500",
	},
}

// Run 执行演示数据填充
// 库里已存在 testuser 时视为已填充，直接返回
func Run(ctx context.Context, store storage.PersistentStore) error {
	if existing, err := store.GetUserByUsernameOrEmail(ctx, "testuser"); err != nil {
		return fmt.Errorf("seed: check existing: %w", err)
	} else if existing != nil {
		log.Printf("[seed] 数据已存在，跳过填充")
		return nil
	}

	now := time.Now()

	userHash, err := auth.HashPassword(DemoUserPassword)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	adminHash, err := auth.HashPassword(DemoAdminPassword)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	users := []*model.User{
		{
			ID: generateID("usr"), Username: "testuser", Email: "test@example.com",
			PasswordHash: userHash, FullName: "Test User", Phone: "123-456-7890",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: generateID("usr"), Username: "admin", Email: "admin@decktiles.com",
			PasswordHash: adminHash, FullName: "Admin User", IsAdmin: true,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, u := range users {
		if err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Username, err)
		}
	}
	log.Printf("[seed] 已创建 %d 个演示账号", len(users))

	for i, spec := range demoProducts {
		p := &model.Product{
			ID:          generateID("prd"),
			Name:        spec.name,
			Description: spec.description,
			IsActive:    true,
			CreatedAt:   now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:   now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := store.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed: create product %q: %w", spec.name, err)
		}
		v := &model.Variant{
			ID:            generateID("var"),
			ProductID:     p.ID,
			SKU:           fmt.Sprintf("TILE-%03d", i+1),
			Material:      spec.material,
			Color:         spec.color,
			Price:         spec.price,
			StockQuantity: spec.stock,
			ImageURL:      spec.imageURL,
			IsActive:      true,
			CreatedAt:     p.CreatedAt,
		}
		if err := store.CreateVariant(ctx, v); err != nil {
			return fmt.Errorf("seed: create variant for %q: %w", spec.name, err)
		}
	}
	log.Printf("[seed] 已创建 %d 款商品", len(demoProducts))

	return nil
}

// generateID 生成带前缀的随机 ID
func generateID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
