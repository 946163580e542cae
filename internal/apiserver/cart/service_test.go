package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
	sqlitedriver "storefront/internal/shared/storage/driver/sqlite"
	"storefront/internal/shared/storage/repository"
)

// fixture 购物车测试夹具：内存库 + 两个用户 + 一个 10 件库存的变体
type fixture struct {
	svc   *Service
	store *repository.Store
	alice string
	bob   string
}

func newFixture(t *testing.T) *fixture {
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

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	for _, u := range []struct{ id, name string }{
		{"usr-alice", "alice"}, {"usr-bob", "bob"},
	} {
		err := store.CreateUser(ctx, &model.User{
			ID: u.id, Username: u.name, Email: u.name + "@example.com",
			PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("create user %s: %v", u.name, err)
		}
	}

	if err := store.CreateProduct(ctx, &model.Product{
		ID: "prd-001", Name: "Deck Tile", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := store.CreateVariant(ctx, &model.Variant{
		ID: "var-001", ProductID: "prd-001", SKU: "SKU-001",
		Price: 24.99, StockQuantity: 10, IsActive: true, CreatedAt: now,
	}); err != nil {
		t.Fatalf("create variant: %v", err)
	}

	return &fixture{
		svc:   NewService(store, store),
		store: store,
		alice: "usr-alice",
		bob:   "usr-bob",
	}
}

// addVariant 追加一个变体，可控制在售状态和所属商品
func (f *fixture) addVariant(t *testing.T, id, productID string, stock int, active bool) {
	t.Helper()
	err := f.store.CreateVariant(context.Background(), &model.Variant{
		ID: id, ProductID: productID, SKU: "SKU-" + id,
		Price: 9.99, StockQuantity: stock, IsActive: active,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create variant %s: %v", id, err)
	}
}

// ============================================================================
// AddLine 测试
// ============================================================================

func TestAddLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddLine(ctx, f.alice, "var-001", 3)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if line.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", line.Quantity)
	}
	if line.Variant == nil || line.Variant.Product == nil {
		t.Fatal("line must carry variant and product")
	}
	if line.Variant.Product.Name != "Deck Tile" {
		t.Errorf("Product.Name = %q", line.Variant.Product.Name)
	}
}

func TestAddLine_MergeOnAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.AddLine(ctx, f.alice, "var-001", 3)
	if err != nil {
		t.Fatalf("first AddLine: %v", err)
	}

	// 同变体再次加购：数量累加到既有行，不新建行
	merged, err := f.svc.AddLine(ctx, f.alice, "var-001", 4)
	if err != nil {
		t.Fatalf("second AddLine: %v", err)
	}
	if merged.ID != first.ID {
		t.Errorf("merge created a new line: %s != %s", merged.ID, first.ID)
	}
	if merged.Quantity != 7 {
		t.Errorf("merged Quantity = %d, want 7", merged.Quantity)
	}

	lines, err := f.svc.GetLines(ctx, f.alice)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("len(lines) = %d, want 1", len(lines))
	}
}

// TestAddLine_MergeStockGate 增量单独看能通过、合并后超库存也必须拒绝，
// 且既有行保持不变
func TestAddLine_MergeStockGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddLine(ctx, f.alice, "var-001", 8); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// 库存 10，已有 8，+5 超出
	_, err := f.svc.AddLine(ctx, f.alice, "var-001", 5)
	if !errors.Is(err, errs.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	lines, _ := f.svc.GetLines(ctx, f.alice)
	if len(lines) != 1 || lines[0].Quantity != 8 {
		t.Errorf("rejected merge must leave existing line unchanged, got %+v", lines)
	}

	// 恰好补到库存上限：允许
	if _, err := f.svc.AddLine(ctx, f.alice, "var-001", 2); err != nil {
		t.Errorf("AddLine up to stock limit: %v", err)
	}
}

func TestAddLine_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 无在售商品的变体
	f.store.CreateProduct(ctx, &model.Product{
		ID: "prd-off", Name: "Retired Tile", IsActive: false,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	f.addVariant(t, "var-off-product", "prd-off", 10, true)
	f.addVariant(t, "var-inactive", "prd-001", 10, false)
	f.addVariant(t, "var-empty", "prd-001", 0, true)

	tests := []struct {
		name      string
		variantID string
		quantity  int
		wantErr   error
	}{
		{"数量为零", "var-001", 0, errs.ErrInvalidQuantity},
		{"数量为负", "var-001", -1, errs.ErrInvalidQuantity},
		{"变体不存在", "var-ghost", 1, errs.ErrVariantNotFound},
		{"变体停售", "var-inactive", 1, errs.ErrVariantUnavailable},
		{"商品下架", "var-off-product", 1, errs.ErrProductUnavailable},
		{"库存为零", "var-empty", 1, errs.ErrInsufficientStock},
		{"超出库存", "var-001", 11, errs.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddLine(ctx, f.alice, tt.variantID, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ============================================================================
// UpdateLine 测试
// ============================================================================

func TestUpdateLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddLine(ctx, f.alice, "var-001", 3)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// 绝对设置，不是累加
	updated, err := f.svc.UpdateLine(ctx, f.alice, line.ID, 5)
	if err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", updated.Quantity)
	}

	// 减量同样允许
	updated, err = f.svc.UpdateLine(ctx, f.alice, line.ID, 1)
	if err != nil {
		t.Fatalf("UpdateLine decrease: %v", err)
	}
	if updated.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", updated.Quantity)
	}
}

func TestUpdateLine_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddLine(ctx, f.alice, "var-001", 3)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// 数量小于 1 直接拒绝（删除行要用 DELETE，不用数量 0）
	if _, err := f.svc.UpdateLine(ctx, f.alice, line.ID, 0); !errors.Is(err, errs.ErrInvalidQuantity) {
		t.Errorf("quantity 0: err = %v, want ErrInvalidQuantity", err)
	}

	// 行不存在
	if _, err := f.svc.UpdateLine(ctx, f.alice, "cart-ghost", 2); !errors.Is(err, errs.ErrLineNotFound) {
		t.Errorf("missing line: err = %v, want ErrLineNotFound", err)
	}

	// 非归属用户
	if _, err := f.svc.UpdateLine(ctx, f.bob, line.ID, 2); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("other user's line: err = %v, want ErrForbidden", err)
	}

	// 超出库存：拒绝且数量不变
	if _, err := f.svc.UpdateLine(ctx, f.alice, line.ID, 11); !errors.Is(err, errs.ErrInsufficientStock) {
		t.Errorf("over stock: err = %v, want ErrInsufficientStock", err)
	}
	lines, _ := f.svc.GetLines(ctx, f.alice)
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Errorf("rejected update must leave line unchanged, got %+v", lines)
	}
}

// ============================================================================
// RemoveLine 测试
// ============================================================================

func TestRemoveLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddLine(ctx, f.alice, "var-001", 3)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// 非归属用户删除：拒绝，行保留
	if err := f.svc.RemoveLine(ctx, f.bob, line.ID); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("other user's line: err = %v, want ErrForbidden", err)
	}

	if err := f.svc.RemoveLine(ctx, f.alice, line.ID); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}

	lines, _ := f.svc.GetLines(ctx, f.alice)
	if len(lines) != 0 {
		t.Errorf("cart not empty after remove: %+v", lines)
	}

	// 重复删除
	if err := f.svc.RemoveLine(ctx, f.alice, line.ID); !errors.Is(err, errs.ErrLineNotFound) {
		t.Errorf("double delete: err = %v, want ErrLineNotFound", err)
	}
}

// ============================================================================
// GetLines 测试
// ============================================================================

func TestGetLines_Empty(t *testing.T) {
	f := newFixture(t)

	lines, err := f.svc.GetLines(context.Background(), f.alice)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if lines == nil {
		t.Fatal("empty cart must be an empty slice, not nil")
	}
	if len(lines) != 0 {
		t.Errorf("len = %d, want 0", len(lines))
	}
}

// TestGetLines_Isolation 购物车按用户隔离
func TestGetLines_Isolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddLine(ctx, f.alice, "var-001", 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	bobLines, err := f.svc.GetLines(ctx, f.bob)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if len(bobLines) != 0 {
		t.Errorf("bob sees alice's cart: %+v", bobLines)
	}
}
