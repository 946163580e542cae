package regression

import (
	"net/http"
	"testing"
)

// ============================================================================
// 购物车端到端回归测试
// ============================================================================

// TestCart_RequiresAuth 购物车全部接口需要认证
func TestCart_RequiresAuth(t *testing.T) {
	cases := []struct{ method, path string }{
		{"GET", "/api/cart"},
		{"POST", "/api/cart"},
		{"PATCH", "/api/cart/cart-001"},
		{"DELETE", "/api/cart/cart-001"},
	}
	for _, c := range cases {
		w := makeRequest(c.method, c.path, map[string]interface{}{"variantId": "x", "quantity": 1})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", c.method, c.path, w.Code)
		}
	}
}

// TestCart_AddAndList 加购与列表
func TestCart_AddAndList(t *testing.T) {
	token := registerAndLogin(t, "cart-add")
	variantID := seedVariant(t, 10)

	t.Run("空购物车", func(t *testing.T) {
		w := makeAuthRequest("GET", "/api/cart", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		resp := parseJSONResponse(w)
		items, ok := resp["cartItems"].([]interface{})
		if !ok {
			t.Fatalf("cartItems missing or null: %s", w.Body.String())
		}
		if len(items) != 0 {
			t.Errorf("len = %d, want 0", len(items))
		}
	})

	t.Run("加购", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 3,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
		}
		resp := parseJSONResponse(w)
		item, _ := resp["cartItem"].(map[string]interface{})
		if item == nil {
			t.Fatalf("no cartItem: %v", resp)
		}
		if item["quantity"] != float64(3) {
			t.Errorf("quantity = %v, want 3", item["quantity"])
		}
		// 行内联带变体和商品，前端不需要二次请求
		variant, _ := item["variant"].(map[string]interface{})
		if variant == nil {
			t.Fatal("cart line missing variant")
		}
		if variant["product"] == nil {
			t.Error("cart line variant missing product")
		}
	})

	t.Run("同变体再次加购合并", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 4,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
		}

		w = makeAuthRequest("GET", "/api/cart", token, nil)
		resp := parseJSONResponse(w)
		items, _ := resp["cartItems"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("len = %d, want 1 (merge-on-add)", len(items))
		}
		line := items[0].(map[string]interface{})
		if line["quantity"] != float64(7) {
			t.Errorf("quantity = %v, want 7", line["quantity"])
		}
	})
}

// TestCart_StockGate 库存闸门
func TestCart_StockGate(t *testing.T) {
	token := registerAndLogin(t, "cart-stock")
	variantID := seedVariant(t, 10)

	t.Run("超出库存直接拒绝", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 11,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("合并后超出库存拒绝且行不变", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 8,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("add 8: status = %d", w.Code)
		}

		// 增量 5 单独看合法，合并后 13 > 10
		w = makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 5,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("merge over stock: status = %d, want 400", w.Code)
		}

		w = makeAuthRequest("GET", "/api/cart", token, nil)
		items, _ := parseJSONResponse(w)["cartItems"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("len = %d", len(items))
		}
		if q := items[0].(map[string]interface{})["quantity"]; q != float64(8) {
			t.Errorf("quantity = %v, want unchanged 8", q)
		}
	})

	t.Run("恰好补到库存上限", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": variantID, "quantity": 2,
		})
		if w.Code != http.StatusCreated {
			t.Errorf("add up to limit: status = %d, body: %s", w.Code, w.Body.String())
		}
	})
}

// TestCart_Update 设置行数量
func TestCart_Update(t *testing.T) {
	token := registerAndLogin(t, "cart-update")
	variantID := seedVariant(t, 10)

	w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
		"variantId": variantID, "quantity": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: %d", w.Code)
	}
	lineID := parseJSONResponse(w)["cartItem"].(map[string]interface{})["id"].(string)

	t.Run("绝对设置", func(t *testing.T) {
		w := makeAuthRequest("PATCH", "/api/cart/"+lineID, token, map[string]interface{}{
			"quantity": 5,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
		}
		item := parseJSONResponse(w)["cartItem"].(map[string]interface{})
		if item["quantity"] != float64(5) {
			t.Errorf("quantity = %v, want 5 (absolute, not additive)", item["quantity"])
		}
	})

	t.Run("超出库存", func(t *testing.T) {
		w := makeAuthRequest("PATCH", "/api/cart/"+lineID, token, map[string]interface{}{
			"quantity": 11,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("数量小于 1", func(t *testing.T) {
		w := makeAuthRequest("PATCH", "/api/cart/"+lineID, token, map[string]interface{}{
			"quantity": -2,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("行不存在", func(t *testing.T) {
		w := makeAuthRequest("PATCH", "/api/cart/cart-ghost", token, map[string]interface{}{
			"quantity": 2,
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

// TestCart_Ownership 行归属校验
func TestCart_Ownership(t *testing.T) {
	alice := registerAndLogin(t, "cart-owner-alice")
	bob := registerAndLogin(t, "cart-owner-bob")
	variantID := seedVariant(t, 10)

	w := makeAuthRequest("POST", "/api/cart", alice, map[string]interface{}{
		"variantId": variantID, "quantity": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: %d", w.Code)
	}
	lineID := parseJSONResponse(w)["cartItem"].(map[string]interface{})["id"].(string)

	// 他人修改 → 403
	w = makeAuthRequest("PATCH", "/api/cart/"+lineID, bob, map[string]interface{}{
		"quantity": 1,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("update other's line: status = %d, want 403", w.Code)
	}

	// 他人删除 → 403，行保留
	w = makeAuthRequest("DELETE", "/api/cart/"+lineID, bob, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("delete other's line: status = %d, want 403", w.Code)
	}

	w = makeAuthRequest("GET", "/api/cart", alice, nil)
	items, _ := parseJSONResponse(w)["cartItems"].([]interface{})
	if len(items) != 1 {
		t.Errorf("alice's line lost after bob's forbidden delete")
	}

	// bob 看不到 alice 的购物车
	w = makeAuthRequest("GET", "/api/cart", bob, nil)
	items, _ = parseJSONResponse(w)["cartItems"].([]interface{})
	if len(items) != 0 {
		t.Errorf("bob sees alice's cart: %v", items)
	}
}

// TestCart_Remove 删除行
func TestCart_Remove(t *testing.T) {
	token := registerAndLogin(t, "cart-remove")
	variantID := seedVariant(t, 10)

	w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
		"variantId": variantID, "quantity": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: %d", w.Code)
	}
	lineID := parseJSONResponse(w)["cartItem"].(map[string]interface{})["id"].(string)

	w = makeAuthRequest("DELETE", "/api/cart/"+lineID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}

	// 重复删除 → 404
	w = makeAuthRequest("DELETE", "/api/cart/"+lineID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete: status = %d, want 404", w.Code)
	}
}

// TestCart_VariantValidation 加购对变体状态的校验
func TestCart_VariantValidation(t *testing.T) {
	token := registerAndLogin(t, "cart-variant")

	t.Run("变体不存在", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"variantId": "var-ghost", "quantity": 1,
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("缺少字段", func(t *testing.T) {
		w := makeAuthRequest("POST", "/api/cart", token, map[string]interface{}{
			"quantity": 1,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
