package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront/internal/apiserver/auth"
	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
)

// Handler 购物车 HTTP 处理器
// 错误种类 → HTTP 状态码的映射只发生在这一层
type Handler struct {
	svc *Service
}

// NewHandler 创建购物车处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册购物车相关路由（全部需要会话认证）
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.List)
	mux.HandleFunc("POST /api/cart", h.Add)
	mux.HandleFunc("PATCH /api/cart/{id}", h.Update)
	mux.HandleFunc("DELETE /api/cart/{id}", h.Remove)
}

// ============================================================================
// 请求类型
// ============================================================================

type addRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

// ============================================================================
// HTTP 处理函数
// ============================================================================

// List 获取购物车
// GET /api/cart
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.GetAuthUser(r.Context())

	lines, err := h.svc.GetLines(r.Context(), user.ID)
	if err != nil {
		log.Printf("[cart.list] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*model.CartLine{"cartItems": lines})
}

// Add 加购
// POST /api/cart
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	user := auth.GetAuthUser(r.Context())

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VariantID == "" || req.Quantity == 0 {
		writeError(w, http.StatusBadRequest, "variantId and quantity are required")
		return
	}

	line, err := h.svc.AddLine(r.Context(), user.ID, req.VariantID, req.Quantity)
	if err != nil {
		h.writeCartError(w, "cart.add", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Added to cart",
		"cartItem": line,
	})
}

// Update 设置行数量
// PATCH /api/cart/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.GetAuthUser(r.Context())
	lineID := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	line, err := h.svc.UpdateLine(r.Context(), user.ID, lineID, req.Quantity)
	if err != nil {
		h.writeCartError(w, "cart.update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Cart item updated",
		"cartItem": line,
	})
}

// Remove 删除行
// DELETE /api/cart/{id}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	user := auth.GetAuthUser(r.Context())
	lineID := r.PathValue("id")

	if err := h.svc.RemoveLine(r.Context(), user.ID, lineID); err != nil {
		h.writeCartError(w, "cart.remove", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// writeCartError 购物车错误种类 → HTTP 状态码
//
//	404: 变体/商品不存在或不可售、行不存在
//	403: 越权
//	400: 数量非法、库存不足
//	500: 其余（细节只记日志，不外泄）
func (h *Handler) writeCartError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, errs.ErrVariantNotFound),
		errors.Is(err, errs.ErrVariantUnavailable),
		errors.Is(err, errs.ErrProductUnavailable),
		errors.Is(err, errs.ErrLineNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrInvalidQuantity),
		errors.Is(err, errs.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[%s] error: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ============================================================================
// 工具函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
