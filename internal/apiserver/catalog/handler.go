package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront/internal/shared/errs"
)

// Handler 目录 HTTP 处理器
type Handler struct {
	svc *Service
}

// NewHandler 创建目录处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册目录相关路由（公开，无需认证）
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.List)
	mux.HandleFunc("GET /api/products/{id}", h.Get)
}

// List 上架商品列表
// GET /api/products
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		log.Printf("[catalog.list] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get 商品详情
// GET /api/products/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, errs.ErrProductNotFound) || errors.Is(err, errs.ErrProductUnavailable) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[catalog.get] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
