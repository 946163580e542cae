package currency

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
)

// defaultBase 店铺定价货币
const defaultBase = "CAD"

// Handler 汇率 HTTP 处理器
type Handler struct {
	svc *Service
}

// NewHandler 创建汇率处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册汇率相关路由（公开，无需认证）
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/currency/rates", h.GetRates)
}

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// GetRates 汇率表查询
// GET /api/currency/rates?base=CAD
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = defaultBase
	}
	if !currencyCodeRe.MatchString(base) {
		writeError(w, http.StatusBadRequest, "base must be a 3-letter currency code")
		return
	}

	rates, err := h.svc.GetRates(r.Context(), base)
	if err != nil {
		log.Printf("[currency.rates] error: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch exchange rates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"base":  base,
		"rates": rates,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
