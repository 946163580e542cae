package server

import (
	"net/http"

	apidoc "storefront/api"
	"storefront/internal/apiserver/auth"
	"storefront/internal/apiserver/cart"
	"storefront/internal/apiserver/catalog"
	"storefront/internal/apiserver/currency"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 健康检查:
//   - GET  /health            - 服务健康检查
//   - GET  /api/ping          - 前端连通性检查
//
// 认证 (Auth):
//   - POST /api/auth/register - 用户注册
//   - POST /api/auth/login    - 登录（下发会话 Cookie）
//   - POST /api/auth/logout   - 退出（清除 Cookie）
//   - GET  /api/auth/me       - 当前用户
//   - GET  /api/auth/users    - 用户列表（管理员）
//
// 目录 (Catalog，公开):
//   - GET  /api/products      - 上架商品列表
//   - GET  /api/products/{id} - 商品详情（含变体）
//
// 购物车 (Cart，需认证):
//   - GET    /api/cart        - 购物车行列表
//   - POST   /api/cart        - 加购（merge-on-add）
//   - PATCH  /api/cart/{id}   - 设置行数量
//   - DELETE /api/cart/{id}   - 删除行
//
// 汇率 (Currency，公开):
//   - GET  /api/currency/rates - 汇率表（Redis 缓存）
//
// 其他:
//   - GET  /metrics           - Prometheus 指标
//   - GET  /api/openapi.yaml  - OpenAPI 文档
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 健康检查
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/ping", h.Ping)

	// Prometheus 指标端点
	mux.Handle("GET /metrics", h.metrics.Handler())

	// OpenAPI 文档
	mux.HandleFunc("GET /api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(apidoc.OpenAPISpec())
	})

	// Auth 接口
	authSvc := auth.NewService(h.store, h.cfg.Auth)
	authHandler := auth.NewHandler(authSvc, h.cfg.Auth)
	authHandler.RegisterRoutes(mux)

	// 目录接口
	catalogHandler := catalog.NewHandler(catalog.NewService(h.store))
	catalogHandler.RegisterRoutes(mux)

	// 购物车接口
	cartHandler := cart.NewHandler(cart.NewService(h.store, h.store))
	cartHandler.RegisterRoutes(mux)

	// 汇率接口
	currencyHandler := currency.NewHandler(currency.NewService(h.rateSrc, h.rateCache, h.cfg.RateTTL))
	currencyHandler.RegisterRoutes(mux)

	// 中间件（由内向外）：指标 → 认证 → 访问日志 → CORS
	handler := h.metrics.MetricsMiddleware(mux)
	handler = auth.Middleware(authSvc)(handler)
	handler = h.accessLogMiddleware(handler)
	handler = corsMiddleware(handler)

	return handler
}

// corsMiddleware 添加 CORS 头支持跨域请求
// Cookie 会话要求凭据模式：按请求回显 Origin，不能用通配符
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
