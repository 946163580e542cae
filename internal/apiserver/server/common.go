// Package server 提供 HTTP API 路由配置与核心基础设施
//
// 本包实现商城 API Server 的组装层，包括：
//   - 各领域处理器（auth / catalog / cart / currency）的路由注册
//   - 认证、指标、访问日志、CORS 中间件编排
//   - 健康检查
//
// 文件组织：
//   - common.go: Handler 定义和通用工具函数
//   - handler.go: 路由配置
//   - metrics.go: Prometheus 指标
//   - accesslog.go: 结构化访问日志中间件
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/apiserver/auth"
	"storefront/internal/apiserver/currency"
	"storefront/internal/shared/cache"
	"storefront/internal/shared/storage"
	"storefront/pkg/logging"
)

// Config API Server 组装配置
type Config struct {
	Auth auth.Config
	// RateTTL 汇率缓存有效期
	RateTTL time.Duration
}

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 路由请求到各领域处理器
//   - 管理存储层连接
//   - 中间件编排
//
// 依赖接口说明（接口隔离原则）：
//   - store: 持久化业务数据（用户 / 目录 / 购物车）
//   - rateCache: 汇率缓存，可为 nil（无 Redis 部署时直接回源）
type Handler struct {
	store     storage.PersistentStore
	rateCache cache.RateCache
	rateSrc   currency.RateSource

	cfg     Config
	metrics *Metrics
	logger  *logging.Logger
}

// NewHandler 创建 Handler 实例
func NewHandler(store storage.PersistentStore, rateSrc currency.RateSource, rateCache cache.RateCache, cfg Config) *Handler {
	if cfg.RateTTL <= 0 {
		cfg.RateTTL = time.Hour
	}
	return &Handler{
		store:     store,
		rateSrc:   rateSrc,
		rateCache: rateCache,
		cfg:       cfg,
		metrics:   NewMetrics("storefront"),
		logger:    logging.New(logging.Config{Component: "api-server", Format: "json"}),
	}
}

// GetMetrics 返回指标实例
func (h *Handler) GetMetrics() *Metrics {
	return h.metrics
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 用于负载均衡器和监控系统检查服务状态。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ping 前端连通性检查接口
//
// 路由: GET /api/ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
