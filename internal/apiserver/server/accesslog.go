package server

import (
	"net/http"
	"time"
)

// accessLogMiddleware 结构化访问日志中间件
// /health 与 /metrics 的轮询不记日志，避免刷屏
func (h *Handler) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		h.logger.HTTPRequestLog(r, wrapped.statusCode, time.Since(start))
	})
}
