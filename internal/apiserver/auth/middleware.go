package auth

import (
	"net/http"
	"strings"

	"storefront/internal/shared/errs"
)

// 免认证路由白名单（前缀匹配）
var publicPrefixes = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/products",
	"/api/currency",
	"/api/ping",
	"/api/openapi.yaml",
	"/health",
	"/metrics",
}

func isPublicRoute(method, path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// extractToken 从请求提取会话令牌
// 优先级：HttpOnly Cookie（浏览器前端），其次 Authorization: Bearer（API 客户端）
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Middleware 创建会话认证中间件
//
// 每个受保护请求都重新解析令牌并确认用户仍然存在（无服务端会话状态，
// 解析无副作用）。失败统一返回 401，错误细节不外泄。
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 公开路由：直接放行
			if isPublicRoute(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := svc.ResolveSession(r.Context(), extractToken(r))
			if err != nil {
				writeError(w, http.StatusUnauthorized, errs.ErrSessionInvalid.Error())
				return
			}

			ctx := WithAuthUser(r.Context(), &AuthUser{
				ID:       user.ID,
				Username: user.Username,
				IsAdmin:  user.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly 管理员专属路由中间件
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := GetAuthUser(r.Context())
		if user == nil || !user.IsAdmin {
			writeError(w, http.StatusForbidden, errs.ErrForbidden.Error())
			return
		}
		next(w, r)
	}
}
