package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"

	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
)

// Handler 认证 HTTP 处理器
type Handler struct {
	svc *Service
	cfg Config
}

// NewHandler 创建认证处理器
func NewHandler(svc *Service, cfg Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/me", h.Me)
	mux.HandleFunc("GET /api/auth/users", AdminOnly(h.ListUsers))
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	// Username 同时接受用户名和邮箱
	Username string `json:"username"`
	Password string `json:"password"`
}

// ============================================================================
// Handlers
// ============================================================================

// Register 用户注册
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email, password are required")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.svc.Register(r.Context(), RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[auth.register] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[auth] User registered: %s (%s)", user.Username, user.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login 用户登录
// POST /api/auth/login
// 成功时通过 HttpOnly Cookie 下发会话令牌
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("[auth.login] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.SessionTTL.Seconds())))

	log.Printf("[auth] User logged in: %s", user.Username)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout 退出登录
// POST /api/auth/logout
// 服务端无会话状态，仅清除客户端 Cookie；令牌短期内仍然有效（已知限制）
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me 获取当前用户信息
// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	authUser := GetAuthUser(r.Context())
	if authUser == nil {
		writeError(w, http.StatusUnauthorized, errs.ErrSessionInvalid.Error())
		return
	}

	user, err := h.svc.store.GetUserByID(r.Context(), authUser.ID)
	if err != nil {
		log.Printf("[auth.me] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, errs.ErrSessionInvalid.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]*model.User{"user": user})
}

// ListUsers 用户列表（仅管理员）
// GET /api/auth/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("[auth.users] error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, map[string][]*model.User{"users": users})
}

// sessionCookie 构造会话 Cookie
// 生产环境: Secure + SameSite=None（跨站前端携带凭据）；开发环境 Lax
func (h *Handler) sessionCookie(token string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.CookieSecure {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
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

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
