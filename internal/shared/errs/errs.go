// Package errs 跨层共用的哨兵错误
//
// service 层只抛出本包定义的错误种类，路由层通过 errors.Is 判别并映射
// HTTP 状态码，任何地方都不做错误消息字符串比较。
// 每个哨兵通过 Unwrap 挂接 containerd/errdefs 的错误类别，未被路由层
// 显式识别的错误可按类别（errdefs.IsNotFound 等）兜底映射。
package errs

import "github.com/containerd/errdefs"

// Error 带类别标签的哨兵错误
// Error() 返回面向客户端的消息；Unwrap() 返回 errdefs 类别
type Error struct {
	msg  string
	kind error
}

func (e *Error) Error() string { return e.msg }

// Unwrap 返回所属的 errdefs 错误类别
func (e *Error) Unwrap() error { return e.kind }

// 认证 / 授权
var (
	// ErrDuplicateUser 用户名或邮箱已被注册
	ErrDuplicateUser = &Error{"user already exists", errdefs.ErrAlreadyExists}

	// ErrInvalidCredentials 登录失败：用户不存在与密码错误不可区分（防枚举）
	ErrInvalidCredentials = &Error{"invalid credentials", errdefs.ErrUnauthenticated}

	// ErrSessionInvalid 会话令牌缺失、格式错误、过期、签名无效或用户已不存在
	ErrSessionInvalid = &Error{"invalid or expired session", errdefs.ErrUnauthenticated}

	// ErrForbidden 越权操作他人资源
	ErrForbidden = &Error{"forbidden", errdefs.ErrPermissionDenied}
)

// 目录 / 购物车
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = &Error{"product not found", errdefs.ErrNotFound}

	// ErrProductUnavailable 商品已下架
	ErrProductUnavailable = &Error{"product is not available", errdefs.ErrNotFound}

	// ErrVariantNotFound 商品变体不存在
	ErrVariantNotFound = &Error{"product variant not found", errdefs.ErrNotFound}

	// ErrVariantUnavailable 商品变体已停售
	ErrVariantUnavailable = &Error{"product variant is not available", errdefs.ErrNotFound}

	// ErrLineNotFound 购物车行不存在（重复删除同样返回此错误）
	ErrLineNotFound = &Error{"cart item not found", errdefs.ErrNotFound}

	// ErrInvalidQuantity 数量必须为不小于 1 的整数
	ErrInvalidQuantity = &Error{"quantity must be at least 1", errdefs.ErrInvalidArgument}

	// ErrInsufficientStock 请求数量（或合并后总量）超出当前库存
	ErrInsufficientStock = &Error{"insufficient stock", errdefs.ErrFailedPrecondition}
)
