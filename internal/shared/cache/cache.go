// Package cache 定义缓存层抽象接口
//
// 具体实现在子包中：redis/。缓存在整个系统里是可选依赖，
// 调用方必须能在实现为 nil 时降级为直接回源。
package cache

import (
	"context"
	"time"
)

// RateCache 汇率表缓存
type RateCache interface {
	// GetRates 返回缓存的汇率表；未命中返回 nil, nil
	GetRates(ctx context.Context, base string) (map[string]float64, error)
	// SetRates 写入汇率表并设置过期时间
	SetRates(ctx context.Context, base string, rates map[string]float64, ttl time.Duration) error
}
