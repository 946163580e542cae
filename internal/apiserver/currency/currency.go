// Package currency 汇率查询 - 上游代理与缓存
//
// 把汇率 API Key 收敛到服务端（前端直连会把 Key 暴露在浏览器里），
// 并用 Redis 缓存降低上游调用频率。缓存不可用时直接回源。
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"storefront/internal/shared/cache"
)

// RateSource 汇率上游
type RateSource interface {
	// FetchRates 返回以 base 计价的汇率表
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// APIClient exchangerate-api 风格的上游客户端
// 请求格式: GET {baseURL}/{apiKey}/latest/{base}
type APIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIClient 创建上游客户端
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ratesResponse 上游响应体
type ratesResponse struct {
	Result          string             `json:"result"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchRates 调用上游拉取汇率表
func (c *APIClient) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate upstream returned %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode exchange rates: %w", err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("exchange rate upstream result: %s", body.Result)
	}
	return body.ConversionRates, nil
}

// Service 汇率服务：缓存优先，未命中回源并写缓存
type Service struct {
	src   RateSource
	cache cache.RateCache // 可为 nil（无 Redis 部署）
	ttl   time.Duration
}

// NewService 创建汇率服务
// rateCache 传 nil 时每次请求直接回源
func NewService(src RateSource, rateCache cache.RateCache, ttl time.Duration) *Service {
	return &Service{src: src, cache: rateCache, ttl: ttl}
}

// GetRates 返回以 base 计价的汇率表
func (s *Service) GetRates(ctx context.Context, base string) (map[string]float64, error) {
	if s.cache != nil {
		rates, err := s.cache.GetRates(ctx, base)
		if err != nil {
			// 缓存故障只降级，不影响请求
			log.Printf("[currency] cache read error: %v", err)
		} else if rates != nil {
			return rates, nil
		}
	}

	rates, err := s.src.FetchRates(ctx, base)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRates(ctx, base, rates, s.ttl); err != nil {
			log.Printf("[currency] cache write error: %v", err)
		}
	}
	return rates, nil
}
