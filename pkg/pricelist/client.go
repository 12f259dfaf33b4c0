package pricelist

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== Fetcher 价格表拉取器 ====================

// Fetcher 定义"拉取价格表"的行为标准，方便测试替换
type Fetcher interface {
	// Fetch 从店铺提供的 URL 下载价格表原文
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// httpFetcher 是 Fetcher 接口的 resty 实现
type httpFetcher struct {
	client *resty.Client
}

var _ Fetcher = (*httpFetcher)(nil)

// NewFetcher 创建价格表拉取器
// 统一设置超时和重试，防止网络波动；价格表可能比较大，给足超时
func NewFetcher(timeout time.Duration, retryCount int) Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetHeader("User-Agent", "Retail-Orders-Go/1.0")
	return &httpFetcher{client: client}
}

// ValidateURL 校验价格表地址，只接受 http/https
func ValidateURL(feedURL string) error {
	u, err := url.Parse(feedURL)
	if err != nil {
		return fmt.Errorf("价格表地址非法: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("价格表地址必须是 http(s): %s", feedURL)
	}
	if u.Host == "" {
		return fmt.Errorf("价格表地址缺少主机名: %s", feedURL)
	}
	return nil
}

func (f *httpFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("下载价格表失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("价格表源返回 %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
