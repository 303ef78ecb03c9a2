package sfmc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 500 * time.Millisecond
)

// Stats 是单次爬取周期内传输层的调用统计。
type Stats struct {
	APICalls   int64
	ErrorCount int64
	Retries    int64
}

// Client 封装 SFMC REST 与 SOAP 的出站调用：超时、退避重试与错误分类。
// 对实体字典无任何副作用，只维护计数器。
type Client struct {
	restBase     string
	soapEndpoint string
	httpClient   *http.Client
	tokenSource  TokenSource
	maxRetries   int
	baseDelay    time.Duration

	apiCalls   atomic.Int64
	errorCount atomic.Int64
	retries    atomic.Int64
}

// Config 配置 SFMC 客户端。Subdomain 必填，RESTBase/SOAPEndpoint 仅在测试或
// 私有部署时覆盖。
type Config struct {
	Subdomain    string
	TokenSource  TokenSource
	MaxRetries   int
	BaseDelay    time.Duration
	Timeout      time.Duration
	RESTBase     string
	SOAPEndpoint string
	CustomClient *http.Client
}

// NewClient 根据配置创建 SFMC 客户端。
func NewClient(cfg Config) (*Client, error) {
	restBase := strings.TrimRight(cfg.RESTBase, "/")
	soapEndpoint := cfg.SOAPEndpoint
	if restBase == "" || soapEndpoint == "" {
		if strings.TrimSpace(cfg.Subdomain) == "" {
			return nil, errors.New("sfmc subdomain 不能为空")
		}
		if restBase == "" {
			restBase = fmt.Sprintf("https://%s.rest.marketingcloudapis.com", cfg.Subdomain)
		}
		if soapEndpoint == "" {
			soapEndpoint = fmt.Sprintf("https://%s.soap.marketingcloudapis.com/Service.asmx", cfg.Subdomain)
		}
	}
	if cfg.TokenSource == nil {
		return nil, errors.New("必须提供 token source")
	}
	client := cfg.CustomClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	if cfg.MaxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelay := cfg.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	return &Client{
		restBase:     restBase,
		soapEndpoint: soapEndpoint,
		httpClient:   client,
		tokenSource:  cfg.TokenSource,
		maxRetries:   maxRetries,
		baseDelay:    baseDelay,
	}, nil
}

// Stats 返回当前计数器快照。
func (c *Client) Stats() Stats {
	return Stats{
		APICalls:   c.apiCalls.Load(),
		ErrorCount: c.errorCount.Load(),
		Retries:    c.retries.Load(),
	}
}

// ResetStats 清零计数器。
func (c *Client) ResetStats() {
	c.apiCalls.Store(0)
	c.errorCount.Store(0)
	c.retries.Store(0)
}

// call 执行单个 HTTP 调用并按策略重试。网络级失败与 429/502/503/504 重试，
// 401/403 立即返回 ErrUnauthorized，其余 4xx/5xx 立即失败。
func (c *Client) call(ctx context.Context, method, endpoint string, body []byte, contentType string) ([]byte, error) {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 token 失败: %w", err)
	}

	for attempt := 0; ; attempt++ {
		data, err := c.doOnce(ctx, method, endpoint, body, contentType, token)
		if err == nil {
			return data, nil
		}
		c.errorCount.Add(1)

		if !retryable(err) || attempt >= c.maxRetries {
			return nil, err
		}

		delay := c.baseDelay * time.Duration(1<<attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		c.retries.Add(1)
	}
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, body []byte, contentType, token string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if contentType == contentTypeSOAP {
		// SOAP 的 fueloauth 凭证在 envelope header 里，这里只补齐 SOAPAction。
		req.Header.Set("Accept", "text/xml")
		req.Header.Set("SOAPAction", "Retrieve")
	} else {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.apiCalls.Add(1)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 SFMC 失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取 SFMC 响应失败: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w (状态码 %d)", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: truncate(string(data), 512)}
	}
	return data, nil
}

// retryable 区分瞬时故障与致命错误。无响应的网络错误可重试。
func retryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return false
	}
	// http.Client 的错误统一是 *url.Error，属于无响应的网络级失败。
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
