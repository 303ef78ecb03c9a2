package sfmc

import (
	"errors"
	"fmt"
)

// ErrUnauthorized 表示 401/403，调用方需要重新认证，传输层绝不重试。
var ErrUnauthorized = errors.New("sfmc: 认证失败，需要重新获取 token")

// APIError 表示远端返回的非 2xx 响应。
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sfmc: %s 返回状态码 %d", e.Endpoint, e.StatusCode)
}

// Retryable 判断该错误是否属于可重试的瞬时故障。
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case 429, 502, 503, 504:
		return true
	}
	return false
}

// ParseError 表示响应体无法解析。格式问题不是瞬时故障，不重试。
type ParseError struct {
	ObjectType string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sfmc: 解析 %s 响应失败: %v", e.ObjectType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
