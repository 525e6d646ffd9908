package service

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL 在跳转地址不符合准入策略时返回
var ErrInvalidURL = errors.New("invalid link url")

// allowedSchemes 列出允许的跳转协议，阻断 javascript:/data: 等注入向量
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// LinkURLError 携带可直接展示给用户的校验提示
type LinkURLError struct {
	Reason string
}

func (e *LinkURLError) Error() string {
	return e.Reason
}

func (e *LinkURLError) Unwrap() error {
	return ErrInvalidURL
}

// ValidateLinkURL 校验跳转地址：必须可解析且协议在白名单内。
// 创建与编辑共用同一套校验，任何写入发生之前执行。
func ValidateLinkURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &LinkURLError{Reason: "请输入链接地址"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return &LinkURLError{Reason: "请输入有效的链接地址，例如 https://example.com"}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowedSchemes[scheme] {
		return &LinkURLError{Reason: "不支持的协议 " + scheme + ":，请使用 http:// 或 https://"}
	}

	return nil
}
