package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateLinkURLAccepted(t *testing.T) {
	accepted := []string{
		"https://example.com",
		"http://x.io/path?q=1",
		"mailto:a@b.com",
		"tel:+15551234567",
		"  https://example.com/padded  ",
		"HTTPS://UPPER.example.com",
	}

	for _, raw := range accepted {
		if err := ValidateLinkURL(raw); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", raw, err)
		}
	}
}

func TestValidateLinkURLRejected(t *testing.T) {
	rejected := []string{
		"javascript:alert(1)",
		"data:text/html,<script>",
		"vbscript:msgbox(1)",
		"ftp://example.com/file",
		"",
		"   ",
		"not a url",
	}

	for _, raw := range rejected {
		err := ValidateLinkURL(raw)
		if err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}
	}
}

func TestValidateLinkURLNamesOffendingScheme(t *testing.T) {
	err := ValidateLinkURL("javascript:alert(1)")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "javascript") {
		t.Fatalf("expected message to name the scheme, got %q", err.Error())
	}

	var urlErr *LinkURLError
	if !errors.As(err, &urlErr) {
		t.Fatalf("expected *LinkURLError, got %T", err)
	}
}

func TestValidateLinkURLGenericMessageForUnparsable(t *testing.T) {
	err := ValidateLinkURL("not a url")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "有效的链接地址") {
		t.Fatalf("expected generic message, got %q", err.Error())
	}
}
