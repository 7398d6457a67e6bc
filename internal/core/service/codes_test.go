package service

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewVerificationCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewVerificationCode()
		if len(code) != verificationCodeLength {
			t.Fatalf("expected length %d, got %q", verificationCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the uppercase alphanumeric alphabet", code, r)
			}
		}
	}
}

func TestNewApprovalToken_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^admin_\d+_[a-z0-9]{10}$`)
	for i := 0; i < 100; i++ {
		token := NewApprovalToken()
		if !pattern.MatchString(token) {
			t.Fatalf("token %q does not match admin_<unix>_<suffix>", token)
		}
	}
}

func TestNewVerificationCode_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[NewVerificationCode()] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct values", len(seen))
	}
}
