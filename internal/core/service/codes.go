package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	verificationCodeLength = 6
	approvalSuffixLength   = 10
	approvalTokenPrefix    = "admin"

	DefaultVerificationTTL = 15 * time.Minute
)

// NewVerificationCode returns a random uppercase alphanumeric code used
// to prove control of a registered email address.
func NewVerificationCode() string {
	return randomString(codeAlphabet, verificationCodeLength)
}

// NewApprovalToken returns a token in the form
// admin_<unix-seconds>_<random suffix>. Uniqueness is probabilistic:
// collisions are accepted rather than guarded against, matching the
// single-use exact-match check on the consuming side.
func NewApprovalToken() string {
	return fmt.Sprintf("%s_%d_%s", approvalTokenPrefix, time.Now().Unix(), randomString(tokenAlphabet, approvalSuffixLength))
}

func randomString(alphabet string, n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		seed := uint64(time.Now().UnixNano())
		for i := range b {
			seed = seed*6364136223846793005 + 1442695040888963407
			b[i] = alphabet[seed%uint64(len(alphabet))]
		}
		return string(b)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}
