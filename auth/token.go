package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"hash"
)

// RememberTokenBytes is the byte size of generated remember tokens.
const RememberTokenBytes = 32

// randBytes generates n random bytes or returns an error.
func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MakeRememberToken generates a new random remember token,
// base64 URL encoded.
func MakeRememberToken() (string, error) {
	b, err := randBytes(RememberTokenBytes)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// HMAC hashes strings with a secret key. Remember tokens are stored
// hashed so a leaked database doesn't leak valid session tokens.
type HMAC struct {
	hmac hash.Hash
}

// NewHMAC returns a new HMAC using the provided secret key.
func NewHMAC(key string) HMAC {
	h := hmac.New(sha256.New, []byte(key))
	return HMAC{
		hmac: h,
	}
}

// Hash hashes the input string using HMAC with the secret key
// provided when the HMAC object was created.
func (h HMAC) Hash(input string) string {
	h.hmac.Reset()
	h.hmac.Write([]byte(input))
	b := h.hmac.Sum(nil)
	return base64.URLEncoding.EncodeToString(b)
}
