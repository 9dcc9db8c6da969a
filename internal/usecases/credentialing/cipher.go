package credentialing

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	ivLength  = 12
	tagLength = 16
	keyLength = 32
)

var (
	ErrMissingEncryptionKey = errors.New("TOKEN_ENCRYPTION_KEY is not set")
	ErrInvalidCiphertext    = errors.New("invalid encrypted token format")
)

// TokenCipher cifra tokens em repouso no formato "iv:tag:ciphertext" (hex, AES-256-GCM)
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher aceita uma chave de 64 caracteres hex; qualquer outro valor é derivado com HKDF-SHA256
func NewTokenCipher(secret string) (*TokenCipher, error) {
	if secret == "" {
		return nil, ErrMissingEncryptionKey
	}

	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "create aes cipher")
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, errors.Wrap(err, "create gcm")
	}

	return &TokenCipher{aead: aead}, nil
}

func deriveKey(secret string) ([]byte, error) {
	if len(secret) == keyLength*2 {
		if key, err := hex.DecodeString(secret); err == nil {
			return key, nil
		}
	}

	key := make([]byte, keyLength)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte("ad-sync-engine token encryption"))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, errors.Wrap(err, "derive encryption key")
	}
	return key, nil
}

func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Wrap(err, "generate iv")
	}

	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagLength], sealed[len(sealed)-tagLength:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	}, ":"), nil
}

func (c *TokenCipher) Decrypt(encrypted string) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 3 {
		return "", ErrInvalidCiphertext
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return "", ErrInvalidCiphertext
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagLength {
		return "", ErrInvalidCiphertext
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := c.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", errors.Wrap(err, "decrypt token")
	}

	return string(plaintext), nil
}
