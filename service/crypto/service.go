package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// Prefix marks AES-256-CFB encrypted strings
const Prefix = "$9$"

const hkdfInfo = "callpoint aes256cfb"

var (
	ErrNotEncrypted = errors.New("value is not encrypted")
	ErrMissingKey   = errors.New("crypto key is empty")
)

// Service encrypts and decrypts leaf values
type Service struct {
	block cipher.Block
}

// Encrypt returns $9$ prefixed base64 iv||ciphertext
func (s *Service) Encrypt(plain string) (string, error) {
	data := make([]byte, aes.BlockSize+len(plain))
	iv := data[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}
	cipher.NewCFBEncrypter(s.block, iv).XORKeyStream(data[aes.BlockSize:], []byte(plain))
	return Prefix + base64.StdEncoding.EncodeToString(data), nil
}

// Decrypt reverses Encrypt
func (s *Service) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, Prefix) {
		return "", ErrNotEncrypted
	}
	data, err := base64.StdEncoding.DecodeString(value[len(Prefix):])
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted value: %w", err)
	}
	if len(data) < aes.BlockSize {
		return "", fmt.Errorf("encrypted value too short: %d bytes", len(data))
	}
	iv, text := data[:aes.BlockSize], data[aes.BlockSize:]
	plain := make([]byte, len(text))
	cipher.NewCFBDecrypter(s.block, iv).XORKeyStream(plain, text)
	return string(plain), nil
}

// New derives an AES-256 key from secret with HKDF-SHA256
func New(secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Service{block: block}, nil
}
