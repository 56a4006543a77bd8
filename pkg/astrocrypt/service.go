package astrocrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Service seals and opens strings with AES-GCM. Ciphertexts are base64 of
// nonce || sealed data.
type Service struct {
	gcm cipher.AEAD
}

var (
	ErrMissingKey       = errors.New("encryption key is missing")
	ErrInvalidKeyLength = errors.New("key must be 16, 24, or 32 bytes")
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidData      = errors.New("invalid encrypted data")
)

// NewService creates a service for an AES-128, -192 or -256 key.
func NewService(key []byte) (*Service, error) {
	switch len(key) {
	case 0:
		return nil, ErrMissingKey
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{gcm: gcm}, nil
}

// Encrypt seals plaintext. An empty string stays empty.
func (s *Service) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", ErrEncryptionFailed
	}
	sealed := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt. An empty string stays empty.
func (s *Service) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidData
	}
	n := s.gcm.NonceSize()
	if len(data) < n {
		return "", ErrInvalidData
	}

	plaintext, err := s.gcm.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
