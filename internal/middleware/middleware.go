package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionID генерирует уникальный идентификатор сессии
func GenerateSessionID() string {
	return uuid.New().String()
}

// SignSessionID подписывает идентификатор сессии и возвращает строку "sessionID.signature"
func SignSessionID(sessionID string, secretKey string) string {
	return sessionID + "." + sign(sessionID, secretKey)
}

// ValidateSessionID проверяет подлинность подписанной строки и возвращает идентификатор сессии.
// Ожидает строку формата "sessionID.signature", где sessionID является UUID.
func ValidateSessionID(signedValue string, secretKey string) (string, bool) {
	sessionID, signature, found := strings.Cut(signedValue, ".")
	if !found || sessionID == "" || signature == "" {
		return "", false
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", false
	}

	expected := sign(sessionID, secretKey)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return sessionID, true
}

func sign(value, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
