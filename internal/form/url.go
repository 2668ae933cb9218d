package form

import (
	"net/url"
	"strconv"
	"strings"
)

const maxPort = 65535

// ValidateURL проверяет, что raw после обрезки пробелов является абсолютным URL
// со схемой http или https, непустым хостом и портом не больше 65535.
// Форма без "//" (http:example.com) не принимается.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyInput
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	// url.Parse приводит схему к нижнему регистру
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > maxPort {
			return ErrInvalidURL
		}
	}
	return nil
}

// ExtractShortCode возвращает путь короткой ссылки без ведущего "/".
// Если shortURL не разбирается как абсолютный URL, он возвращается без изменений.
// Функция чистая и определена для любой строки, но повторное применение к результату
// может дать другое значение: путь "/http://x" превращается в "http://x", а затем в "".
func ExtractShortCode(shortURL string) string {
	if shortURL == "" {
		return ""
	}

	u, err := url.Parse(shortURL)
	if err != nil || !u.IsAbs() {
		return shortURL
	}
	if u.Opaque != "" {
		return u.Opaque
	}
	return strings.TrimPrefix(u.EscapedPath(), "/")
}
