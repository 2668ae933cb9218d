// Package service описывает внешний сервис сокращения ссылок и его HTTP-клиент.
package service

import (
	"context"
	"errors"

	"github.com/InQaaaaGit/snipscan.git/internal/models"
)

var (
	// ErrRequestFailed возвращается при сетевой ошибке или ответе со статусом вне диапазона 2xx
	ErrRequestFailed = errors.New("shorten request failed")
	// ErrMalformedResponse возвращается, если тело ответа не удалось разобрать или в нем нет myUrl
	ErrMalformedResponse = errors.New("malformed shorten response")
)

// Shortener определяет интерфейс внешнего сервиса сокращения ссылок.
// Реализация выполняет ровно один запрос на вызов и не повторяет его.
type Shortener interface {
	Shorten(ctx context.Context, originalURL string) (models.ShortenResult, error)
}
