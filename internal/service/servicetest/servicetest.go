// Package servicetest содержит подмены сервиса сокращения для тестов и примеров.
package servicetest

import (
	"context"

	"github.com/InQaaaaGit/snipscan.git/internal/models"
	"github.com/InQaaaaGit/snipscan.git/internal/service"
)

var _ service.Shortener = ShortenerFunc(nil)

// ShortenerFunc позволяет использовать обычную функцию как service.Shortener
type ShortenerFunc func(ctx context.Context, originalURL string) (models.ShortenResult, error)

// Shorten вызывает f(ctx, originalURL)
func (f ShortenerFunc) Shorten(ctx context.Context, originalURL string) (models.ShortenResult, error) {
	return f(ctx, originalURL)
}
