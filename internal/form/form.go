// Package form реализует форму сокращения ссылки: ввод, проверку, отправку во внешний сервис
// и состояние для отображения результата.
//
// Переходы описаны чистыми методами State, а Form связывает их с сервисом сокращения
// и гарантирует, что одновременно выполняется не более одного запроса.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
	"github.com/InQaaaaGit/snipscan.git/internal/service"
	"go.uber.org/zap"
)

// Form хранит состояние одной формы и выполняет запросы к сервису сокращения.
// Безопасна для использования из нескольких горутин.
type Form struct {
	mu        sync.Mutex
	state     State
	shortener service.Shortener
	clipboard clipboard.Writer
	observer  func(State)
	logger    *zap.Logger
}

// Option настраивает Form
type Option func(*Form)

// WithClipboard задает буфер обмена для CopyShortURL
func WithClipboard(w clipboard.Writer) Option {
	return func(f *Form) {
		f.clipboard = w
	}
}

// WithObserver задает функцию, вызываемую после каждого изменения состояния.
// Вызывается вне блокировки формы.
func WithObserver(fn func(State)) Option {
	return func(f *Form) {
		f.observer = fn
	}
}

// New создает пустую форму
func New(shortener service.Shortener, logger *zap.Logger, opts ...Option) *Form {
	f := &Form{
		shortener: shortener,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State возвращает копию текущего состояния
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// SetInput заменяет введенный текст
func (f *Form) SetInput(text string) {
	f.apply(func(s State) State {
		return s.SetInput(text)
	})
}

// Submit проверяет текущий ввод и отправляет его в сервис сокращения.
//
// Возвращает ErrEmptyInput, ErrInFlight или ErrInvalidURL без обращения к сервису.
// Ошибка сервиса логируется и возвращается обернутой в ErrRequestFailed,
// а пользователь видит только общее сообщение RetryMessage.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	next, originalURL, err := f.state.Submit()
	changed := next != f.state
	f.state = next
	snap := f.snapshot()
	f.mu.Unlock()

	if changed {
		f.notify(snap)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidURL) {
			f.logger.Debug("Rejected invalid URL", zap.String("input", snap.Input))
		}
		return err
	}

	f.logger.Info("Shortening URL", zap.String("original_url", originalURL))

	result, err := f.shortener.Shorten(ctx, originalURL)
	if err != nil {
		f.logger.Error("Failed to shorten URL",
			zap.String("original_url", originalURL),
			zap.Error(err),
		)
		f.apply(State.Fail)
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	f.logger.Info("URL shortened",
		zap.String("original_url", originalURL),
		zap.String("short_url", result.ShortURL),
		zap.Bool("has_qr_code", result.QRCodeImg != ""),
	)
	f.apply(func(s State) State {
		return s.Succeed(result)
	})
	return nil
}

// CopyShortURL копирует text в буфер обмена и возвращает уведомление для пользователя.
// Состояние формы не меняется.
func (f *Form) CopyShortURL(text string) (string, error) {
	if f.clipboard == nil {
		return "", clipboard.ErrUnavailable
	}
	if err := f.clipboard.WriteAll(text); err != nil {
		f.logger.Warn("Failed to copy short URL", zap.Error(err))
		return "", err
	}
	return CopiedMessage, nil
}

func (f *Form) apply(transition func(State) State) {
	f.mu.Lock()
	f.state = transition(f.state)
	snap := f.snapshot()
	f.mu.Unlock()

	f.notify(snap)
}

func (f *Form) notify(s State) {
	if f.observer != nil {
		f.observer(s)
	}
}

// snapshot копирует состояние вместе с результатом. Вызывается под f.mu.
func (f *Form) snapshot() State {
	s := f.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}
