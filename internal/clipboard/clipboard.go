// Package clipboard предоставляет доступ к системному буферу обмена.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable возвращается, когда буфер обмена недоступен на платформе или не настроен
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer записывает текст в буфер обмена
type Writer interface {
	WriteAll(text string) error
}

// System реализует Writer поверх системного буфера обмена (xclip/xsel/wl-copy, pbcopy, WinAPI)
type System struct{}

// NewSystem возвращает системный буфер обмена или ErrUnavailable,
// если на текущей платформе нет подходящей утилиты.
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnavailable
	}
	return &System{}, nil
}

// WriteAll копирует text в системный буфер обмена
func (System) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
