// Package terminal отображает форму сокращения ссылки в терминале и читает команды пользователя.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"github.com/skip2/go-qrcode"
)

// LoadingMessage выводится, пока выполняется запрос
const LoadingMessage = "Shortening..."

// Renderer выводит состояние формы в текстовом виде.
// Безопасен для вызова из нескольких горутин.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
	qr  bool
}

// NewRenderer создает Renderer. При withQR под результатом выводится QR код короткой ссылки.
func NewRenderer(out io.Writer, withQR bool) *Renderer {
	return &Renderer{out: out, qr: withQR}
}

// Observe используется как наблюдатель формы и сообщает о начале запроса
func (r *Renderer) Observe(s form.State) {
	if !s.Loading() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, LoadingMessage)
}

// Render выводит сообщение об ошибке или результат сокращения
func (r *Renderer) Render(s form.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ErrorMessage != "" {
		_, err := fmt.Fprintf(r.out, "Error: %s\n", s.ErrorMessage)
		return err
	}
	if s.Result == nil || s.Result.ShortURL == "" {
		return nil
	}

	if _, err := fmt.Fprintf(r.out, "Short code: %s\nShort URL:  %s\n", s.ShortCode(), s.Result.ShortURL); err != nil {
		return err
	}
	if !r.qr {
		return nil
	}

	block, err := QRBlock(s.Result.ShortURL)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, block)
	return err
}

// QRBlock строит QR код для content из символов полублоков
func QRBlock(content string) (string, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return code.ToSmallString(false), nil
}
