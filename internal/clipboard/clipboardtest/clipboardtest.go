// Package clipboardtest содержит буфер обмена в памяти для тестов.
package clipboardtest

import (
	"sync"

	"github.com/InQaaaaGit/snipscan.git/internal/clipboard"
)

var _ clipboard.Writer = (*Memory)(nil)

// Memory хранит скопированный текст в памяти
type Memory struct {
	mu   sync.Mutex
	text string
}

// WriteAll запоминает text
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text возвращает последний скопированный текст
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
