// Package storage хранит формы сокращения ссылок, привязанные к сессиям браузера.
// Данные живут только в памяти процесса и удаляются после периода неактивности.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"go.uber.org/zap"
)

// FormStorage интерфейс хранилища форм по идентификатору сессии
type FormStorage interface {
	// GetOrCreate возвращает форму сессии, создавая новую при первом обращении
	GetOrCreate(ctx context.Context, sessionID string) (*form.Form, error)
}

// FormFactory создает новую пустую форму
type FormFactory func() *form.Form

type formEntry struct {
	form     *form.Form
	lastSeen time.Time
}

// MemoryStorage реализует FormStorage с использованием памяти
type MemoryStorage struct {
	mu      sync.RWMutex
	forms   map[string]*formEntry
	factory FormFactory
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemoryStorage создает новый экземпляр MemoryStorage.
// Формы, к которым не обращались дольше ttl, удаляются при очистке. ttl <= 0 отключает удаление.
func NewMemoryStorage(factory FormFactory, ttl time.Duration, logger *zap.Logger) *MemoryStorage {
	return &MemoryStorage{
		forms:   make(map[string]*formEntry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// GetOrCreate возвращает форму сессии, создавая новую при первом обращении
func (ms *MemoryStorage) GetOrCreate(ctx context.Context, sessionID string) (*form.Form, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, exists := ms.forms[sessionID]
	if !exists {
		entry = &formEntry{form: ms.factory()}
		ms.forms[sessionID] = entry
		ms.logger.Debug("Created form for session", zap.String("session_id", sessionID))
	}
	entry.lastSeen = ms.now()

	return entry.form, nil
}

// Len возвращает количество хранимых форм
func (ms *MemoryStorage) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.forms)
}

// Sweep удаляет формы, неактивные дольше ttl. Формы с выполняющимся запросом не удаляются.
// Возвращает количество удаленных форм.
func (ms *MemoryStorage) Sweep() int {
	if ms.ttl <= 0 {
		return 0
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	deadline := ms.now().Add(-ms.ttl)
	removed := 0
	for id, entry := range ms.forms {
		if entry.lastSeen.After(deadline) || entry.form.State().Loading() {
			continue
		}
		delete(ms.forms, id)
		removed++
	}

	if removed > 0 {
		ms.logger.Info("Expired sessions removed", zap.Int("count", removed), zap.Int("remaining", len(ms.forms)))
	}
	return removed
}

// RunJanitor периодически вызывает Sweep до отмены ctx
func (ms *MemoryStorage) RunJanitor(ctx context.Context, interval time.Duration) {
	if ms.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ms.Sweep()
		}
	}
}
