// Package app содержит основную структуру приложения и логику инициализации.
// Связывает конфигурацию, клиент сервиса сокращения, хранилище форм и HTTP маршруты.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"github.com/InQaaaaGit/snipscan.git/internal/handler"
	"github.com/InQaaaaGit/snipscan.git/internal/server"
	"github.com/InQaaaaGit/snipscan.git/internal/service"
	"github.com/InQaaaaGit/snipscan.git/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// minJanitorInterval нижняя граница периода очистки неактивных сессий
const minJanitorInterval = time.Second

// App представляет веб-приложение SnipScan.
// Инкапсулирует конфигурацию, HTTP роутер, логгер, хранилище форм и обработчики запросов.
type App struct {
	config  *config.Config         // Конфигурация приложения
	router  *chi.Mux               // HTTP роутер для обработки запросов
	logger  *zap.Logger            // Логгер для записи событий приложения
	storage *storage.MemoryStorage // Формы сессий браузера
	handler *handler.Handler       // Обработчики HTTP запросов
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Создает клиент сервиса сокращения, хранилище форм, обработчики и регистрирует маршруты.
//
// Возвращает ошибку, если конфигурация клиента некорректна.
func NewApp(cfg *config.Config, logger *zap.Logger, opts ...service.ClientOption) (*App, error) {
	client, err := service.NewAPIClient(cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating shortener client: %w", err)
	}

	store := storage.NewMemoryStorage(func() *form.Form {
		return form.New(client, logger)
	}, cfg.SessionTTL, logger)

	a := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		storage: store,
		handler: handler.NewHandler(store, cfg, logger),
	}
	a.setupRoutes()

	logger.Info("Application configured",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)
	return a, nil
}

// Run запускает HTTP или HTTPS сервер и очистку неактивных сессий.
// Блокирующий вызов - выполняется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.storage.RunJanitor(ctx, janitorInterval(a.config.SessionTTL))

	err := server.NewHTTPServer(a.GetServer(), a.config, a.logger).Run(ctx)
	a.logger.Info("Application stopped", zap.Int("active_sessions", a.storage.Len()))
	return err
}

// Router возвращает обработчик со всеми маршрутами приложения
func (a *App) Router() http.Handler {
	return a.router
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
// Страница формы и ее состояние привязаны к сессии, проверка доступности - нет.
func (a *App) setupRoutes() {
	// Middleware
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)

	// Routes
	a.router.Get("/ping", a.handler.HandlePing)
	a.router.Group(func(r chi.Router) {
		r.Use(a.handler.WithSession)
		r.Get("/", a.handler.HandleIndex)
		r.Post("/", a.handler.HandleSubmit)
		r.Get("/api/state", a.handler.HandleState)
	})
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Таймаут записи учитывает время ожидания ответа сервиса сокращения.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:         a.config.ServerAddress,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout(a.config.RequestTimeout),
		IdleTimeout:  120 * time.Second,
	}
}

func writeTimeout(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return 0
	}
	return requestTimeout + 10*time.Second
}

func janitorInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, minJanitorInterval)
}
