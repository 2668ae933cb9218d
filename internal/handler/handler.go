package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/InQaaaaGit/snipscan.git/internal/config"
	"github.com/InQaaaaGit/snipscan.git/internal/form"
	"github.com/InQaaaaGit/snipscan.git/internal/middleware"
	"github.com/InQaaaaGit/snipscan.git/internal/storage"
	"go.uber.org/zap"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
	// urlField имя поля формы с исходным URL
	urlField = "url"
	// maxFormSize ограничивает размер тела POST запроса
	maxFormSize = 64 << 10
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// Handler обслуживает веб-страницу формы сокращения ссылок
type Handler struct {
	storage storage.FormStorage
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler создает обработчик поверх хранилища форм
func NewHandler(storage storage.FormStorage, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// pageData данные для шаблона страницы
type pageData struct {
	State         form.State
	CanSubmit     bool
	Loading       bool
	ShortURL      string
	ShortCode     string
	QRCode        template.URL
	CopiedMessage string
}

// stateResponse JSON представление состояния формы
type stateResponse struct {
	form.State
	CanSubmit bool   `json:"can_submit"`
	ShortCode string `json:"short_code,omitempty"`
}

// HandleIndex обрабатывает GET запрос и отображает форму текущей сессии
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	f, ok := h.sessionForm(w, r)
	if !ok {
		return
	}

	data := newPageData(f.State())
	if data.State.Result != nil && data.State.Result.QRCodeImg != "" && data.QRCode == "" {
		h.logger.Warn("Dropped unsafe QR code source", zap.String("short_url", data.ShortURL))
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error("Error rendering page", zap.Error(err))
	}
}

// HandleSubmit обрабатывает POST запрос формы: сохраняет ввод, отправляет его
// в сервис сокращения и перенаправляет на страницу формы.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	f, ok := h.sessionForm(w, r)
	if !ok {
		return
	}

	f.SetInput(r.PostFormValue(urlField))
	err := f.Submit(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, form.ErrEmptyInput), errors.Is(err, form.ErrInvalidURL):
		// сообщение, если оно нужно, уже в состоянии формы
	case errors.Is(err, form.ErrInFlight):
		h.logger.Info("Submit ignored, request already in flight")
	default:
		h.logger.Warn("Submit failed", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleState возвращает состояние формы текущей сессии в формате JSON
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	f, ok := h.sessionForm(w, r)
	if !ok {
		return
	}

	state := f.State()
	response := stateResponse{
		State:     state,
		CanSubmit: state.CanSubmit(),
		ShortCode: state.ShortCode(),
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// HandlePing обрабатывает запрос проверки работоспособности
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}

// WithSession привязывает запросы к сессии браузера
func (h *Handler) WithSession(next http.Handler) http.Handler {
	return middleware.SessionMiddleware(h.cfg.SessionSecret, h.cfg.SessionTTL, h.cfg.IsHTTPSEnabled(), h.logger)(next)
}

// sessionForm возвращает форму сессии запроса. При ошибке ответ уже записан.
func (h *Handler) sessionForm(w http.ResponseWriter, r *http.Request) (*form.Form, bool) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.logger.Error("Session ID not found in request context")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	f, err := h.storage.GetOrCreate(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Error getting session form", zap.String("session_id", sessionID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return f, true
}

func newPageData(state form.State) pageData {
	data := pageData{
		State:         state,
		CanSubmit:     state.CanSubmit(),
		Loading:       state.Loading(),
		ShortCode:     state.ShortCode(),
		CopiedMessage: form.CopiedMessage,
	}
	if state.Result != nil {
		data.ShortURL = state.Result.ShortURL
		if src, ok := safeImageSource(state.Result.QRCodeImg); ok {
			data.QRCode = src
		}
	}
	return data
}

// safeImageSource пропускает только data:image/ URI и http(s) ссылки
func safeImageSource(src string) (template.URL, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(src), "data:image/") {
		return template.URL(src), true
	}

	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return template.URL(src), true
	default:
		return "", false
	}
}
