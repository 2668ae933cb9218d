package form

import (
	"strings"

	"github.com/InQaaaaGit/snipscan.git/internal/models"
)

// RequestState состояние запроса к сервису сокращения
type RequestState int

const (
	// StateIdle запросов еще не было
	StateIdle RequestState = iota
	// StateInFlight запрос отправлен, ответ не получен
	StateInFlight
	// StateSettled последний запрос завершился успехом или ошибкой
	StateSettled
)

// String возвращает имя состояния
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// MarshalText позволяет сериализовать состояние в JSON строкой
func (s RequestState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State снимок формы сокращения ссылки.
// Все методы State чистые: они не меняют получателя и возвращают новое состояние.
//
// Result и ErrorMessage взаимоисключающие: установка одного сбрасывает другое.
type State struct {
	Input        string                `json:"input"`
	Request      RequestState          `json:"request"`
	Result       *models.ShortenResult `json:"result,omitempty"`
	ErrorMessage string                `json:"error,omitempty"`
}

// SetInput заменяет введенный текст. Валидация здесь не выполняется.
func (s State) SetInput(text string) State {
	s.Input = text
	return s
}

// Loading сообщает, выполняется ли запрос
func (s State) Loading() bool {
	return s.Request == StateInFlight
}

// CanSubmit сообщает, доступна ли кнопка отправки
func (s State) CanSubmit() bool {
	return strings.TrimSpace(s.Input) != "" && !s.Loading()
}

// Submit выполняет переход по нажатию кнопки отправки.
// При успешной валидации форма переходит в StateInFlight и возвращается URL для отправки в сервис.
//
// Пустой ввод и повторная отправка во время запроса ничего не меняют.
// Некорректный URL сбрасывает результат и устанавливает сообщение об ошибке, не трогая RequestState.
func (s State) Submit() (State, string, error) {
	trimmed := strings.TrimSpace(s.Input)
	if trimmed == "" {
		return s, "", ErrEmptyInput
	}
	if s.Loading() {
		return s, "", ErrInFlight
	}
	if err := ValidateURL(trimmed); err != nil {
		s.Result = nil
		s.ErrorMessage = InvalidURLMessage
		return s, "", err
	}

	s.Request = StateInFlight
	s.Result = nil
	s.ErrorMessage = ""
	return s, trimmed, nil
}

// Succeed фиксирует успешный ответ сервиса
func (s State) Succeed(result models.ShortenResult) State {
	s.Request = StateSettled
	s.Result = &result
	s.ErrorMessage = ""
	return s
}

// Fail фиксирует неудачный запрос. Причина ошибки пользователю не показывается.
func (s State) Fail() State {
	s.Request = StateSettled
	s.Result = nil
	s.ErrorMessage = RetryMessage
	return s
}

// ShortCode возвращает короткий код текущего результата для отображения
func (s State) ShortCode() string {
	if s.Result == nil {
		return ""
	}
	return ExtractShortCode(s.Result.ShortURL)
}
