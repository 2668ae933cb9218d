package form

import "errors"

var (
	// ErrEmptyInput возвращается, если после обрезки пробелов ввод пуст. Пользователю не показывается.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidURL возвращается, если ввод не является абсолютным http/https URL
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInFlight возвращается при попытке отправки, пока предыдущий запрос не завершен
	ErrInFlight = errors.New("request already in flight")
	// ErrRequestFailed оборачивает любую ошибку сервиса сокращения
	ErrRequestFailed = errors.New("request failed")
)

// Сообщения, которые видит пользователь
const (
	InvalidURLMessage = "Please enter a valid URL (starting with http:// or https://)"
	RetryMessage      = "Something went wrong. Please try again."
	CopiedMessage     = "URL copied to clipboard!"
)
