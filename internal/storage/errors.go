package storage

import "errors"

// ErrEmptySessionID возвращается для пустого идентификатора сессии
var ErrEmptySessionID = errors.New("empty session ID")
