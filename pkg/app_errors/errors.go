package apperrors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput 所有由使用者輸入造成的錯誤都包裝此錯誤，可用 errors.Is 判斷
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidSlugParam      = fmt.Errorf("%w: invalid slug parameter", ErrInvalidInput)
	ErrSlugInvalidCharacters = fmt.Errorf("%w: slug contains invalid characters", ErrInvalidInput)
	ErrInvalidDateFormat     = fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	ErrInvalidTimeFormat     = fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	ErrEmptySlug             = fmt.Errorf("%w: title must contain at least one letter or digit", ErrInvalidInput)
	ErrInvalidEvent          = fmt.Errorf("%w: invalid event", ErrInvalidInput)
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrSlugConflict      = errors.New("event slug already exists")
	ErrDatabaseConfig    = errors.New("database configuration error")
	ErrStorageValidation = errors.New("storage rejected query parameters")
	ErrCacheMiss         = errors.New("cache miss")
)
