// Package apperr описывает таксономию ошибок ядра и их отображение на HTTP-статусы.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - машиночитаемый код ошибки
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindNotAssigned      Kind = "NOT_ASSIGNED"
	KindConflict         Kind = "CONFLICT"
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	KindInternal         Kind = "INTERNAL"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden, KindNotAssigned:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable - можно ли повторить запрос с backoff
func (k Kind) Retryable() bool {
	return k == KindConflict || k == KindStoreUnavailable
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap сохраняет причину, чтобы errors.Is продолжал работать по цепочке
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) error {
	return New(KindValidation, format, args...)
}

func Unauthenticated(format string, args ...any) error {
	return New(KindUnauthenticated, format, args...)
}

func Forbidden(format string, args ...any) error {
	return New(KindForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return New(KindNotFound, format, args...)
}

func NotAssigned(format string, args ...any) error {
	return New(KindNotAssigned, format, args...)
}

func Conflict(format string, args ...any) error {
	return New(KindConflict, format, args...)
}

func StoreUnavailable(err error, format string, args ...any) error {
	return Wrap(KindStoreUnavailable, err, format, args...)
}

// KindOf возвращает код первой *Error в цепочке, иначе KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message возвращает текст для пользователя; для внутренних ошибок детали скрываются
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
