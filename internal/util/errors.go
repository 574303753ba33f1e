package util

import (
	"errors"
	"fmt"
)

// 错误类别，HandleError 按类别映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
)

// AppError 携带面向客户端的提示信息
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NotFoundError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func ForbiddenError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidStateError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrCourseNotFound     = NotFoundError("Curso no encontrado")
	ErrModuleNotFound     = NotFoundError("Módulo no encontrado")
	ErrLessonNotFound     = NotFoundError("Lección no encontrada")
	ErrExamNotFound       = NotFoundError("Examen no disponible")
	ErrQuizNotFound       = NotFoundError("La lección no tiene prueba asociada")
	ErrAttemptNotFound    = NotFoundError("Intento no encontrado")
	ErrModuleLocked       = ForbiddenError("Módulo bloqueado para este usuario")
	ErrLessonLocked       = ForbiddenError("Lección bloqueada para este usuario")
	ErrAttemptLimit       = ForbiddenError("Límite de intentos alcanzado")
	ErrAttemptFinalized   = InvalidStateError("El intento ya fue finalizado")
	ErrAnswersRequired    = InvalidStateError("Respuestas requeridas")
	ErrTimeLimitExceeded  = InvalidStateError("Tiempo límite excedido")
	ErrLessonHasQuiz      = InvalidStateError("La lección se completa aprobando su prueba")
	ErrInvalidAnswerEntry = InvalidStateError("Cada respuesta requiere pregunta_id y alternativa_id")
)
