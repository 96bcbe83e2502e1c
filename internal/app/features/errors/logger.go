// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs internal failures and writes the generic 500 body.
// The underlying error stays server-side; clients only see "internal
// server error".
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs the error with request context and responds 500.
func (el *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	el.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	JSON(w, http.StatusInternalServerError, "internal server error")
}
