package errors

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorLogger pairs every user-facing error response with a structured
// log entry. The two share a trace id, so a support report quoting the
// id from the response body can be matched to the full server-side
// detail, which is never sent to the client.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps a zap logger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// LogServerError logs err at error level and writes a 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusInternalServerError, logMsg, err, userMsg)
}

// LogBadRequest logs err at warn level and writes a 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusBadRequest, logMsg, err, userMsg)
}

// LogNotFound logs at warn level and writes a 404 with userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.write(w, r, http.StatusNotFound, logMsg, nil, userMsg)
}

func (e *ErrorLogger) write(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	traceID := uuid.NewString()

	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if status >= http.StatusInternalServerError {
		e.log.Error(logMsg, fields...)
	} else {
		e.log.Warn(logMsg, fields...)
	}

	renderWithTrace(w, status, userMsg, traceID)
}
